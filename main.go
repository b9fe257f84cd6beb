package main

import (
	"context"
	"os"
	"time"

	"github.com/shandysiswandi/goviz/internal/app"
	"github.com/spf13/cobra"
)

func main() {
	var opt app.Options

	cmd := &cobra.Command{
		Use:           "goviz",
		Short:         "Upload a CSV or Excel file and chart its columns in the browser",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application := app.New(opt) // Initialize the application
			wait := application.Start() // Start the application and wait for the termination signal
			<-wait                      // Wait for the application to receive a termination signal

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			application.Stop(ctx) // Stop the application gracefully
			return nil
		},
	}
	cmd.Flags().StringVar(&opt.ConfigPath, "config", "", "path to config.yaml (default: ./config/config.yaml when LOCAL=true, else /config/config.yaml)")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
