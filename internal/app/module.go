package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/goviz/internal/viz"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.viz.enabled") {
		if err := viz.New(viz.Dependency{
			Config:    a.config,
			Router:    a.router,
			Goroutine: a.goroutine,
			ID:        a.snowflake,
		}); err != nil {
			slog.Error("failed to init module viz", "error", err)
			os.Exit(1)
		}
	}
}
