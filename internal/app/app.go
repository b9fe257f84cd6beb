package app

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/goviz/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/goviz/internal/pkg/pkglog"
	"github.com/shandysiswandi/goviz/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/goviz/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/goviz/internal/pkg/pkguid"
)

// Options are the process-level settings taken from the command line.
type Options struct {
	ConfigPath string
}

type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config pkgconfig.Config

	// libraries
	uuid      pkguid.StringID
	snowflake pkguid.NumberID
	goroutine *pkgroutine.Manager

	// server
	router     *pkgrouter.Router
	httpServer *http.Server

	//
	closerFn map[string]func(context.Context) error
}

func New(opt Options) *App {
	pkglog.InitLogging(pkglog.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig(opt.ConfigPath)
	app.initLogging()
	app.initLibraries()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
