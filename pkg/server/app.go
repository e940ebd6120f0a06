package server

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"ChainHealth/internal/usecase"
	xhttp "ChainHealth/pkg/http"
	applogger "ChainHealth/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// Closers are released in order once the app stops.
type Closers []io.Closer

// App encapsulates the entire application lifecycle.
type App struct {
	log        *applogger.Logger
	monitor    *usecase.HealthMonitor
	httpServer *xhttp.Server
	closers    Closers
}

// New creates a new App instance with all dependencies.
func New(l *applogger.Logger, monitor *usecase.HealthMonitor, httpServer *xhttp.Server, closers Closers) *App {
	return &App{
		log:        l.Component("app"),
		monitor:    monitor,
		httpServer: httpServer,
		closers:    closers,
	}
}

// Monitor returns the health monitor for one-shot use.
func (a *App) Monitor() *usecase.HealthMonitor {
	return a.monitor
}

// Run serves HTTP and runs the monitor loop until ctx is cancelled, SIGINT
// or SIGTERM arrives, or the HTTP server fails.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(a.httpServer.ListenAndServe)
	g.Go(func() error {
		return a.monitor.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		a.log.Info("shutting down")
		return a.httpServer.Stop(context.Background())
	})

	err := g.Wait()
	a.Close()
	if err != nil {
		a.log.Error("app stopped with error", applogger.Error(err))
		return err
	}
	a.log.Info("shutdown complete")
	return nil
}

// Close releases infrastructure clients.
func (a *App) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.log.Warn("close error", applogger.Error(err))
		}
	}
}
