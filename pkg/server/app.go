package server

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	domrepo "EtfAlpha/internal/domain/repository"
	"EtfAlpha/pkg/cache"
	"EtfAlpha/pkg/config"
	xhttp "EtfAlpha/pkg/http"
	applogger "EtfAlpha/pkg/logger"
)

// App encapsulates the application lifecycle.
type App struct {
	cfg        *config.Config
	l          *applogger.Logger
	source     domrepo.SnapshotSource
	cache      cache.Service
	handler    xhttp.Handler
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	source domrepo.SnapshotSource,
	c cache.Service,
	handler xhttp.Handler,
) *App {
	return &App{
		cfg:     cfg,
		l:       l,
		source:  source,
		cache:   c,
		handler: handler,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithLogger(a.l),
	)

	if err := a.httpServer.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		return err
	}
	a.l.Info("serving market snapshots",
		applogger.String("source", a.source.Name()),
		applogger.Int("port", a.cfg.Server.Port),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.l.Error("http shutdown error", applogger.Error(err))
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.l.Warn("cache close error", applogger.Error(err))
		}
	}

	if closer, ok := a.source.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			a.l.Warn("source close error", applogger.Error(err))
		}
	}

	a.l.Info("shutdown complete")
	return nil
}
