package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/outfit-assistant/internal/domain/eventloop"
	"github.com/yanqian/outfit-assistant/internal/domain/session"
	"github.com/yanqian/outfit-assistant/internal/infra/config"
)

// App encapsulates the UI loop and HTTP server lifecycle.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	loop    *eventloop.Loop
	session session.Service
	server  *http.Server
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, loop *eventloop.Loop, svc session.Service, server *http.Server) *App {
	return &App{
		cfg:     cfg,
		logger:  logger.With("component", "bootstrap"),
		loop:    loop,
		session: svc,
		server:  server,
	}
}

// Run starts the UI loop, activates the page and serves HTTP until shutdown.
func (a *App) Run(ctx context.Context) error {
	loopCtx, stopLoop := context.WithCancel(context.Background())
	defer stopLoop()
	go a.loop.Run(loopCtx)

	a.session.Activate(a.cfg.Forecast.AutoStart)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.logger.Info("shutdown signal received")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
