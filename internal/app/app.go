package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/crguezl/tinyclonec/internal/config"
	"github.com/crguezl/tinyclonec/internal/core"
	httpapi "github.com/crguezl/tinyclonec/internal/http"
	"github.com/crguezl/tinyclonec/internal/store"
)

const shutdownTimeout = 10 * time.Second

// App wires config, storage, the core service, and the HTTP router.
type App struct {
	Cfg     config.Config
	Store   core.Store
	Service *core.Service
	Router  *gin.Engine
}

// New builds a fully-wired application instance.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	// Open the store for the configured database URL. Opening also
	// applies any pending schema migrations.
	st, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	svc := core.NewService(st)

	router := httpapi.NewRouter(svc, httpapi.Options{BaseURL: cfg.BaseURL})

	return &App{
		Cfg:     cfg,
		Store:   st,
		Service: svc,
		Router:  router,
	}, nil
}

// Addr returns the HTTP listen address, e.g. ":8080".
func (a *App) Addr() string {
	return fmt.Sprintf(":%d", a.Cfg.Port)
}

// Run serves HTTP until ctx is cancelled, then drains in-flight
// requests before returning.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Addr(),
		Handler:           a.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down", "timeout", shutdownTimeout)
	srv.SetKeepAlivesEnabled(false)

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		_ = srv.Close()
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// Close releases resources.
func (a *App) Close() error {
	return a.Store.Close()
}
