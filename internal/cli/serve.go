package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/crguezl/tinyclonec/internal/app"
	"github.com/crguezl/tinyclonec/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromEnv()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := app.New(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := a.Close(); cerr != nil {
				slog.Error("close store", "error", cerr)
			}
		}()

		slog.Info("listening", "addr", a.Addr(), "base_url", cfg.BaseURL)
		if err := a.Run(ctx); err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		slog.Info("stopped")
		return nil
	},
}
