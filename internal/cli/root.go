// Package cli defines the tinyclonec command tree.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tinyclonec",
	Short: "tinyclonec is a tiny URL shortener.",
	Long: `tinyclonec stores long URLs and hands out short base-36 codes for them.

Configuration comes from the environment (PORT, BASE_URL, DATABASE_URL),
optionally via a .env file in the working directory.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	},
	SilenceUsage: true,
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, createCmd, statsCmd)
}
