package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crguezl/tinyclonec/internal/config"
	"github.com/crguezl/tinyclonec/internal/core"
	"github.com/crguezl/tinyclonec/internal/store"
)

var createURL string

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Shorten a URL from the command line.",
	Long: `Shortens the URL given with --url and prints the short code. If the
URL is already stored, the existing code is printed instead.

Example:
  tinyclonec create --url="https://go.dev/doc/effective_go"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromEnv()

		st, err := store.Open(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		svc := core.NewService(st)
		l, created, err := svc.Shorten(cmd.Context(), createURL)
		if err != nil {
			if ve, ok := core.AsValidation(err); ok {
				return fmt.Errorf("%s", strings.Join(ve.Messages, " "))
			}
			return err
		}

		if created {
			fmt.Printf("created %s -> %s\n", l.Code(), l.URL)
		} else {
			fmt.Printf("already stored as %s -> %s\n", l.Code(), l.URL)
		}
		fmt.Println(cfg.BaseURL + "/" + l.Code())
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createURL, "url", "", "URL to shorten")
	_ = createCmd.MarkFlagRequired("url")
}
