package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crguezl/tinyclonec/internal/config"
	"github.com/crguezl/tinyclonec/internal/core"
	"github.com/crguezl/tinyclonec/internal/store"
)

var statsCode string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print a short link's destination and view count.",
	Long: `Looks up the short code given with --code and prints the stored URL,
the view count, and the creation time. Looking up a code this way does
not count as a view.

Example:
  tinyclonec stats --code=1z`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromEnv()

		st, err := store.Open(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		svc := core.NewService(st)
		l, err := svc.Metadata(cmd.Context(), statsCode)
		if err != nil {
			if core.IsNotFound(err) {
				return fmt.Errorf("no link with code %q", statsCode)
			}
			return err
		}

		fmt.Printf("code:    %s\n", l.Code())
		fmt.Printf("url:     %s\n", l.URL)
		fmt.Printf("views:   %d\n", l.ViewCount)
		fmt.Printf("created: %s\n", l.CreatedAt.Format("2006-01-02 15:04:05 UTC"))
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsCode, "code", "", "short code to look up")
	_ = statsCmd.MarkFlagRequired("code")
}
