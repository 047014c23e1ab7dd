package cmd

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/TaskDeck/internal/app"
	"github.com/josephgoksu/TaskDeck/internal/ui"
	"github.com/spf13/cobra"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task counts and progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(s *app.Session) error {
			stats := s.Stats()
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), stats)
			}

			var b strings.Builder
			fmt.Fprintf(&b, "Total:     %d\n", stats.Total)
			fmt.Fprintf(&b, "Active:    %d\n", stats.Active)
			fmt.Fprintf(&b, "Completed: %d\n", stats.Completed)
			fmt.Fprintf(&b, "%s %d%%", ui.ProgressBar(stats.PercentComplete, 20), stats.PercentComplete)

			fmt.Fprintln(cmd.OutOrStdout(), ui.NewPanel(ui.NewStyles(s.Theme()), "Progress", b.String()).Render())
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
