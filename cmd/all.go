package cmd

import (
	"fmt"

	"github.com/josephgoksu/TaskDeck/internal/app"
	"github.com/spf13/cobra"
)

// allCmd represents the all command
var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Complete every task, or reactivate all if none is active",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(s *app.Session) error {
			if len(s.Tasks()) == 0 {
				if !isJSON() {
					fmt.Fprintln(cmd.OutOrStdout(), "No tasks yet.")
				}
				return nil
			}
			recordAction("toggle-all")
			return finish(cmd, s.ToggleAll())
		})
	},
}

func init() {
	rootCmd.AddCommand(allCmd)
}
