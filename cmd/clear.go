/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/TaskDeck/internal/app"
	"github.com/spf13/cobra"
)

var clearYes bool

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all completed tasks",
	Long:  `Remove every completed task from the list. In a terminal, a confirmation prompt is displayed unless --yes is given.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(s *app.Session) error {
			n := s.Stats().Completed
			if n == 0 {
				if !isJSON() && !isQuiet() {
					fmt.Fprintln(cmd.OutOrStdout(), "No completed tasks to clear.")
				}
				return nil
			}
			if !confirm(fmt.Sprintf("Remove %d completed tasks", n), clearYes) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
			recordAction("clear-completed", "count", n)
			return finish(cmd, s.ClearCompleted())
		})
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Skip the confirmation prompt")
}
