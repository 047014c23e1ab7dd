/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/TaskDeck/internal/app"
	"github.com/josephgoksu/TaskDeck/internal/logger"
	"github.com/josephgoksu/TaskDeck/internal/ui"
	"github.com/spf13/cobra"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a task to the top of the list",
	Long: `Add a task to the top of the list.

The text is trimmed and must be between 1 and 200 characters.

Examples:
  taskdeck add "Buy milk"
  taskdeck add "Pay rent" --priority high --due 2026-06-01`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addPriority string
	addDue      string
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "medium", "Priority (high, medium, low)")
	addCmd.Flags().StringVarP(&addDue, "due", "d", "", "Due date (YYYY-MM-DD)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	logger.SetLastInput(text)
	recordAction("add", "priority", addPriority)

	return withSession(cmd, func(s *app.Session) error {
		r := s.Add(text, addPriority, addDue)
		if err := finish(cmd, r); err != nil {
			return err
		}
		if !isJSON() && !isQuiet() {
			t := r.Task
			fmt.Fprintf(cmd.OutOrStdout(), "  %s %s  %s %s\n",
				ui.StatusBox(t.Completed), shortID(t.ID), ui.PriorityIcon(t.Priority), t.Text)
		}
		return nil
	})
}
