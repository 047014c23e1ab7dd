package cmd

import (
	"errors"

	"github.com/josephgoksu/TaskDeck/internal/app"
	"github.com/spf13/cobra"
)

// toggleCmd represents the toggle command
var toggleCmd = &cobra.Command{
	Use:     "toggle [task_id]",
	Aliases: []string{"done"},
	Short:   "Mark a task completed, or active again",
	Long: `Flip a task between active and completed.

The ID may be any unique prefix, with or without the "task-" part. If no ID is
provided, an interactive list is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(s *app.Session) error {
			id, err := resolveTaskArg(cmd, s, args, "Select task to toggle", nil)
			if errors.Is(err, errCancelled) {
				return nil
			}
			if err != nil {
				return err
			}
			recordAction("toggle", "id", id)
			return finish(cmd, s.Toggle(id))
		})
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}
