/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/josephgoksu/TaskDeck/internal/app"
	"github.com/josephgoksu/TaskDeck/internal/utils"
	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:     "delete [task_id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long:    `Delete a task by its ID or ID prefix. If no ID is provided, an interactive list is shown. In a terminal, a confirmation prompt is displayed unless --yes is given.`,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(s *app.Session) error {
			id, err := resolveTaskArg(cmd, s, args, "Select task to delete", nil)
			if errors.Is(err, errCancelled) {
				return nil
			}
			if err != nil {
				return err
			}

			t, _ := s.Get(id)
			if !confirm(fmt.Sprintf("Delete %q", utils.Truncate(t.Text, 50)), deleteYes) {
				fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled.")
				return nil
			}
			recordAction("delete", "id", id)
			return finish(cmd, s.Delete(id))
		})
	},
}

var deleteYes bool

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
}
