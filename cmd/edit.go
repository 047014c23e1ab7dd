package cmd

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/TaskDeck/internal/app"
	"github.com/spf13/cobra"
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit <task_id> <text>",
	Short: "Change a task's text",
	Long: `Replace the text of a task.

Blank text or text identical to the current one leaves the task unchanged.

Example:
  taskdeck edit 0f8f "Buy oat milk"`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(s *app.Session) error {
			id, err := s.ResolveID(args[0])
			if err != nil {
				return err
			}
			recordAction("edit", "id", id)

			r := s.Edit(id, strings.Join(args[1:], " "))
			if r.Message == app.MsgNoChange {
				if isJSON() {
					return printJSON(cmd.OutOrStdout(), r)
				}
				if !isQuiet() {
					fmt.Fprintf(cmd.OutOrStdout(), "• %s\n", r.Message)
				}
				return nil
			}
			return finish(cmd, r)
		})
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
