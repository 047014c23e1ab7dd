package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/josephgoksu/TaskDeck/internal/app"
	"github.com/josephgoksu/TaskDeck/internal/util"
	"github.com/spf13/cobra"
)

// moveCmd represents the move command
var moveCmd = &cobra.Command{
	Use:   "move <task_id> <position>",
	Short: "Move a task to a position in the list",
	Long: `Move one task to a 1-based position in the full list.
Positions past the end place the task last.

Example:
  taskdeck move 0f8f 1`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos, err := strconv.Atoi(args[1])
		if err != nil || pos < 1 {
			return fmt.Errorf("position must be a number of 1 or more, got %q", args[1])
		}
		return withSession(cmd, func(s *app.Session) error {
			id, err := s.ResolveID(args[0])
			if err != nil {
				return err
			}
			recordAction("move", "id", id, "position", pos)
			return finish(cmd, s.Move(id, pos-1))
		})
	},
}

// reorderCmd represents the reorder command
var reorderCmd = &cobra.Command{
	Use:   "reorder <task_id>...",
	Short: "Put tasks in the given order",
	Long: `Rearrange the list so the given tasks come first, in the given order.
Tasks that are not named keep their relative order after them. IDs that match
no task are ignored.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(s *app.Session) error {
			ids := make([]string, 0, len(args))
			for _, arg := range args {
				id, err := s.ResolveID(arg)
				switch {
				case errors.Is(err, util.ErrNotFound):
					id = arg
				case err != nil:
					return err
				}
				ids = append(ids, id)
			}
			recordAction("reorder", "count", len(ids))
			return finish(cmd, s.Reorder(ids))
		})
	},
}

func init() {
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(reorderCmd)
}
