package cmd

import (
	"errors"
	"fmt"

	"github.com/josephgoksu/TaskDeck/internal/ui"
	"github.com/spf13/cobra"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:     "tui",
	Aliases: []string{"ui"},
	Short:   "Open the interactive task list",
	Long: `Open a full-screen task list. The whole run is one session, so "u"
undoes any of the last changes made in it. The key reference is shown at the
bottom of the screen.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		if !interactive() {
			return errors.New("the interactive view needs a terminal")
		}
		recordAction("tui")

		toasts := ui.NewToasts()
		s, err := openSession(cmd, toasts)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := s.Close(); cerr != nil {
				err = errors.Join(err, fmt.Errorf("close task store: %w", cerr))
			}
		}()
		return ui.Run(s, toasts, true)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
