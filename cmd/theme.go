package cmd

import (
	"fmt"

	"github.com/josephgoksu/TaskDeck/internal/app"
	"github.com/spf13/cobra"
)

// themeCmd represents the theme command
var themeCmd = &cobra.Command{
	Use:       "theme [light|dark|toggle]",
	Short:     "Show or change the color theme",
	Long:      `Without an argument, print the current theme. With one, switch to it and remember the choice.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"light", "dark", "toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(s *app.Session) error {
			if len(args) == 0 {
				if isJSON() {
					return printJSON(cmd.OutOrStdout(), themeResponse{Theme: string(s.Theme())})
				}
				fmt.Fprintln(cmd.OutOrStdout(), s.Theme())
				return nil
			}

			if args[0] == "toggle" {
				recordAction("theme", "value", "toggle")
				return finish(cmd, s.ToggleTheme())
			}
			theme, err := app.ParseTheme(args[0])
			if err != nil {
				return err
			}
			recordAction("theme", "value", theme)
			return finish(cmd, s.SetTheme(theme))
		})
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
