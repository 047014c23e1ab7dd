package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the TaskDeck version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if isJSON() {
			return printJSON(cmd.OutOrStdout(), versionResponse{Version: GetVersion()})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "taskdeck version %s\n", GetVersion())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
