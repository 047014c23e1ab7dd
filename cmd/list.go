/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/TaskDeck/internal/app"
	"github.com/josephgoksu/TaskDeck/internal/task"
	"github.com/josephgoksu/TaskDeck/internal/ui"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List tasks in their saved order.

Examples:
  taskdeck list
  taskdeck list --filter active
  taskdeck list --search milk`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listFilter string
	listSearch string
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "all", "Show all, active or completed tasks")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Only show tasks whose text contains this (case-insensitive)")
}

func runList(cmd *cobra.Command, args []string) error {
	filter, err := task.ParseFilter(listFilter)
	if err != nil {
		return err
	}

	return withSession(cmd, func(s *app.Session) error {
		tasks := s.View(filter, listSearch)
		stats := s.Stats()

		if isJSON() {
			return printJSON(cmd.OutOrStdout(), listResponse{
				Filter: filter,
				Query:  listSearch,
				Tasks:  tasks,
				Stats:  stats,
			})
		}

		out := cmd.OutOrStdout()
		if len(tasks) == 0 {
			fmt.Fprintln(out, ui.EmptyMessage(filter, listSearch))
			if stats.Total == 0 {
				fmt.Fprintln(out, `Add one with: taskdeck add "Buy milk"`)
			}
			return nil
		}

		st := ui.NewStyles(s.Theme())
		fmt.Fprint(out, ui.RenderTaskTable(tasks, today(), st))
		if !isQuiet() {
			fmt.Fprintln(out)
			fmt.Fprintln(out, ui.RenderStats(stats, st))
		}
		return nil
	})
}
