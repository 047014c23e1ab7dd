package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/josephgoksu/TaskDeck/internal/app"
	"github.com/josephgoksu/TaskDeck/internal/ui"
	"github.com/josephgoksu/TaskDeck/store"
	"github.com/spf13/cobra"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all tasks to a dated backup file",
	Long: `Write every task to todo-backup-YYYY-MM-DD.<ext> in the export directory.

The file holds the tasks plus the export date and task counts, and can be read
back with "taskdeck import".

Examples:
  taskdeck export
  taskdeck export --format yaml --dir ~/backups`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportFormat string
	exportDir    string
	exportList   bool
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all tasks with the contents of a backup file",
	Long: `Replace the task list with the tasks in an export file.
The format is picked from the file extension (.json, .yaml, .yml, .toml).
An invalid file is rejected and the current tasks are kept.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: "+strings.Join(store.Formats(), ", ")+" (default from export.format)")
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "Directory to write to (default from export.dir)")
	exportCmd.Flags().BoolVarP(&exportList, "list", "l", false, "List existing backups in the export directory instead of writing one")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	dir := exportDir
	if dir == "" {
		dir = cfg.Export.Dir
	}
	if exportList {
		return listBackups(cmd, dir)
	}
	format := strings.ToLower(exportFormat)
	if format == "" {
		format = cfg.Export.Format
	}
	if !slices.Contains(store.Formats(), format) {
		return fmt.Errorf("unknown export format %q (want %s)", format, strings.Join(store.Formats(), ", "))
	}
	recordAction("export", "dir", dir, "format", format)

	return withSession(cmd, func(s *app.Session) error {
		r, err := s.ExportTo(dir, format)
		if err != nil {
			LogError("export failed", err)
		}
		if err := finish(cmd, r); err != nil {
			return err
		}
		if !isJSON() && !isQuiet() {
			body := fmt.Sprintf("%d tasks → %s", r.Count, r.Path)
			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderSuccessPanel(ui.NewStyles(s.Theme()), "Backup written", body))
		}
		return nil
	})
}

func runImport(cmd *cobra.Command, args []string) error {
	recordAction("import", "path", args[0])

	return withSession(cmd, func(s *app.Session) error {
		r, err := s.Import(args[0])
		if err != nil && isVerbose() && !isJSON() {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %v\n", err)
		}
		return finish(cmd, r)
	})
}

func listBackups(cmd *cobra.Command, dir string) error {
	paths, err := store.NewArchiveStore(nil).List(dir)
	if err != nil {
		return err
	}
	if isJSON() {
		if paths == nil {
			paths = []string{}
		}
		return printJSON(cmd.OutOrStdout(), paths)
	}
	if len(paths) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No backups in %s\n", dir)
		return nil
	}
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}
