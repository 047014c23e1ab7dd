/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/josephgoksu/TaskDeck/internal/logger"
	"github.com/josephgoksu/TaskDeck/internal/utils"
	"github.com/josephgoksu/TaskDeck/models"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	jsonOut bool
	quiet   bool
	// ErrNoTasksFound is returned when an interactive selection is attempted but no tasks are available.
	ErrNoTasksFound = errors.New("no tasks found matching your criteria")
	// version is the application version.
	version = "0.1.0"
)

// errReported marks a failure whose message the user has already seen.
var errReported = errors.New("already reported")

// errCancelled is returned when the user backs out of a prompt.
var errCancelled = errors.New("cancelled")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "taskdeck",
	Short: "TaskDeck keeps a prioritized task list in your terminal.",
	Long: `TaskDeck is a single-user task list for the command line.

Add tasks with a priority and an optional due date, complete them, search and
filter them, reorder them, and export them. Run "taskdeck tui" for the
interactive view, where undo covers every change made during the session.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		bindGlobalFlags(cmd.Root())
		if err := InitConfig(); err != nil {
			return err
		}
		return setupLogging(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLogging()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	_ = closeLogging()
	if err == nil {
		return
	}
	if !errors.Is(err, errReported) {
		PrintError("Error: "+err.Error(), err)
	}
	os.Exit(1)
}

// GetVersion returns the application version.
func GetVersion() string {
	return version
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.taskdeck/.taskdeck.yaml, $HOME/.taskdeck.yaml or ./.taskdeck.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "print results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only print errors")

	bindGlobalFlags(rootCmd)
}

// bindGlobalFlags binds the persistent flags to viper. It runs again before
// each command because tests reset viper between runs.
func bindGlobalFlags(root *cobra.Command) {
	for _, name := range []string{"config", "verbose", "json", "quiet"} {
		_ = viper.BindPFlag(name, root.PersistentFlags().Lookup(name))
	}
}

var logCloser func() error

func setupLogging(cmd *cobra.Command) error {
	cfg := GetConfig()
	_ = closeLogging()
	_, closeFn, err := logger.Setup(logger.Options{
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		Verbose: cfg.Verbose,
		Stderr:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	logCloser = closeFn

	logger.SetBasePath(cfg.Storage.Dir)
	logger.SetVersion(version)
	logger.SetCommand(cmd.CommandPath())
	return nil
}

func closeLogging() error {
	if logCloser == nil {
		return nil
	}
	err := logCloser()
	logCloser = nil
	return err
}

// selectTaskInteractive presents a prompt to the user to select a task from a list.
// It can be filtered using the provided filter function.
func selectTaskInteractive(all []models.Task, filterFn func(models.Task) bool, label string) (models.Task, error) {
	var tasks []models.Task
	for _, t := range all {
		if filterFn == nil || filterFn(t) {
			tasks = append(tasks, t)
		}
	}
	if len(tasks) == 0 {
		return models.Task{}, ErrNoTasksFound
	}

	type item struct {
		models.Task
		Short  string
		Status string
	}
	items := make([]item, len(tasks))
	for i, t := range tasks {
		status := "active"
		if t.Completed {
			status = "completed"
		}
		items[i] = item{Task: t, Short: utils.Truncate(t.Text, 60), Status: status}
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   `> {{ .Short | cyan }} ({{ .Priority }}, {{ .Status }})`,
		Inactive: `  {{ .Short | faint }} ({{ .Priority }}, {{ .Status }})`,
		Selected: `{{ "✔" | green }} {{ .Short | faint }}`,
		Details: `
--------- Task Details ----------
{{ "ID:\t" | faint }} {{ .ID }}
{{ "Text:\t" | faint }} {{ .Text }}
{{ "Status:\t" | faint }} {{ .Status }}
{{ "Priority:\t" | faint }} {{ .Priority }}
{{ "Due:\t" | faint }} {{ if .DueDate }}{{ .DueDate }}{{ else }}-{{ end }}`,
	}

	searcher := func(input string, index int) bool {
		t := tasks[index]
		input = strings.ToLower(input)
		return strings.Contains(strings.ToLower(t.Text), input) || strings.Contains(t.ID, input)
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     items,
		Templates: templates,
		Searcher:  searcher,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return models.Task{}, err // Return error as is (includes promptui.ErrInterrupt)
	}

	return tasks[i], nil
}
