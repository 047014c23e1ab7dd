package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/josephgoksu/TaskDeck/internal/app"
	"github.com/josephgoksu/TaskDeck/internal/logger"
	"github.com/josephgoksu/TaskDeck/internal/ui"
	"github.com/josephgoksu/TaskDeck/internal/util"
	"github.com/josephgoksu/TaskDeck/models"
	"github.com/josephgoksu/TaskDeck/store"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func isJSON() bool {
	return viper.GetBool("json")
}

func isQuiet() bool {
	return viper.GetBool("quiet")
}

func isVerbose() bool {
	return viper.GetBool("verbose")
}

// interactive reports whether prompts may be shown. Tests replace it.
var interactive = ui.IsInteractive

func printJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

// cliNotifier prints session notifications as status lines.
type cliNotifier struct {
	out    io.Writer
	errOut io.Writer
}

func (n cliNotifier) Notify(note app.Notification) {
	if isJSON() {
		return
	}
	switch {
	case note.Severity == app.SeverityError:
		fmt.Fprintf(n.errOut, "✗ %s\n", note.Message)
	case isQuiet():
	case note.Milestone > 0:
		fmt.Fprintf(n.out, "%s\n", note.Message)
	case note.Severity == app.SeveritySuccess:
		fmt.Fprintf(n.out, "✓ %s\n", note.Message)
	default:
		fmt.Fprintf(n.out, "• %s\n", note.Message)
	}
}

// openSession opens the configured store and loads a session over it.
// A nil notifier prints notifications to the command's output.
func openSession(cmd *cobra.Command, notifier app.Notifier) (*app.Session, error) {
	cfg := GetConfig()
	kv, err := store.Open(store.Options{
		Backend:  cfg.Storage.Backend,
		Dir:      cfg.Storage.Dir,
		MaxBytes: cfg.Storage.MaxBytes,
	})
	if err != nil {
		if errors.Is(err, store.ErrLocked) {
			return nil, fmt.Errorf("another taskdeck process is using %s: %w", cfg.Storage.Dir, err)
		}
		return nil, fmt.Errorf("open task store: %w", err)
	}

	theme, err := app.ParseTheme(cfg.UI.Theme)
	if err != nil {
		theme = app.ThemeLight
	}
	if notifier == nil {
		notifier = cliNotifier{out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
	}

	slog.Debug("opening session", "backend", cfg.Storage.Backend, "dir", cfg.Storage.Dir)
	return app.Open(store.NewGateway(kv), app.Options{
		UndoLimit:    cfg.Undo.Limit,
		DefaultTheme: theme,
		ExportDir:    cfg.Export.Dir,
		ExportFormat: cfg.Export.Format,
		Notifier:     notifier,
		Logger:       slog.Default(),
	}), nil
}

// withSession runs fn against a freshly opened session and always closes it.
func withSession(cmd *cobra.Command, fn func(*app.Session) error) (err error) {
	s, err := openSession(cmd, nil)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close task store: %w", cerr))
		}
	}()
	return fn(s)
}

// resolveTaskArg returns the task ID named by args[0], or asks the user to
// pick one when no argument was given and the terminal allows it.
func resolveTaskArg(cmd *cobra.Command, s *app.Session, args []string, label string, filterFn func(models.Task) bool) (string, error) {
	if len(args) > 0 {
		id, err := s.ResolveID(args[0])
		if err != nil {
			return "", err
		}
		return id, nil
	}
	if isJSON() || !interactive() {
		return "", errors.New("a task ID is required when not running interactively")
	}

	selected, err := selectTaskInteractive(s.Tasks(), filterFn, label)
	switch {
	case errors.Is(err, promptui.ErrInterrupt), errors.Is(err, promptui.ErrEOF):
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return "", errCancelled
	case errors.Is(err, ErrNoTasksFound):
		fmt.Fprintln(cmd.OutOrStdout(), "No tasks available.")
		return "", errCancelled
	case err != nil:
		return "", fmt.Errorf("task selection failed: %w", err)
	}
	return selected.ID, nil
}

// confirm asks a yes/no question. Non-interactive runs and --yes count as yes.
func confirm(label string, assumeYes bool) bool {
	if assumeYes || isJSON() || !interactive() {
		return true
	}
	prompt := promptui.Prompt{Label: label, IsConfirm: true}
	_, err := prompt.Run()
	return err == nil
}

// finish prints r as JSON when asked and turns a failed result into an exit status.
func finish(cmd *cobra.Command, r app.Result) error {
	if isJSON() {
		if err := printJSON(cmd.OutOrStdout(), r); err != nil {
			return err
		}
	}
	if !r.Success {
		return errReported
	}
	return nil
}

// recordAction notes the intent for crash reports and the diagnostic log.
func recordAction(action string, attrs ...any) {
	logger.SetLastAction(action)
	slog.Debug("cli action", append([]any{"action", action}, attrs...)...)
}

func shortID(id string) string {
	return util.ShortID(id, 0)
}

func today() time.Time {
	return time.Now()
}
