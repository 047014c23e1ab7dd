package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"
)

// PrintError prints an error message without exiting, allowing for recovery.
// By default the user-friendly message is shown; with --verbose the
// underlying technical error is printed instead.
func PrintError(userMsg string, technicalErr error) {
	if viper.GetBool("verbose") && technicalErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", technicalErr)
	} else {
		fmt.Fprintln(os.Stderr, userMsg)
	}
}

// LogError records an error in the diagnostic log. With --verbose the log
// is mirrored to stderr.
func LogError(msg string, err error) {
	if err != nil {
		slog.Error(msg, "error", err)
		return
	}
	slog.Debug(msg)
}
