package cmd

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// newLogger discards everything unless --verbose is set, in which case
// progress is written to standard error.
func newLogger(cmd *cobra.Command) zerolog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return zerolog.Nop()
	}
	output := zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.RFC3339}
	return zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}
