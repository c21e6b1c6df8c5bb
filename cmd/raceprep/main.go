// Command raceprep is the operator CLI: it generates packages outside
// the webhook path, re-checks a plan's intensity distribution, and runs
// the pre-delivery checklist.
package main

import (
	stderrors "errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/raceprep/raceprep/internal/logging"
)

// Exit codes: 0 ok, 1 fatal failure, 2 validation failure. Both
// sentinels mean the command already printed its diagnosis.
var (
	errFatal      = stderrors.New("fatal failure")
	errValidation = stderrors.New("validation failed")
)

type rootOptions struct {
	dataDir string
	verbose bool
}

func (o *rootOptions) logger() *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "raceprep",
		Short:         "Operate the training package generator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "./athletes",
		"Directory holding one subdirectory per athlete")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newGenerateCmd(opts))
	cmd.AddCommand(newValidateDistributionCmd(opts))
	cmd.AddCommand(newChecklistCmd(opts))
	return cmd
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case stderrors.Is(err, errValidation):
		return 2
	default:
		return 1
	}
}

func main() {
	err := newRootCmd().Execute()
	if err != nil && !stderrors.Is(err, errFatal) && !stderrors.Is(err, errValidation) {
		os.Stderr.WriteString("error: " + err.Error() + "\n")
	}
	os.Exit(exitCode(err))
}
