package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/babybehave/internal/config"
)

// errScenariosFailed is returned by run when at least one scenario failed.
// The report already explains why, so it is not printed again.
var errScenariosFailed = errors.New("one or more scenarios failed")

// globalOptions holds the persistent flags.
type globalOptions struct {
	configFile string
	verbose    bool
}

func newRootCmd() (*cobra.Command, *globalOptions) {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "babybehave",
		Short: "Run behaviour-driven scenarios",
		Long: `babybehave runs Given/When/Then scenarios and reports which ones hold.

Each scenario builds a fresh context in its Given step, then evaluates
its steps in order:
  Given → With → When → Then (And / Or / But)`,
		SilenceErrors: true, // We handle error formatting ourselves
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default: babybehave.yaml in the current directory)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(newRunCmd(opts), newListCmd(), newVersionCmd())
	registerFlagCompletions(cmd)

	return cmd, opts
}

// Execute runs the root command with os.Args.
func Execute() error {
	cmd, opts := newRootCmd()
	err := cmd.Execute()
	if err != nil && !errors.Is(err, errScenariosFailed) {
		printErrorTo(cmd.ErrOrStderr(), err, opts.verbose)
	}
	return err
}

// formatError returns a user-friendly error message. Underlying errors are
// shown only when verbose is set.
func formatError(err error, verbose bool) string {
	var userErr *config.UserError
	if errors.As(err, &userErr) {
		msg := userErr.Error()
		if userErr.Suggestion != "" {
			msg += fmt.Sprintf("\n\nSuggestion: %s", userErr.Suggestion)
		}
		if verbose && userErr.Underlying != nil {
			msg += fmt.Sprintf("\n\nTechnical details: %v", userErr.Underlying)
		}
		return msg
	}
	return err.Error()
}

func printErrorTo(w io.Writer, err error, verbose bool) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", formatError(err, verbose))
}

func registerFlagCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("config", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml", "toml", "ini"}, cobra.ShellCompDirectiveFilterFileExt
	})
}
