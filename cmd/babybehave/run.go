package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/babybehave/bdd"
	"github.com/felixgeelhaar/babybehave/internal/adapters/logging"
	"github.com/felixgeelhaar/babybehave/internal/config"
	"github.com/felixgeelhaar/babybehave/suite"
)

type runOptions struct {
	*globalOptions
	policy   string
	format   string
	color    bool
	humanize bool
}

func newRunCmd(global *globalOptions) *cobra.Command {
	opts := &runOptions{globalOptions: global}

	cmd := &cobra.Command{
		Use:   "run [scenario...]",
		Short: "Run scenarios and print a summary",
		Long: `Run the named scenarios, or all of them, in registration order.

Each scenario prints its trace as it runs. A summary follows in the
selected format. The exit status is 1 when any scenario fails.

With --format json or yaml the trace goes to stderr so stdout stays
machine-readable.`,
		Example: `  babybehave run
  babybehave run calculator/addition --format json
  babybehave run --policy abort`,
		ValidArgsFunction: completeScenarioIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args)
		},
	}

	cmd.Flags().StringVar(&opts.policy, "policy", "", "failure policy (collect, abort)")
	cmd.Flags().StringVar(&opts.format, "format", "", "summary format (text, json, yaml)")
	cmd.Flags().BoolVar(&opts.color, "color", false, "colored trace and summary")
	cmd.Flags().BoolVar(&opts.humanize, "humanize", false, "print scenario names as sentences")

	_ = cmd.RegisterFlagCompletionFunc("policy", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{
			"collect\tRecord failures and keep going",
			"abort\tExit on the first failure",
		}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (o *runOptions) run(cmd *cobra.Command, ids []string) error {
	cfg, err := loadConfig(o.configFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("policy") {
		cfg.Policy = o.policy
	}
	if flags.Changed("format") {
		cfg.Format = o.format
	}
	if flags.Changed("color") {
		cfg.Color = o.color
	}
	if flags.Changed("humanize") {
		cfg.Humanize = o.humanize
	}
	if o.verbose {
		cfg.Log.Enabled = true
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	format := cfg.ReportFormat()

	trace := stdout
	if format != suite.FormatText {
		trace = stderr
	}

	runner := suite.NewRunner(
		suite.WithOutput(trace),
		suite.WithErrorOutput(stderr),
		suite.WithPolicy(cfg.RunnerPolicy()),
		suite.WithColor(cfg.Color),
		suite.WithLogger(newLogger(stderr, cfg)),
	)

	report, err := runner.Run(exampleSuite(), ids...)
	if err != nil {
		return err
	}

	err = report.Render(stdout, suite.RenderOptions{
		Format:   format,
		Color:    cfg.Color,
		Humanize: cfg.Humanize,
	})
	if err != nil {
		return err
	}

	if !report.OK() {
		return errScenariosFailed
	}
	return nil
}

// loadConfig reads path, or the default file in the working directory, then
// applies environment overrides.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			path = config.Discover(wd)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg *config.Config) bdd.Logger {
	if !cfg.Log.Enabled {
		return bdd.NewNopLogger()
	}
	return logging.NewConsoleLogger(
		logging.WithOutput(w),
		logging.WithLevel(cfg.LogLevel()),
		logging.WithJSONFormat(cfg.Log.JSON),
		logging.WithColor(cfg.Color),
	)
}
