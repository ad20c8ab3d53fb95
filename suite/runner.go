package suite

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/babybehave/bdd"
)

// Policy names the failure policy a Runner installs on every scenario.
type Policy string

const (
	// PolicyCollect records failures and keeps running later scenarios.
	PolicyCollect Policy = "collect"
	// PolicyAbort terminates the process on the first failure.
	PolicyAbort Policy = "abort"
)

// IsValid reports whether p is a known policy.
func (p Policy) IsValid() bool {
	switch p {
	case PolicyCollect, PolicyAbort:
		return true
	default:
		return false
	}
}

// ParsePolicy parses a policy name.
func ParsePolicy(s string) (Policy, error) {
	p := Policy(s)
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q (valid: collect, abort)", ErrInvalidPolicy, s)
	}
	return p, nil
}

// Runner executes suite scenarios sequentially.
type Runner struct {
	out    io.Writer
	errOut io.Writer
	policy Policy
	color  bool
	logger bdd.Logger
	exit   func(code int)
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithOutput sets the trace writer (default: os.Stdout).
func WithOutput(w io.Writer) RunnerOption {
	return func(r *Runner) {
		r.out = w
	}
}

// WithErrorOutput sets where the abort policy prints (default: os.Stderr).
func WithErrorOutput(w io.Writer) RunnerOption {
	return func(r *Runner) {
		r.errOut = w
	}
}

// WithPolicy sets the failure policy (default: collect).
func WithPolicy(p Policy) RunnerOption {
	return func(r *Runner) {
		r.policy = p
	}
}

// WithColor enables colored traces.
func WithColor(enabled bool) RunnerOption {
	return func(r *Runner) {
		r.color = enabled
	}
}

// WithLogger sets the logger handed to every scenario.
func WithLogger(l bdd.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithExit replaces os.Exit for the abort policy.
func WithExit(fn func(code int)) RunnerOption {
	return func(r *Runner) {
		r.exit = fn
	}
}

// NewRunner creates a Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		out:    os.Stdout,
		errOut: os.Stderr,
		policy: PolicyCollect,
		logger: bdd.NewNopLogger(),
		exit:   os.Exit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the scenarios named by ids, or every scenario when ids is
// empty, in order. Unknown ids are rejected before anything runs.
func (r *Runner) Run(s *Suite, ids ...string) (*Report, error) {
	if !r.policy.IsValid() {
		return nil, fmt.Errorf("run suite %q: %w: %q", s.Name(), ErrInvalidPolicy, r.policy)
	}

	selected, err := r.resolve(s, ids)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:     uuid.New().String(),
		Suite:     s.Name(),
		Scenarios: make([]ScenarioReport, 0, len(selected)),
	}
	log := r.logger.With(bdd.F("suite", s.Name()), bdd.F("suite_run_id", report.RunID))
	ctx := context.Background()

	start := time.Now()
	log.Info(ctx, "suite started", bdd.F("scenarios", len(selected)))

	for _, id := range selected {
		sr, err := r.runOne(s, id, log)
		if err != nil {
			return nil, err
		}
		report.add(sr)
	}

	report.Duration = time.Since(start)
	log.Info(ctx, "suite finished",
		bdd.F("passed", report.Passed),
		bdd.F("failed", report.Failed),
		bdd.F("duration", report.Duration))

	return report, nil
}

func (r *Runner) resolve(s *Suite, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return s.IDs(), nil
	}
	for _, id := range ids {
		if _, ok := s.Get(id); !ok {
			return nil, fmt.Errorf("run suite %q: %w: %s", s.Name(), ErrScenarioNotFound, id)
		}
	}
	return ids, nil
}

func (r *Runner) runOne(s *Suite, id string, log bdd.Logger) (ScenarioReport, error) {
	def, _ := s.Get(id)
	sc := def()
	if sc == nil {
		return ScenarioReport{}, fmt.Errorf("run scenario %q: definition returned nil", id)
	}

	var policy bdd.FailurePolicy = bdd.NewCollectPolicy()
	if r.policy == PolicyAbort {
		policy = bdd.NewAbortPolicy(r.errOut).WithExit(r.exit)
	}

	sc.Configure(
		bdd.WithOutput(r.out),
		bdd.WithErrorOutput(r.errOut),
		bdd.WithColor(r.color),
		bdd.WithFallbackPolicy(policy),
		bdd.WithLogger(log.With(bdd.F("scenario_id", id))),
	)

	result, err := sc.Run()
	if err != nil {
		return ScenarioReport{}, fmt.Errorf("run scenario %q: %w", id, err)
	}

	return newScenarioReport(id, result), nil
}
