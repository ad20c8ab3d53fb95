package bdd

import "time"

// Outcome is the result of evaluating a single step.
type Outcome int

const (
	// OutcomeSatisfied means the step evaluated to true.
	OutcomeSatisfied Outcome = iota
	// OutcomeNotVerified means the step evaluated to false.
	OutcomeNotVerified
	// OutcomeException means the step returned an error or panicked.
	OutcomeException
	// OutcomeSkipped means the step never ran because setup failed.
	OutcomeSkipped
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeSatisfied:
		return "satisfied"
	case OutcomeNotVerified:
		return "not_verified"
	case OutcomeException:
		return "exception"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// StepResult captures the outcome of one step.
type StepResult struct {
	name     string
	kind     Kind
	outcome  Outcome
	err      error
	duration time.Duration
}

// NewStepResult creates a StepResult.
func NewStepResult(step Step, outcome Outcome, err error) StepResult {
	return StepResult{
		name:    step.Name(),
		kind:    step.Kind(),
		outcome: outcome,
		err:     err,
	}
}

// Name returns the step name.
func (r StepResult) Name() string {
	return r.name
}

// Kind returns the step kind.
func (r StepResult) Kind() Kind {
	return r.kind
}

// Outcome returns how the step ended.
func (r StepResult) Outcome() Outcome {
	return r.outcome
}

// Error returns the error raised by the step, if any.
func (r StepResult) Error() error {
	return r.err
}

// Duration returns how long the evaluation took.
func (r StepResult) Duration() time.Duration {
	return r.duration
}

// Success returns true if the step was satisfied.
func (r StepResult) Success() bool {
	return r.outcome == OutcomeSatisfied
}

// Skipped returns true if the step never ran.
func (r StepResult) Skipped() bool {
	return r.outcome == OutcomeSkipped
}

// WithDuration returns a copy with the duration set.
func (r StepResult) WithDuration(d time.Duration) StepResult {
	r.duration = d
	return r
}

// Result is the structured outcome of one scenario run.
type Result struct {
	RunID    string
	Scenario string
	SetupErr error
	Steps    []StepResult
	Duration time.Duration
}

// Passed reports whether setup succeeded and every step was satisfied.
func (r Result) Passed() bool {
	if r.SetupErr != nil {
		return false
	}
	for _, s := range r.Steps {
		if !s.Success() {
			return false
		}
	}
	return true
}

// Failures returns the steps that were not satisfied, skipped steps included.
func (r Result) Failures() []StepResult {
	var out []StepResult
	for _, s := range r.Steps {
		if !s.Success() {
			out = append(out, s)
		}
	}
	return out
}

// Count returns how many steps ended with the given outcome.
func (r Result) Count(o Outcome) int {
	n := 0
	for _, s := range r.Steps {
		if s.outcome == o {
			n++
		}
	}
	return n
}
