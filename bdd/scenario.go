package bdd

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
)

// Scenario accumulates steps and executes them once against its own Context.
//
// A Scenario is not safe for concurrent use. It is built by one goroutine
// and run to completion by the same goroutine.
type Scenario struct {
	name   string
	setup  SetupFunc
	ctx    *Context
	steps  []Step
	policy FailurePolicy
	logger Logger
	out    io.Writer
	errOut io.Writer
	color  bool
	life   *lifecycle
}

// Option configures a Scenario.
type Option func(*Scenario)

// WithName overrides the name derived from the setup function.
func WithName(name string) Option {
	return func(s *Scenario) {
		if name != "" {
			s.name = name
		}
	}
}

// WithOutput sets the trace writer (default: os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(s *Scenario) {
		if w != nil {
			s.out = w
		}
	}
}

// WithErrorOutput sets the writer used by the default abort policy (default: os.Stderr).
func WithErrorOutput(w io.Writer) Option {
	return func(s *Scenario) {
		if w != nil {
			s.errOut = w
		}
	}
}

// WithPolicy sets the failure policy (default: abort the process).
func WithPolicy(p FailurePolicy) Option {
	return func(s *Scenario) {
		s.policy = p
	}
}

// WithFallbackPolicy sets the policy used for failures the scenario's own
// callbacks do not handle. Without callbacks it behaves like WithPolicy.
func WithFallbackPolicy(p FailurePolicy) Option {
	return func(s *Scenario) {
		if cb, ok := s.policy.(*Callbacks); ok {
			cb.Fallback = p
			return
		}
		s.policy = p
	}
}

// WithLogger sets the structured logger (default: NopLogger).
func WithLogger(l Logger) Option {
	return func(s *Scenario) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithColor enables colored trace keywords.
func WithColor(enabled bool) Option {
	return func(s *Scenario) {
		s.color = enabled
	}
}

// GivenA starts a scenario. The scenario is named after setup, which seeds
// the Context before the first step runs. Steps are added with the chainable
// registration methods and executed by Run.
func GivenA(setup SetupFunc, opts ...Option) *Scenario {
	s := &Scenario{
		name:   funcName(setup),
		setup:  setup,
		ctx:    NewContext(),
		logger: NewNopLogger(),
		out:    os.Stdout,
		errOut: os.Stderr,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.life = newLifecycle()
	return s
}

// Given is an alias for GivenA.
func Given(setup SetupFunc, opts ...Option) *Scenario {
	return GivenA(setup, opts...)
}

// Configure applies options to an existing scenario.
func (s *Scenario) Configure(opts ...Option) *Scenario {
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the scenario name.
func (s *Scenario) Name() string {
	return s.name
}

// Phase returns the lifecycle phase.
func (s *Scenario) Phase() Phase {
	return s.life.phase()
}

// Context returns the scenario's Context.
func (s *Scenario) Context() *Context {
	return s.ctx
}

// Steps returns the registered steps in execution order.
func (s *Scenario) Steps() []Step {
	out := make([]Step, len(s.steps))
	copy(out, s.steps)
	return out
}

// Step registers a step with an explicit name. Registration after Run is ignored.
func (s *Scenario) Step(kind Kind, name string, fn StepFunc) *Scenario {
	if s.Phase() != PhaseBuilding {
		s.logger.Warn(context.Background(), "step registered after execution was ignored",
			F("scenario", s.name), F("step", name), F("kind", kind.Label()))
		return s
	}
	s.steps = append(s.steps, NewStep(kind, name, fn))
	return s
}

func (s *Scenario) add(kind Kind, fn StepFunc) *Scenario {
	return s.Step(kind, funcName(fn), fn)
}

// With adds a precondition.
func (s *Scenario) With(fn StepFunc) *Scenario { return s.add(KindPrecondition, fn) }

// WithI is an alias for With.
func (s *Scenario) WithI(fn StepFunc) *Scenario { return s.add(KindPrecondition, fn) }

// When adds an action.
func (s *Scenario) When(fn StepFunc) *Scenario { return s.add(KindAction, fn) }

// WhenI is an alias for When.
func (s *Scenario) WhenI(fn StepFunc) *Scenario { return s.add(KindAction, fn) }

// Then adds a postcondition.
func (s *Scenario) Then(fn StepFunc) *Scenario { return s.add(KindPostcondition, fn) }

// ThenI is an alias for Then.
func (s *Scenario) ThenI(fn StepFunc) *Scenario { return s.add(KindPostcondition, fn) }

// And adds a continuation step.
func (s *Scenario) And(fn StepFunc) *Scenario { return s.add(KindAnd, fn) }

// AndI is an alias for And.
func (s *Scenario) AndI(fn StepFunc) *Scenario { return s.add(KindAnd, fn) }

// Or adds a continuation step. It is evaluated like any other step.
func (s *Scenario) Or(fn StepFunc) *Scenario { return s.add(KindOr, fn) }

// OrI is an alias for Or.
func (s *Scenario) OrI(fn StepFunc) *Scenario { return s.add(KindOr, fn) }

// But adds a continuation step.
func (s *Scenario) But(fn StepFunc) *Scenario { return s.add(KindBut, fn) }

// ButI is an alias for But.
func (s *Scenario) ButI(fn StepFunc) *Scenario { return s.add(KindBut, fn) }

// OnConditionFailed overrides the condition-failure callback.
func (s *Scenario) OnConditionFailed(fn func(msg string)) *Scenario {
	s.callbacks().OnConditionFailed = fn
	return s
}

// OnException overrides the exception callback.
func (s *Scenario) OnException(fn func(label string, err error)) *Scenario {
	s.callbacks().OnException = fn
	return s
}

func (s *Scenario) callbacks() *Callbacks {
	if cb, ok := s.policy.(*Callbacks); ok {
		return cb
	}
	cb := &Callbacks{Fallback: s.policy}
	s.policy = cb
	return cb
}

// failurePolicy resolves the policy for a run. A missing policy or callback
// fallback aborts to the error output configured at run time.
func (s *Scenario) failurePolicy() FailurePolicy {
	switch p := s.policy.(type) {
	case nil:
		return NewAbortPolicy(s.errOut)
	case *Callbacks:
		if p.Fallback == nil {
			resolved := *p
			resolved.Fallback = NewAbortPolicy(s.errOut)
			return &resolved
		}
	}
	return s.policy
}

// Run executes the scenario: setup first, then every step in registration
// order. Each failing step is reported to the failure policy and execution
// continues with the next step. If setup fails the steps are skipped.
//
// Run executes at most once; later calls return ErrAlreadyExecuted.
func (s *Scenario) Run() (Result, error) {
	if !s.life.begin() {
		return Result{}, ErrAlreadyExecuted
	}
	defer s.life.finish()

	ctx := context.Background()
	policy := s.failurePolicy()
	runID := uuid.New().String()
	log := s.logger.With(F("scenario", s.name), F("run_id", runID))
	trace := newTracer(s.out, s.color)

	result := Result{
		RunID:    runID,
		Scenario: s.name,
		Steps:    make([]StepResult, 0, len(s.steps)),
	}

	start := time.Now()
	log.Info(ctx, "scenario started", F("steps", len(s.steps)))
	trace.scenario(s.name)

	if err := s.runSetup(); err != nil {
		result.SetupErr = err
		log.Error(ctx, "setup failed, skipping steps", F("error", err))
		policy.ConditionFailed(setupFailureMessage(err))
		for _, step := range s.steps {
			result.Steps = append(result.Steps, NewStepResult(step, OutcomeSkipped, nil))
		}
	} else {
		for _, step := range s.steps {
			trace.step(step.Kind(), step.Name())
			result.Steps = append(result.Steps, s.runStep(ctx, log, policy, step))
		}
	}

	trace.end()
	result.Duration = time.Since(start)
	log.Info(ctx, "scenario finished",
		F("passed", result.Passed()),
		F("duration", result.Duration))

	return result, nil
}

func (s *Scenario) runSetup() (err error) {
	if s.setup == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = recoveredError(r)
		}
	}()
	return s.setup(s.ctx)
}

// runStep evaluates one step. An error takes precedence over the boolean, so
// a step that raises is reported only as an exception.
func (s *Scenario) runStep(ctx context.Context, log Logger, policy FailurePolicy, step Step) StepResult {
	fields := []Field{F("step", step.Name()), F("kind", step.Kind().Label())}

	start := time.Now()
	ok, err := step.evaluate(s.ctx)
	duration := time.Since(start)
	fields = append(fields, F("duration", duration))

	switch {
	case err != nil:
		log.Error(ctx, "step raised an exception", append(fields, F("outcome", OutcomeException.String()), F("error", err))...)
		policy.ExceptionCaught(step.Kind().Label(), err)
		return NewStepResult(step, OutcomeException, err).WithDuration(duration)
	case !ok:
		log.Warn(ctx, "step condition not verified", append(fields, F("outcome", OutcomeNotVerified.String()))...)
		policy.ConditionFailed(step.Kind().FailureMessage())
		return NewStepResult(step, OutcomeNotVerified, nil).WithDuration(duration)
	default:
		log.Debug(ctx, "step satisfied", append(fields, F("outcome", OutcomeSatisfied.String()))...)
		return NewStepResult(step, OutcomeSatisfied, nil).WithDuration(duration)
	}
}
