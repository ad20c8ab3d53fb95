package bdd

// Kind tags a step with its role in the scenario.
type Kind int

const (
	// KindPrecondition establishes or asserts the pre-state ("With").
	KindPrecondition Kind = iota
	// KindAction performs the behavior under test ("When").
	KindAction
	// KindPostcondition asserts the expected outcome ("Then").
	KindPostcondition
	// KindAnd continues the previous step.
	KindAnd
	// KindOr continues the previous step. It does not branch.
	KindOr
	// KindBut continues the previous step with a contrast.
	KindBut
)

type kindInfo struct {
	label   string
	name    string
	failure string
}

var kinds = [...]kindInfo{
	KindPrecondition:  {label: "With", name: "Precondition", failure: "Precondition failed"},
	KindAction:        {label: "When", name: "Action", failure: "Action failed"},
	KindPostcondition: {label: "Then", name: "Postcondition", failure: "Postcondition failed"},
	KindAnd:           {label: "And", name: "And condition", failure: "And condition failed"},
	KindOr:            {label: "Or", name: "Or condition", failure: "Or condition failed"},
	KindBut:           {label: "But", name: "But condition", failure: "But condition failed"},
}

// IsValid reports whether k is one of the six step kinds.
func (k Kind) IsValid() bool {
	return k >= KindPrecondition && k <= KindBut
}

// Label returns the keyword printed in the trace.
func (k Kind) Label() string {
	if !k.IsValid() {
		return "Unknown"
	}
	return kinds[k].label
}

// String returns the descriptive name of the kind.
func (k Kind) String() string {
	if !k.IsValid() {
		return "Unknown"
	}
	return kinds[k].name
}

// FailureMessage returns the message reported when a step of this kind
// evaluates to false.
func (k Kind) FailureMessage() string {
	if !k.IsValid() {
		return "Step failed"
	}
	return kinds[k].failure
}

// StepFunc evaluates one step against the scenario's Context.
// Returning false means the expected condition did not hold; returning an
// error (or panicking) means the evaluation itself could not complete.
type StepFunc func(ctx *Context) (bool, error)

// SetupFunc seeds the Context before any step runs.
type SetupFunc func(ctx *Context) error

// Step is a named, kind-tagged unit of evaluation.
type Step struct {
	name string
	kind Kind
	fn   StepFunc
}

// NewStep creates a Step.
func NewStep(kind Kind, name string, fn StepFunc) Step {
	return Step{name: name, kind: kind, fn: fn}
}

// Name returns the step name.
func (s Step) Name() string {
	return s.name
}

// Kind returns the step kind.
func (s Step) Kind() Kind {
	return s.kind
}

// evaluate runs the step function, turning panics into errors.
func (s Step) evaluate(ctx *Context) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			err = recoveredError(r)
		}
	}()
	return s.fn(ctx)
}

// recoveredError keeps lookup errors raised by MustGet as they are.
func recoveredError(r any) error {
	if lookupErr, isLookup := r.(*LookupError); isLookup {
		return lookupErr
	}
	return &PanicError{Value: r}
}
