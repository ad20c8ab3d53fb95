package bdd

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Phase is the lifecycle position of a Scenario.
type Phase string

const (
	// PhaseBuilding accepts step registrations.
	PhaseBuilding Phase = "building"
	// PhaseExecuting is entered when Run starts.
	PhaseExecuting Phase = "executing"
	// PhaseDone is terminal; the scenario never runs again.
	PhaseDone Phase = "done"
)

// Lifecycle events.
const (
	eventRun      = "RUN"
	eventComplete = "COMPLETE"
)

// lifecycleContext is the statekit context type. The machine only tracks the
// phase, so it carries no data.
type lifecycleContext struct{}

// lifecycle drives the building -> executing -> done transitions.
type lifecycle struct {
	interp *statekit.Interpreter[lifecycleContext]
	final  Phase
}

func newLifecycle() *lifecycle {
	machine, err := statekit.NewMachine[lifecycleContext]("scenario-lifecycle").
		WithInitial("building").
		WithContext(lifecycleContext{}).
		State("building").
		On(eventRun).Target("executing").Done().
		State("executing").
		On(eventComplete).Target("done").Done().
		// done is terminal; a repeated RUN leaves it there.
		State("done").
		On(eventRun).Target("done").Done().
		Build()
	if err != nil {
		panic(fmt.Sprintf("bdd: invalid lifecycle machine: %v", err))
	}

	interp := statekit.NewInterpreter(machine)
	interp.Start()
	return &lifecycle{interp: interp}
}

// phase returns the current phase.
func (l *lifecycle) phase() Phase {
	if l.interp == nil {
		return l.final
	}
	return Phase(l.interp.State().Value)
}

// begin moves building -> executing. It reports false if the scenario has
// already left the building phase.
func (l *lifecycle) begin() bool {
	if l.interp == nil || Phase(l.interp.State().Value) != PhaseBuilding {
		return false
	}
	l.interp.Send(statekit.Event{Type: eventRun})
	return true
}

// finish moves executing -> done and releases the interpreter.
func (l *lifecycle) finish() {
	if l.interp == nil {
		return
	}
	l.interp.Send(statekit.Event{Type: eventComplete})
	l.final = Phase(l.interp.State().Value)
	l.interp.Stop()
	l.interp = nil
}
