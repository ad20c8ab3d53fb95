package bdd

import (
	"fmt"
	"io"
	"os"
	"testing"
)

// FailurePolicy decides what happens when a step fails.
// The engine calls exactly one method per failing step and then moves on to
// the next step; any early exit is the policy's own effect.
type FailurePolicy interface {
	// ConditionFailed is called when a step evaluates to false, or when setup fails.
	ConditionFailed(msg string)
	// ExceptionCaught is called when a step returns an error or panics.
	// label is the kind label of the failing step ("With", "Then", ...).
	ExceptionCaught(label string, err error)
}

// ExceptionMessage formats an exception the way the default policy prints it.
func ExceptionMessage(label string, err error) string {
	return fmt.Sprintf("Exception caught in %s: %v", label, err)
}

// setupFailureMessage is reported through ConditionFailed when setup fails.
func setupFailureMessage(err error) string {
	return ExceptionMessage("Context Setup", err)
}

// AbortPolicy prints the failure and terminates the process with status 1.
// Because it exits, a failing scenario prevents every later scenario in the
// same program from running; use CollectPolicy to keep going.
type AbortPolicy struct {
	out  io.Writer
	exit func(code int)
}

// NewAbortPolicy creates an AbortPolicy writing to out (os.Stderr when nil).
func NewAbortPolicy(out io.Writer) *AbortPolicy {
	if out == nil {
		out = os.Stderr
	}
	return &AbortPolicy{out: out, exit: os.Exit}
}

// WithExit returns a copy of the policy that calls fn instead of os.Exit.
func (p *AbortPolicy) WithExit(fn func(code int)) *AbortPolicy {
	return &AbortPolicy{out: p.out, exit: fn}
}

// ConditionFailed prints msg and exits.
func (p *AbortPolicy) ConditionFailed(msg string) {
	_, _ = fmt.Fprintln(p.out, msg)
	p.exit(1)
}

// ExceptionCaught prints the exception and exits.
func (p *AbortPolicy) ExceptionCaught(label string, err error) {
	_, _ = fmt.Fprintln(p.out, ExceptionMessage(label, err))
	p.exit(1)
}

// FailureKind distinguishes the two failure channels.
type FailureKind int

const (
	// ConditionFailure means a step evaluated to false or setup failed.
	ConditionFailure FailureKind = iota
	// ExceptionFailure means a step raised an error.
	ExceptionFailure
)

// String returns the failure kind name.
func (k FailureKind) String() string {
	switch k {
	case ConditionFailure:
		return "condition"
	case ExceptionFailure:
		return "exception"
	default:
		return "unknown"
	}
}

// Failure is one recorded failure.
type Failure struct {
	Kind    FailureKind
	Label   string
	Message string
	Err     error
}

// CollectPolicy records failures and never terminates.
type CollectPolicy struct {
	failures []Failure
}

// NewCollectPolicy creates an empty CollectPolicy.
func NewCollectPolicy() *CollectPolicy {
	return &CollectPolicy{}
}

// ConditionFailed records a condition failure.
func (p *CollectPolicy) ConditionFailed(msg string) {
	p.failures = append(p.failures, Failure{Kind: ConditionFailure, Message: msg})
}

// ExceptionCaught records an exception.
func (p *CollectPolicy) ExceptionCaught(label string, err error) {
	p.failures = append(p.failures, Failure{
		Kind:    ExceptionFailure,
		Label:   label,
		Message: ExceptionMessage(label, err),
		Err:     err,
	})
}

// Failures returns a copy of the recorded failures in order.
func (p *CollectPolicy) Failures() []Failure {
	out := make([]Failure, len(p.failures))
	copy(out, p.failures)
	return out
}

// Len returns the number of recorded failures.
func (p *CollectPolicy) Len() int {
	return len(p.failures)
}

// Reset discards recorded failures.
func (p *CollectPolicy) Reset() {
	p.failures = nil
}

// Callbacks adapts plain functions to a FailurePolicy.
// A nil hook defers to Fallback, and a nil Fallback aborts to stderr.
type Callbacks struct {
	OnConditionFailed func(msg string)
	OnException       func(label string, err error)
	Fallback          FailurePolicy
}

// ConditionFailed calls OnConditionFailed.
func (c *Callbacks) ConditionFailed(msg string) {
	if c.OnConditionFailed != nil {
		c.OnConditionFailed(msg)
		return
	}
	c.fallback().ConditionFailed(msg)
}

// ExceptionCaught calls OnException.
func (c *Callbacks) ExceptionCaught(label string, err error) {
	if c.OnException != nil {
		c.OnException(label, err)
		return
	}
	c.fallback().ExceptionCaught(label, err)
}

func (c *Callbacks) fallback() FailurePolicy {
	if c.Fallback != nil {
		return c.Fallback
	}
	return NewAbortPolicy(nil)
}

// ReportTo returns a policy that reports failures as test errors on t.
// The test is marked failed and the scenario keeps running.
func ReportTo(t testing.TB) FailurePolicy {
	return &testingPolicy{t: t}
}

type testingPolicy struct {
	t testing.TB
}

func (p *testingPolicy) ConditionFailed(msg string) {
	p.t.Helper()
	p.t.Errorf("%s", msg)
}

func (p *testingPolicy) ExceptionCaught(label string, err error) {
	p.t.Helper()
	p.t.Errorf("%s", ExceptionMessage(label, err))
}

var (
	_ FailurePolicy = (*AbortPolicy)(nil)
	_ FailurePolicy = (*CollectPolicy)(nil)
	_ FailurePolicy = (*Callbacks)(nil)
	_ FailurePolicy = (*testingPolicy)(nil)
)
