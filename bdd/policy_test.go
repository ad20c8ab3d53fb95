package bdd

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbortPolicy(t *testing.T) {
	t.Run("condition prints and exits", func(t *testing.T) {
		var out bytes.Buffer
		code := -1
		p := NewAbortPolicy(&out).WithExit(func(c int) { code = c })

		p.ConditionFailed("Then failed")

		assert.Equal(t, 1, code)
		assert.Equal(t, "Then failed\n", out.String())
	})

	t.Run("exception prints label and error", func(t *testing.T) {
		var out bytes.Buffer
		code := -1
		p := NewAbortPolicy(&out).WithExit(func(c int) { code = c })

		p.ExceptionCaught("When", errors.New("boom"))

		assert.Equal(t, 1, code)
		assert.Equal(t, "Exception caught in When: boom\n", out.String())
	})
}

func TestCollectPolicy(t *testing.T) {
	p := NewCollectPolicy()
	boom := errors.New("boom")

	p.ConditionFailed("Action failed")
	p.ExceptionCaught("Then", boom)

	failures := p.Failures()
	require.Len(t, failures, 2)
	assert.Equal(t, Failure{Kind: ConditionFailure, Message: "Action failed"}, failures[0])
	assert.Equal(t, ExceptionFailure, failures[1].Kind)
	assert.Equal(t, "Then", failures[1].Label)
	assert.Equal(t, "Exception caught in Then: boom", failures[1].Message)
	assert.ErrorIs(t, failures[1].Err, boom)

	failures[0].Message = "mutated"
	assert.Equal(t, "Action failed", p.Failures()[0].Message)

	p.Reset()
	assert.Zero(t, p.Len())
}

func TestCallbacks_Fallback(t *testing.T) {
	fallback := NewCollectPolicy()
	var got []string
	cb := &Callbacks{
		OnConditionFailed: func(msg string) { got = append(got, msg) },
		Fallback:          fallback,
	}

	cb.ConditionFailed("With failed")
	cb.ExceptionCaught("When", errors.New("x"))

	assert.Equal(t, []string{"With failed"}, got)
	require.Equal(t, 1, fallback.Len())
	assert.Equal(t, ExceptionFailure, fallback.Failures()[0].Kind)
}

func TestFailureKind_String(t *testing.T) {
	assert.Equal(t, "condition", ConditionFailure.String())
	assert.Equal(t, "exception", ExceptionFailure.String())
	assert.Equal(t, "unknown", FailureKind(9).String())
}

// recordingTB captures Errorf calls.
type recordingTB struct {
	testing.TB
	errors []string
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func TestReportTo(t *testing.T) {
	rec := &recordingTB{TB: t}

	_, err := GivenA(aCounter, WithOutput(&bytes.Buffer{}), WithPolicy(ReportTo(rec))).
		Then(alwaysFalse).
		And(func(_ *Context) (bool, error) { return true, errors.New("bad") }).
		Run()

	require.NoError(t, err)
	assert.Equal(t, []string{
		"Postcondition failed",
		"Exception caught in And: bad",
	}, rec.errors)
}
