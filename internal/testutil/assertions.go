package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertPassed asserts that the run recorded no failures.
func AssertPassed(t testing.TB, run Run) {
	t.Helper()

	assert.Empty(t, run.Failures, "unexpected failures")
	assert.True(t, run.Result.Passed(), "scenario %q did not pass", run.Result.Scenario)
}

// AssertTrace asserts the trace lines, ignoring the trailing blank line.
func AssertTrace(t testing.TB, trace string, want ...string) {
	t.Helper()

	got := strings.Split(strings.TrimRight(trace, "\n"), "\n")
	assert.Equal(t, want, got)
}
