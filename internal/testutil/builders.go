package testutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/babybehave/bdd"
)

// Run is the outcome of RunScenario.
type Run struct {
	Result   bdd.Result
	Failures []bdd.Failure
	Trace    string
}

// RunScenario executes sc with a collecting policy and a captured trace, so
// failures never terminate the test binary.
func RunScenario(t testing.TB, sc *bdd.Scenario) Run {
	t.Helper()

	var trace bytes.Buffer
	policy := bdd.NewCollectPolicy()
	sc.Configure(bdd.WithOutput(&trace), bdd.WithPolicy(policy))

	result, err := sc.Run()
	require.NoError(t, err)

	return Run{
		Result:   result,
		Failures: policy.Failures(),
		Trace:    trace.String(),
	}
}
