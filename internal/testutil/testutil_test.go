package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/babybehave/bdd"
)

func TestWriteTempFile(t *testing.T) {
	path := WriteTempFile(t, "cfg.yaml", "policy: abort\n")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "policy: abort\n", string(data))
}

func TestUnsetEnv(t *testing.T) {
	t.Setenv("BABYBEHAVE_TESTUTIL", "1")
	UnsetEnv(t, "BABYBEHAVE_TESTUTIL")

	_, present := os.LookupEnv("BABYBEHAVE_TESTUTIL")
	assert.False(t, present)
}

func TestRunScenario(t *testing.T) {
	sc := bdd.GivenA(func(ctx *bdd.Context) error {
		ctx.Set("n", 1)
		return nil
	}, bdd.WithName("one")).
		Step(bdd.KindPostcondition, "n is one", func(ctx *bdd.Context) (bool, error) {
			n, err := bdd.Get[int](ctx, "n")
			return n == 1, err
		}).
		Step(bdd.KindAnd, "n is two", func(ctx *bdd.Context) (bool, error) {
			n, err := bdd.Get[int](ctx, "n")
			return n == 2, err
		})

	run := RunScenario(t, sc)

	require.Len(t, run.Failures, 1)
	assert.Equal(t, "And condition failed", run.Failures[0].Message)
	AssertTrace(t, run.Trace,
		"Given a: one",
		"    Then: n is one",
		"    And: n is two",
	)
}
