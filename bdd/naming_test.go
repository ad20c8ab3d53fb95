package bdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimFuncName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"github.com/acme/examples/calculator.TheyAreAddedTogether", "TheyAreAddedTogether"},
		{"github.com/acme/examples/calculator.TwoNumbers.func1", "TwoNumbers"},
		{"main.main.TwoNumbers.func1", "TwoNumbers"},
		{"github.com/acme/bdd.TestScenario.func3.1", "TestScenario"},
		{"github.com/acme/oven.(*Oven).PowerOn-fm", "PowerOn"},
		{"github.com/acme/pkg.Check[...].func1", "Check"},
		{"main.WorkingAlarmClock", "WorkingAlarmClock"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, trimFuncName(tt.in))
		})
	}
}

func TestFuncName(t *testing.T) {
	assert.Equal(t, "aCounter", funcName(SetupFunc(aCounter)))
	assert.Equal(t, "alwaysTrue", funcName(StepFunc(alwaysTrue)))
	assert.Equal(t, "<nil>", funcName(nil))
	assert.Equal(t, "<nil>", funcName(StepFunc(nil)))
	assert.Equal(t, "<nil>", funcName(42))
}

func TestHumanize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"TheyAreAddedTogether", "They are added together"},
		{"WorkingAlarmClock", "Working alarm clock"},
		{"AlarmSetAt7AM", "Alarm set at 7 AM"},
		{"aCounter", "A counter"},
		{"HTTPServerStarts", "HTTP server starts"},
		{"snake_case_name", "Snake case name"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Humanize(tt.in))
		})
	}
}
