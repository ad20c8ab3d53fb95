package main

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/babybehave/examples/alarmclock"
	"github.com/felixgeelhaar/babybehave/examples/calculator"
	"github.com/felixgeelhaar/babybehave/examples/failing"
	"github.com/felixgeelhaar/babybehave/examples/flightbooking"
	"github.com/felixgeelhaar/babybehave/examples/oven"
	"github.com/felixgeelhaar/babybehave/suite"
)

// exampleSuite returns every bundled scenario.
func exampleSuite() *suite.Suite {
	s := suite.New("examples")
	calculator.Register(s)
	alarmclock.Register(s)
	oven.Register(s)
	flightbooking.Register(s)
	failing.Register(s)
	return s
}

func completeScenarioIDs(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return exampleSuite().IDs(), cobra.ShellCompDirectiveNoFileComp
}
