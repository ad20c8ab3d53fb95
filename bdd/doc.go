// Package bdd is a small Given/When/Then scenario engine.
//
// A scenario is created from a setup function, extended with typed steps
// and executed once:
//
//	result, err := bdd.GivenA(ACalculator).
//		With(TwoNumbers(2, 9)).
//		When(TheyAreAddedTogether).
//		Then(TheResultShouldBe(11)).
//		Run()
//
// Every step receives the scenario's Context, a keyed store whose values are
// retrieved with Get[T] and must match the stored type exactly.
//
// Steps run in registration order. A step returning false is reported to the
// FailurePolicy as an unverified condition; a step returning an error or
// panicking is reported as an exception. The default policy prints the
// failure to stderr and exits the process. CollectPolicy, Callbacks and
// ReportTo keep the program running instead.
//
// Run writes a trace to the scenario output:
//
//	Given a: ACalculator
//	    With: TwoNumbers
//	    When: TheyAreAddedTogether
//	    Then: TheResultShouldBe
package bdd
