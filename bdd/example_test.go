package bdd_test

import (
	"fmt"
	"os"

	"github.com/felixgeelhaar/babybehave/bdd"
)

type calculator struct {
	result int
}

func ACalculator(ctx *bdd.Context) error {
	ctx.Set("calculator", &calculator{})
	return nil
}

func TwoNumbers(a, b int) bdd.StepFunc {
	return func(ctx *bdd.Context) (bool, error) {
		ctx.Set("a", a)
		ctx.Set("b", b)
		return true, nil
	}
}

func TheyAreAddedTogether(ctx *bdd.Context) (bool, error) {
	calc, err := bdd.Get[*calculator](ctx, "calculator")
	if err != nil {
		return false, err
	}
	calc.result = bdd.MustGet[int](ctx, "a") + bdd.MustGet[int](ctx, "b")
	return true, nil
}

func TheResultShouldBe(want int) bdd.StepFunc {
	return func(ctx *bdd.Context) (bool, error) {
		calc, err := bdd.Get[*calculator](ctx, "calculator")
		if err != nil {
			return false, err
		}
		return calc.result == want, nil
	}
}

func ExampleGivenA() {
	result, err := bdd.GivenA(ACalculator, bdd.WithOutput(os.Stdout)).
		With(TwoNumbers(2, 9)).
		When(TheyAreAddedTogether).
		Then(TheResultShouldBe(11)).
		Run()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("passed:", result.Passed())
	// Output:
	// Given a: ACalculator
	//     With: TwoNumbers
	//     When: TheyAreAddedTogether
	//     Then: TheResultShouldBe
	//
	// passed: true
}

func ExampleCollectPolicy() {
	policy := bdd.NewCollectPolicy()

	_, _ = bdd.GivenA(ACalculator, bdd.WithName("a broken calculator"), bdd.WithPolicy(policy)).
		With(TwoNumbers(2, 2)).
		When(TheyAreAddedTogether).
		Then(TheResultShouldBe(5)).
		Run()

	for _, f := range policy.Failures() {
		fmt.Println(f.Kind, f.Message)
	}
	// Output:
	// Given a: a broken calculator
	//     With: TwoNumbers
	//     When: TheyAreAddedTogether
	//     Then: TheResultShouldBe
	//
	// condition Postcondition failed
}
