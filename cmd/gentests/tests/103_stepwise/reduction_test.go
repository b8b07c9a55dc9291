package gentests

import (
	"testing"

	"github.com/vic/golambda/pkg/lambda"
	"github.com/vic/golambda/pkg/reduce"
	"github.com/vic/golambda/pkg/scenario"
)

// stepwise drives reduction from outside the engine using only reduce.Step:
// reduce the target first, then step the call, and stop once a step no longer
// changes the term.
func stepwise(t *testing.T, e lambda.Expr, fuel *int) lambda.Expr {
	for {
		c, ok := e.(lambda.Call)
		if !ok || c.HasBlanks() {
			return e
		}
		cur := lambda.NewCall(stepwise(t, c.Target, fuel), c.Argument)
		next, err := reduce.Step(cur)
		if err != nil {
			t.Fatalf("Step error on %s: %v", lambda.String(cur), err)
		}
		if lambda.Equal(next, cur) {
			return cur
		}
		*fuel--
		if *fuel < 0 {
			t.Fatalf("no fixed point reached for %s", lambda.String(cur))
		}
		e = next
	}
}

// Test_103_stepwise checks that the caller-driven loop over reduce.Step and
// the engine's normal-order Reduce agree on every demonstration scenario.
func Test_103_stepwise(t *testing.T) {
	doc := scenario.Default()
	for _, sc := range doc.Scenarios {
		if !sc.Reduce {
			continue
		}
		t.Run(sc.Name, func(t *testing.T) {
			fuel := 1000
			manual := stepwise(t, sc.Term, &fuel)

			engine, err := reduce.Normalize(sc.Term)
			if err != nil {
				t.Fatalf("Normalize error: %v", err)
			}
			if !lambda.Equal(manual, engine) {
				t.Errorf("stepwise %s, engine %s", lambda.String(manual), lambda.String(engine))
			}
			if sc.Expect != "" && lambda.String(manual) != sc.Expect {
				t.Errorf("expected %s, got %s", sc.Expect, lambda.String(manual))
			}
		})
	}
}
