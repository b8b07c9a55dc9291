package gentests

import (
	"strings"
	"testing"
	"time"

	"github.com/vic/golambda/pkg/lambda"
	"github.com/vic/golambda/pkg/reduce"
	"github.com/vic/golambda/pkg/scenario"
)

// stepBudget keeps a broken fixture from hanging the suite.
const stepBudget = 10000

func CheckReduction(t *testing.T, testName string, inputStr string, outputStr string) {
	t.Helper()
	expectedOutput := strings.TrimSpace(outputStr)

	term, err := scenario.UnmarshalTerm([]byte(inputStr))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}

	red := reduce.NewReducer()
	start := time.Now()
	actual, _, err := red.ReduceWithLimit(term, stepBudget)
	elapsed := time.Since(start)
	if err != nil {
		t.Fatalf("Reduction error in %s: %v", testName, err)
	}

	if got := lambda.String(actual); got != expectedOutput {
		t.Errorf("Mismatch in %s:\nInput: %s\nExpected: %s\nActual:   %s", testName, lambda.String(term), expectedOutput, got)
	}

	// The input tree must come out untouched.
	reparsed, err := scenario.UnmarshalTerm([]byte(inputStr))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if !lambda.Equal(term, reparsed) {
		t.Errorf("%s: reduction modified its input: %s", testName, lambda.String(term))
	}

	// A normal form reduces to itself.
	again, steps, err := red.ReduceWithLimit(actual, stepBudget)
	if err != nil || steps != 0 || !lambda.Equal(again, actual) {
		t.Errorf("%s: normal form %s is not a fixed point: %s after %d steps (err=%v)", testName, lambda.String(actual), lambda.String(again), steps, err)
	}

	stats := red.GetStats()
	t.Logf("%s: %d reductions in %v", testName, stats.TotalReductions, elapsed)
}
