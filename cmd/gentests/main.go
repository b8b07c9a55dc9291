package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vic/golambda/pkg/lambda"
	"github.com/vic/golambda/pkg/reduce"
	"github.com/vic/golambda/pkg/scenario"
)

type TestCase struct {
	Name  string
	Input lambda.Expr
}

const testTemplate = `
package gentests
import _ "embed"
import "testing"
import "github.com/vic/golambda/cmd/gentests/helper"
//go:embed input.yaml
var input string
//go:embed output.txt
var output string
func Test_%s_Reduction(t *testing.T) {
	gentests.CheckReduction(t, "%s", input, output)
}
`

func v(name string) lambda.Expr { return lambda.NewVar(name) }

// fn builds nested functions: fn("x", "y", body) is λx.λy.body.
func fn(inputsAndBody ...any) lambda.Expr {
	body := inputsAndBody[len(inputsAndBody)-1].(lambda.Expr)
	for i := len(inputsAndBody) - 2; i >= 0; i-- {
		body = lambda.NewFunc(inputsAndBody[i].(string), body)
	}
	return body
}

// call builds a left-nested application: call(f, a, b) is ((f a) b).
func call(f lambda.Expr, args ...lambda.Expr) lambda.Expr {
	for _, a := range args {
		f = lambda.NewCall(f, a)
	}
	return f
}

func main() {
	T := fn("x", "y", v("x"))
	F := fn("x", "y", v("y"))
	S := fn("x", "y", "z", call(v("x"), v("z"), call(v("y"), v("z"))))
	pair := fn("x", "y", "f", call(v("f"), v("x"), v("y")))

	tests := []TestCase{
		// Identity
		{"001_id", fn("x", v("x"))},
		{"002_id_id", call(fn("x", v("x")), fn("y", v("y")))},

		// K Combinator (Erasure)
		{"003_k_1", call(T, v("a"), v("b"))},
		{"004_k_2", call(F, v("a"), v("b"))},
		{"005_erase_complex", call(T, v("a"), call(fn("z", v("z")), v("b")))},

		// S Combinator
		{"006_s_1", call(S, fn("a", "b", v("a")), fn("c", "d", v("c")), v("e"))},
		{"007_s_2", call(S, fn("a", "b", v("b")), fn("c", "d", v("c")), v("e"))},

		// Church Numerals
		{"010_zero", call(fn("f", "x", v("x")), v("f"), v("x"))},
		{"011_one", call(fn("f", "x", call(v("f"), v("x"))), v("f"), v("x"))},
		{"012_two", call(fn("f", "x", call(v("f"), call(v("f"), v("x")))), v("f"), v("x"))},
		// Arguments stay unevaluated unless they reach the head.
		{"013_succ_0", call(fn("n", "f", "x", call(v("f"), call(v("n"), v("f"), v("x")))), fn("f", "x", v("x")), v("f"), v("x"))},

		// Logic
		{"020_true", call(T, v("a"), v("b"))},
		{"021_false", call(F, v("a"), v("b"))},
		// Substituting y into False rewrites its own y: the result is not b.
		{"022_not_true", call(fn("b", call(v("b"), F, T)), T, v("a"), v("b"))},
		{"023_not_false", call(fn("b", call(v("b"), F, T)), F, v("a"), v("b"))},
		{"024_and_true_true", call(fn("p", "q", call(v("p"), v("q"), v("p"))), T, T, v("a"), v("b"))},

		// Pairs
		{"030_pair_fst", call(fn("p", call(v("p"), T)), call(pair, v("a"), v("b")))},
		{"031_pair_snd", call(fn("p", call(v("p"), F)), call(pair, v("a"), v("b")))},

		// Sharing
		{"051_share_app", call(fn("f", call(v("f"), call(v("f"), v("x")))), fn("y", v("y")))},
		{"070_share_complex", call(fn("x", call(v("x"), call(v("x"), v("a")))), fn("y", v("y")))},
		{"071_erase_shared", call(F, call(fn("z", v("z")), v("a")), v("b"))},

		// Nested Lambdas
		{"081_nested_app", call(fn("x", "y", call(v("x"), v("y"))), v("a"), v("b"))},

		// Free variables
		{"090_free_1", v("x")},
		{"091_free_app", call(v("x"), v("y"))},
		{"092_free_abs", fn("y", call(v("x"), v("y")))},

		// Mixed
		{"100_mixed_1", call(fn("x", v("x")), call(fn("y", v("y")), v("a")))},

		// No alpha-renaming: the free y is captured.
		{"110_capture", call(fn("x", "y", v("x")), v("y"))},
		{"111_stuck_head", call(call(fn("x", v("x")), v("y")), v("z"))},
	}

	baseDir := "cmd/gentests/generated"
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", baseDir, err)
		os.Exit(1)
	}

	written := 0
	for _, tc := range tests {
		dir := filepath.Join(baseDir, tc.Name)
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Printf("Error creating %s: %v\n", dir, err)
			continue
		}

		input, err := scenario.MarshalTerm(tc.Input)
		if err != nil {
			fmt.Printf("Error encoding input for %s: %v\n", tc.Name, err)
			continue
		}

		output, _, err := reduce.NormalizeWithLimit(tc.Input, 10000)
		if err != nil {
			fmt.Printf("Error reducing %s: %v\n", tc.Name, err)
			continue
		}

		if err := writeFixture(dir, tc.Name, input, output); err != nil {
			fmt.Printf("Error writing %s: %v\n", tc.Name, err)
			continue
		}
		written++
	}

	fmt.Printf("Generated %d tests\n", written)
}

// writeFixture writes the input, expected output and test file of one case,
// stopping at the first failed write.
func writeFixture(dir, name string, input []byte, output lambda.Expr) error {
	files := []struct {
		name string
		data []byte
	}{
		{"input.yaml", input},
		{"output.txt", []byte(lambda.String(output))},
		{"reduction_test.go", []byte(fmt.Sprintf(testTemplate, name, name))},
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f.name), f.data, 0644); err != nil {
			return err
		}
	}
	return nil
}
