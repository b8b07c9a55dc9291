package scenario

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"github.com/vic/golambda/pkg/lambda"
	"github.com/vic/golambda/pkg/reduce"
)

//go:embed default.yaml
var defaultDocument []byte

// Document is a set of named definitions and the scenarios using them.
type Document struct {
	Defs      map[string]lambda.Expr
	Scenarios []Scenario
}

// Scenario is one demonstrated term. Expect and ExpectAlt are compared with
// the (reduced, when Reduce is set) term when non-empty.
type Scenario struct {
	Name      string
	Term      lambda.Expr
	Reduce    bool
	Expect    string
	ExpectAlt string
	MaxSteps  uint64
}

type rawDocument struct {
	Defs      map[string]*termNode `yaml:"defs"`
	Scenarios []rawScenario        `yaml:"scenarios"`
}

type rawScenario struct {
	Name      string    `yaml:"name"`
	Term      *termNode `yaml:"term"`
	Reduce    bool      `yaml:"reduce"`
	Expect    string    `yaml:"expect"`
	ExpectAlt string    `yaml:"expect_alt"`
	MaxSteps  uint64    `yaml:"max_steps"`
}

// Load decodes a scenario document and resolves every reference.
func Load(r io.Reader) (*Document, error) {
	var raw rawDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode scenarios: %w", err)
	}

	res := newResolver(raw.Defs)
	doc := &Document{Defs: make(map[string]lambda.Expr, len(raw.Defs))}

	names := lo.Keys(raw.Defs)
	slices.Sort(names)
	for _, name := range names {
		e, err := res.ref(name, "defs")
		if err != nil {
			return nil, err
		}
		doc.Defs[name] = e
	}

	for i, rs := range raw.Scenarios {
		path := fmt.Sprintf("scenarios[%d]", i)
		if rs.Name == "" {
			rs.Name = path
		}
		if rs.Term == nil {
			return nil, fmt.Errorf("%s (%s): missing term: %w", path, rs.Name, ErrInvalidTerm)
		}
		term, err := res.build(rs.Term, path+".term")
		if err != nil {
			return nil, err
		}
		doc.Scenarios = append(doc.Scenarios, Scenario{
			Name:      rs.Name,
			Term:      term,
			Reduce:    rs.Reduce,
			Expect:    rs.Expect,
			ExpectAlt: rs.ExpectAlt,
			MaxSteps:  rs.MaxSteps,
		})
	}
	return doc, nil
}

func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Default returns the built-in demonstration scenarios.
func Default() *Document {
	doc, err := Load(bytes.NewReader(defaultDocument))
	if err != nil {
		panic(fmt.Sprintf("scenario: embedded document: %v", err))
	}
	return doc
}

// RunOptions configures Document.Run.
type RunOptions struct {
	Alternate bool            // also print arrow notation
	MaxSteps  uint64          // budget for scenarios without their own
	Reducer   *reduce.Reducer // nil for a fresh one
}

// Result is the outcome of one scenario.
type Result struct {
	Name     string
	Output   lambda.Expr
	Steps    uint64
	Err      error  // reduce.ErrStepLimit when the budget ran out
	Mismatch string // empty when every expectation held
}

func (r Result) OK() bool {
	return r.Err == nil && r.Mismatch == ""
}

// Run prints every scenario to w before and after reduction and checks its
// expectations. Malformed terms abort the run.
func (d *Document) Run(w io.Writer, opts RunOptions) ([]Result, error) {
	red := opts.Reducer
	if red == nil {
		red = reduce.NewReducer()
	}

	var results []Result
	for _, sc := range d.Scenarios {
		res, err := sc.run(w, red, opts)
		if err != nil {
			return results, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (sc Scenario) run(w io.Writer, red *reduce.Reducer, opts RunOptions) (Result, error) {
	res := Result{Name: sc.Name, Output: sc.Term}
	if err := show(w, sc.Term, sc.Name, opts.Alternate); err != nil {
		return res, err
	}
	if !sc.Reduce {
		res.Mismatch = sc.check(res.Output)
		return res, nil
	}

	budget := sc.MaxSteps
	if budget == 0 {
		budget = opts.MaxSteps
	}
	out, steps, err := red.ReduceWithLimit(sc.Term, budget)
	if err != nil && !errors.Is(err, reduce.ErrStepLimit) {
		return res, err
	}
	res.Output, res.Steps, res.Err = out, steps, err
	if err := show(w, out, sc.Name+" reduced", opts.Alternate); err != nil {
		return res, err
	}
	res.Mismatch = sc.check(out)
	return res, nil
}

func (sc Scenario) check(e lambda.Expr) string {
	if got := lambda.String(e); sc.Expect != "" && got != sc.Expect {
		return fmt.Sprintf("expected %s, got %s", sc.Expect, got)
	}
	if got := lambda.AltString(e); sc.ExpectAlt != "" && got != sc.ExpectAlt {
		return fmt.Sprintf("expected %s, got %s", sc.ExpectAlt, got)
	}
	return ""
}

func show(w io.Writer, e lambda.Expr, title string, alt bool) error {
	if err := lambda.Print(w, e, title); err != nil {
		return err
	}
	if alt {
		return lambda.PrintAlternate(w, e, title+" (arrow)")
	}
	return nil
}
