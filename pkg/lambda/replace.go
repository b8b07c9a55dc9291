package lambda

import (
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

var substDebug = os.Getenv("LAMBDA_DEBUG") != ""

// Replace returns a copy of e in which every Var named name is replaced by a
// copy of with.
//
// Substitution descends into every Func body, including one that rebinds name,
// and never renames binders. A free variable of with can therefore be captured
// by a binder of e; see Captures.
func Replace(e Expr, name string, with Expr) (Expr, error) {
	if with == nil {
		return nil, fmt.Errorf("replace %q: replacement is absent: %w", name, ErrMalformedTerm)
	}
	return replace(e, name, with, 0)
}

func replace(e Expr, name string, with Expr, depth int) (Expr, error) {
	var res Expr
	switch t := e.(type) {
	case nil:
		return nil, fmt.Errorf("replace %q: term is absent: %w", name, ErrMalformedTerm)
	case Var:
		if t.Name == name {
			res = Duplicate(with)
		} else {
			res = Var{Name: t.Name}
		}
	case Func:
		if t.Body == nil {
			return nil, fmt.Errorf("replace %q in %s: function body is absent: %w", name, String(t), ErrMalformedTerm)
		}
		body, err := replace(t.Body, name, with, depth+1)
		if err != nil {
			return nil, err
		}
		res = Func{Input: t.Input, Body: body}
	case Call:
		if t.Target == nil || t.Argument == nil {
			return nil, fmt.Errorf("replace %q in %s: call has a blank: %w", name, String(t), ErrMalformedTerm)
		}
		target, err := replace(t.Target, name, with, depth+1)
		if err != nil {
			return nil, err
		}
		arg, err := replace(t.Argument, name, with, depth+1)
		if err != nil {
			return nil, err
		}
		res = Call{Target: target, Argument: arg}
	}
	if substDebug {
		fmt.Fprintf(os.Stderr, "%sreplace where=%s what='%s' with=%s result=%s\n",
			strings.Repeat("__", depth), String(e), name, String(with), String(res))
	}
	return res, nil
}

// FreeVars returns the names of the free variables of e in order of first occurrence.
func FreeVars(e Expr) []string {
	var names []string
	var walk func(Expr, []string)
	walk = func(e Expr, bound []string) {
		switch t := e.(type) {
		case Var:
			if !slices.Contains(bound, t.Name) {
				names = append(names, t.Name)
			}
		case Func:
			walk(t.Body, append(bound, t.Input))
		case Call:
			walk(t.Target, bound)
			walk(t.Argument, bound)
		}
	}
	walk(e, nil)
	return lo.Uniq(names)
}

// Occurrences counts the Var nodes named name, bound or free.
func Occurrences(e Expr, name string) int {
	switch t := e.(type) {
	case Var:
		if t.Name == name {
			return 1
		}
	case Func:
		return Occurrences(t.Body, name)
	case Call:
		return Occurrences(t.Target, name) + Occurrences(t.Argument, name)
	}
	return 0
}

// Captures lists, sorted, the binders of e that would capture a free variable
// of with when Replace(e, name, with) is performed.
func Captures(e Expr, name string, with Expr) []string {
	free := FreeVars(with)
	if len(free) == 0 {
		return nil
	}
	var hits []string
	var walk func(Expr, []string)
	walk = func(e Expr, binders []string) {
		switch t := e.(type) {
		case Var:
			if t.Name == name {
				hits = append(hits, lo.Filter(binders, func(b string, _ int) bool {
					return slices.Contains(free, b)
				})...)
			}
		case Func:
			walk(t.Body, append(binders, t.Input))
		case Call:
			walk(t.Target, binders)
			walk(t.Argument, binders)
		}
	}
	walk(e, nil)
	hits = lo.Uniq(hits)
	slices.Sort(hits)
	return hits
}

// Rebinds counts the occurrences of name that sit under any Func in e binding
// name, e itself included. Pass the body of the applied function to count the
// occurrences Replace rewrites although an inner binder owns them.
func Rebinds(e Expr, name string) int {
	var walk func(Expr, bool) int
	walk = func(e Expr, shadowed bool) int {
		switch t := e.(type) {
		case Var:
			if shadowed && t.Name == name {
				return 1
			}
		case Func:
			return walk(t.Body, shadowed || t.Input == name)
		case Call:
			return walk(t.Target, shadowed) + walk(t.Argument, shadowed)
		}
		return 0
	}
	return walk(e, false)
}
