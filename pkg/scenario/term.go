package scenario

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/vic/golambda/pkg/lambda"
)

var (
	ErrInvalidTerm = errors.New("invalid term")
	ErrUnknownRef  = errors.New("unknown reference")
	ErrCyclicRef   = errors.New("cyclic reference")
)

// termNode is the YAML shape of a lambda.Expr. Exactly one field is set.
//
//	{var: x}
//	{func: {input: x, body: ...}}
//	{call: {target: ..., argument: ...}}
//	{ref: NAME}
type termNode struct {
	Var  *string   `yaml:"var,omitempty"`
	Func *funcNode `yaml:"func,omitempty"`
	Call *callNode `yaml:"call,omitempty"`
	Ref  *string   `yaml:"ref,omitempty"`
}

type funcNode struct {
	Input string    `yaml:"input"`
	Body  *termNode `yaml:"body,omitempty"`
}

type callNode struct {
	Target   *termNode `yaml:"target,omitempty"`
	Argument *termNode `yaml:"argument,omitempty"`
}

// resolver builds terms and expands refs against a set of definitions.
type resolver struct {
	defs   map[string]*termNode
	built  map[string]lambda.Expr
	active map[string]bool
}

func newResolver(defs map[string]*termNode) *resolver {
	return &resolver{
		defs:   defs,
		built:  make(map[string]lambda.Expr),
		active: make(map[string]bool),
	}
}

// build converts n. A nil node is a blank and builds to a nil Expr.
func (r *resolver) build(n *termNode, path string) (lambda.Expr, error) {
	if n == nil {
		return nil, nil
	}
	set := lo.Count([]bool{n.Var != nil, n.Func != nil, n.Call != nil, n.Ref != nil}, true)
	if set != 1 {
		return nil, fmt.Errorf("%s: expected exactly one of var, func, call, ref, got %d: %w", path, set, ErrInvalidTerm)
	}

	switch {
	case n.Var != nil:
		if *n.Var == "" {
			return nil, fmt.Errorf("%s: empty variable name: %w", path, ErrInvalidTerm)
		}
		return lambda.NewVar(*n.Var), nil
	case n.Func != nil:
		if n.Func.Input == "" {
			return nil, fmt.Errorf("%s: function without input: %w", path, ErrInvalidTerm)
		}
		body, err := r.build(n.Func.Body, path+".body")
		if err != nil {
			return nil, err
		}
		return lambda.NewFunc(n.Func.Input, body), nil
	case n.Call != nil:
		target, err := r.build(n.Call.Target, path+".target")
		if err != nil {
			return nil, err
		}
		arg, err := r.build(n.Call.Argument, path+".argument")
		if err != nil {
			return nil, err
		}
		return lambda.NewCall(target, arg), nil
	default:
		return r.ref(*n.Ref, path)
	}
}

func (r *resolver) ref(name, path string) (lambda.Expr, error) {
	if e, ok := r.built[name]; ok {
		return lambda.Duplicate(e), nil
	}
	def, ok := r.defs[name]
	if !ok {
		return nil, fmt.Errorf("%s: %q: %w", path, name, ErrUnknownRef)
	}
	if r.active[name] {
		return nil, fmt.Errorf("%s: %q: %w", path, name, ErrCyclicRef)
	}
	if def == nil {
		return nil, fmt.Errorf("%s: definition %q is empty: %w", path, name, ErrInvalidTerm)
	}
	r.active[name] = true
	e, err := r.build(def, "defs."+name)
	delete(r.active, name)
	if err != nil {
		return nil, err
	}
	r.built[name] = e
	return lambda.Duplicate(e), nil
}

func encodeTerm(e lambda.Expr) *termNode {
	switch t := e.(type) {
	case lambda.Var:
		name := t.Name
		return &termNode{Var: &name}
	case lambda.Func:
		return &termNode{Func: &funcNode{Input: t.Input, Body: encodeTerm(t.Body)}}
	case lambda.Call:
		return &termNode{Call: &callNode{Target: encodeTerm(t.Target), Argument: encodeTerm(t.Argument)}}
	default:
		return nil
	}
}

// MarshalTerm encodes e as YAML. Blanks are omitted.
func MarshalTerm(e lambda.Expr) ([]byte, error) {
	if e == nil {
		return nil, fmt.Errorf("marshal: term is absent: %w", ErrInvalidTerm)
	}
	return yaml.Marshal(encodeTerm(e))
}

// UnmarshalTerm decodes a single term. Refs are not allowed.
func UnmarshalTerm(data []byte) (lambda.Expr, error) {
	var n termNode
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("decode term: %w", err)
	}
	return newResolver(nil).build(&n, "term")
}
