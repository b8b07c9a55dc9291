package lambda

import (
	"errors"
	"io"
)

// ErrMalformedTerm is returned when a transformation needs a child that is absent.
var ErrMalformedTerm = errors.New("malformed term")

// Expr represents a lambda calculus term.
//
// The set of variants is closed: Var, Func and Call. A nil Expr stands for an
// absent child (a blank) and renders as "_".
type Expr interface {
	// HasBlanks reports whether a required immediate child is absent.
	// It does not look into present children.
	HasBlanks() bool
	// TypeDescription is one of "variable", "function" or "call".
	TypeDescription() string
	// Duplicate returns a deep copy of the term.
	Duplicate() Expr
	// Dump writes the lambda notation of the term.
	Dump(w io.Writer) error
	// DumpAlternate writes the arrow notation of the term.
	DumpAlternate(w io.Writer) error
	String() string
	AltString() string

	sealed()
}

// Var represents a variable usage.
type Var struct {
	Name string
}

// Func represents an abstraction over a single input. Body may be nil.
type Func struct {
	Input string
	Body  Expr
}

// Call represents an application. Either side may be nil.
type Call struct {
	Target   Expr
	Argument Expr
}

func NewVar(name string) Var {
	return Var{Name: name}
}

func NewFunc(input string, body Expr) Func {
	return Func{Input: input, Body: body}
}

func NewCall(target, argument Expr) Call {
	return Call{Target: target, Argument: argument}
}

func (Var) sealed()  {}
func (Func) sealed() {}
func (Call) sealed() {}

func (Var) HasBlanks() bool    { return false }
func (f Func) HasBlanks() bool { return f.Body == nil }
func (c Call) HasBlanks() bool { return c.Target == nil || c.Argument == nil }

func (Var) TypeDescription() string  { return "variable" }
func (Func) TypeDescription() string { return "function" }
func (Call) TypeDescription() string { return "call" }

func (v Var) Duplicate() Expr  { return Duplicate(v) }
func (f Func) Duplicate() Expr { return Duplicate(f) }
func (c Call) Duplicate() Expr { return Duplicate(c) }

func (v Var) Dump(w io.Writer) error  { return Dump(w, v) }
func (f Func) Dump(w io.Writer) error { return Dump(w, f) }
func (c Call) Dump(w io.Writer) error { return Dump(w, c) }

func (v Var) DumpAlternate(w io.Writer) error  { return DumpAlternate(w, v) }
func (f Func) DumpAlternate(w io.Writer) error { return DumpAlternate(w, f) }
func (c Call) DumpAlternate(w io.Writer) error { return DumpAlternate(w, c) }

func (v Var) String() string  { return String(v) }
func (f Func) String() string { return String(f) }
func (c Call) String() string { return String(c) }

func (v Var) AltString() string  { return AltString(v) }
func (f Func) AltString() string { return AltString(f) }
func (c Call) AltString() string { return AltString(c) }

// Duplicate deep-copies e. A nil term duplicates to nil.
func Duplicate(e Expr) Expr {
	switch t := e.(type) {
	case nil:
		return nil
	case Var:
		return Var{Name: t.Name}
	case Func:
		return Func{Input: t.Input, Body: Duplicate(t.Body)}
	case Call:
		return Call{Target: Duplicate(t.Target), Argument: Duplicate(t.Argument)}
	default:
		panic("lambda: unknown term variant")
	}
}

// Equal reports whether a and b have the same shape, names and blanks.
func Equal(a, b Expr) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case Var:
		y, ok := b.(Var)
		return ok && x.Name == y.Name
	case Func:
		y, ok := b.(Func)
		return ok && x.Input == y.Input && Equal(x.Body, y.Body)
	case Call:
		y, ok := b.(Call)
		return ok && Equal(x.Target, y.Target) && Equal(x.Argument, y.Argument)
	default:
		return false
	}
}
