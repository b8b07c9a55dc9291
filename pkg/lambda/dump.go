package lambda

import (
	"fmt"
	"io"
	"strings"
)

const blank = "_"

// Dump writes e in lambda notation: "(λ x . body)" and "(target argument)".
// Nested functions share one binder list, so λa.λb.a renders as "(λ a b . a)".
func Dump(w io.Writer, e Expr) error {
	var b strings.Builder
	writeLambda(&b, e)
	_, err := io.WriteString(w, b.String())
	return err
}

// DumpAlternate writes e in arrow notation: "(x -> body)" and "target(argument)".
func DumpAlternate(w io.Writer, e Expr) error {
	var b strings.Builder
	writeArrow(&b, e)
	_, err := io.WriteString(w, b.String())
	return err
}

// String returns the lambda notation of e.
func String(e Expr) string {
	var b strings.Builder
	writeLambda(&b, e)
	return b.String()
}

// AltString returns the arrow notation of e.
func AltString(e Expr) string {
	var b strings.Builder
	writeArrow(&b, e)
	return b.String()
}

func writeLambda(b *strings.Builder, e Expr) {
	switch t := e.(type) {
	case nil:
		b.WriteString(blank)
	case Var:
		b.WriteString(t.Name)
	case Func:
		b.WriteString("(λ ")
		b.WriteString(t.Input)
		body := t.Body
		for {
			inner, ok := body.(Func)
			if !ok {
				break
			}
			b.WriteByte(' ')
			b.WriteString(inner.Input)
			body = inner.Body
		}
		b.WriteString(" . ")
		writeLambda(b, body)
		b.WriteByte(')')
	case Call:
		b.WriteByte('(')
		writeLambda(b, t.Target)
		b.WriteByte(' ')
		writeLambda(b, t.Argument)
		b.WriteByte(')')
	}
}

func writeArrow(b *strings.Builder, e Expr) {
	switch t := e.(type) {
	case nil:
		b.WriteString(blank)
	case Var:
		b.WriteString(t.Name)
	case Func:
		b.WriteByte('(')
		b.WriteString(t.Input)
		b.WriteString(" -> ")
		writeArrow(b, t.Body)
		b.WriteByte(')')
	case Call:
		writeArrow(b, t.Target)
		b.WriteByte('(')
		writeArrow(b, t.Argument)
		b.WriteByte(')')
	}
}

// Print writes a labeled line for e:
//
//	title:
//		(λ x . x) -- function
//
// An empty title falls back to the type description.
func Print(w io.Writer, e Expr, title string) error {
	return printLine(w, e, title, String)
}

// PrintAlternate is Print using arrow notation.
func PrintAlternate(w io.Writer, e Expr, title string) error {
	return printLine(w, e, title, AltString)
}

func printLine(w io.Writer, e Expr, title string, render func(Expr) string) error {
	kind := "blank"
	if e != nil {
		kind = e.TypeDescription()
	}
	if title == "" {
		title = kind
	}
	_, err := fmt.Fprintf(w, "%s:\n\t%s -- %s\n", title, render(e), kind)
	return err
}
