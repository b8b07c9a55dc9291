package reduce

import (
	"errors"
	"fmt"

	"github.com/vic/golambda/pkg/lambda"
)

// ErrStepLimit is returned when a bounded reduction runs out of beta steps.
var ErrStepLimit = errors.New("step limit reached")

// Reducer performs beta reduction by substitution and keeps statistics.
//
// A Reducer is not safe for concurrent use. Terms are never mutated, so
// several Reducers may work on the same tree at once.
type Reducer struct {
	limit uint64 // 0 means unbounded
	used  uint64

	// Stats
	ops          uint64 // Total beta reductions
	statNoOps    uint64
	statSubst    uint64
	statCaptures uint64
	statRebinds  uint64
	statLimit    uint64

	traceBuf []TraceEvent
	traceCap uint64
	traceIdx uint64
	traceOn  bool
}

// Stats holds reduction statistics.
type Stats struct {
	TotalReductions uint64
	NoOps           uint64
	Substitutions   uint64 // variable occurrences rewritten
	Captures        uint64 // beta steps that captured a free variable
	Rebinds         uint64 // beta steps that rewrote a rebound occurrence
	LimitHits       uint64
}

func NewReducer() *Reducer {
	return &Reducer{}
}

func (r *Reducer) GetStats() Stats {
	return Stats{
		TotalReductions: r.ops,
		NoOps:           r.statNoOps,
		Substitutions:   r.statSubst,
		Captures:        r.statCaptures,
		Rebinds:         r.statRebinds,
		LimitHits:       r.statLimit,
	}
}

// Step performs one beta reduction on a Call whose target is a Func.
// Anything else is returned as an unchanged copy.
func (r *Reducer) Step(e lambda.Expr) (lambda.Expr, error) {
	c, ok := e.(lambda.Call)
	if !ok || c.HasBlanks() {
		return r.noOp(e), nil
	}
	f, ok := c.Target.(lambda.Func)
	if !ok {
		return r.noOp(e), nil
	}
	return r.beta(f, c.Argument)
}

// Reduce reduces e in normal order until no redex remains on its application
// spine. A term without normal form never returns; use ReduceWithLimit to probe one.
func (r *Reducer) Reduce(e lambda.Expr) (lambda.Expr, error) {
	res, _, err := r.ReduceWithLimit(e, 0)
	return res, err
}

// ReduceWithLimit is Reduce with a budget of maxSteps beta steps (0 for none).
// It returns the number of steps performed. When the budget runs out the
// partially reduced tree is returned together with ErrStepLimit.
func (r *Reducer) ReduceWithLimit(e lambda.Expr, maxSteps uint64) (lambda.Expr, uint64, error) {
	r.limit = maxSteps
	r.used = 0
	res, err := r.normalize(e)
	if errors.Is(err, ErrStepLimit) {
		r.statLimit++
		if r.tracing() {
			r.recordTrace(RuleStepLimit, "", lambda.String(res), lambda.String(res))
		}
	}
	return res, r.used, err
}

// normalize reduces the target of a Call to normal form before deciding whether
// the Call is a redex. The argument is substituted unevaluated.
func (r *Reducer) normalize(e lambda.Expr) (lambda.Expr, error) {
	for {
		c, ok := e.(lambda.Call)
		if !ok || c.HasBlanks() {
			return lambda.Duplicate(e), nil
		}
		target, err := r.normalize(c.Target)
		if err != nil {
			if errors.Is(err, ErrStepLimit) {
				return lambda.Call{Target: target, Argument: lambda.Duplicate(c.Argument)}, err
			}
			return nil, err
		}
		f, ok := target.(lambda.Func)
		if !ok {
			return lambda.Call{Target: target, Argument: lambda.Duplicate(c.Argument)}, nil
		}
		if r.limit > 0 && r.used >= r.limit {
			return lambda.Call{Target: target, Argument: lambda.Duplicate(c.Argument)}, ErrStepLimit
		}
		e, err = r.beta(f, c.Argument)
		if err != nil {
			return nil, err
		}
	}
}

func (r *Reducer) beta(f lambda.Func, arg lambda.Expr) (lambda.Expr, error) {
	if f.Body == nil {
		return nil, fmt.Errorf("reduce %s: function body is absent: %w", lambda.String(f), lambda.ErrMalformedTerm)
	}
	res, err := lambda.Replace(f.Body, f.Input, arg)
	if err != nil {
		return nil, err
	}
	r.ops++
	r.used++
	r.statSubst += uint64(lambda.Occurrences(f.Body, f.Input))
	if len(lambda.Captures(f.Body, f.Input, arg)) > 0 {
		r.statCaptures++
	}
	if lambda.Rebinds(f.Body, f.Input) > 0 {
		r.statRebinds++
	}
	if r.tracing() {
		r.recordTrace(RuleBeta, f.Input, lambda.String(lambda.Call{Target: f, Argument: arg}), lambda.String(res))
	}
	return res, nil
}

func (r *Reducer) noOp(e lambda.Expr) lambda.Expr {
	r.statNoOps++
	if r.tracing() {
		s := lambda.String(e)
		r.recordTrace(RuleNoOp, "", s, s)
	}
	return lambda.Duplicate(e)
}

// Step performs one beta reduction with a throwaway Reducer.
func Step(e lambda.Expr) (lambda.Expr, error) {
	return NewReducer().Step(e)
}

// Normalize reduces e to normal form with a throwaway Reducer.
func Normalize(e lambda.Expr) (lambda.Expr, error) {
	return NewReducer().Reduce(e)
}

// NormalizeWithLimit reduces e with a budget of maxSteps beta steps.
func NormalizeWithLimit(e lambda.Expr, maxSteps uint64) (lambda.Expr, uint64, error) {
	return NewReducer().ReduceWithLimit(e, maxSteps)
}
