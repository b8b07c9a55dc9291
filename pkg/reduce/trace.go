package reduce

type RuleKind int

const (
	RuleUnknown RuleKind = iota
	RuleBeta
	RuleNoOp
	RuleStepLimit
)

func (k RuleKind) String() string {
	switch k {
	case RuleBeta:
		return "beta"
	case RuleNoOp:
		return "no-op"
	case RuleStepLimit:
		return "step-limit"
	default:
		return "unknown"
	}
}

// TraceEvent records one reduction decision. Redex and Result are in lambda notation.
type TraceEvent struct {
	Step   uint64
	Rule   RuleKind
	Param  string // parameter bound by the beta step, empty otherwise
	Redex  string
	Result string
}

// EnableTrace starts recording and keeps the first capacity events; later
// events are dropped, not rotated in.
func (r *Reducer) EnableTrace(capacity int) {
	if capacity <= 0 {
		capacity = 1
	}
	r.traceBuf = make([]TraceEvent, capacity)
	r.traceCap = uint64(capacity)
	r.traceIdx = 0
	r.traceOn = true
}

func (r *Reducer) DisableTrace() {
	r.traceOn = false
}

func (r *Reducer) TraceSnapshot() []TraceEvent {
	if !r.traceOn {
		return nil
	}
	count := r.traceIdx
	if count > r.traceCap {
		count = r.traceCap
	}
	res := make([]TraceEvent, count)
	copy(res, r.traceBuf[:count])
	return res
}

func (r *Reducer) tracing() bool {
	return r.traceOn && r.traceIdx < r.traceCap
}

func (r *Reducer) recordTrace(rule RuleKind, param, redex, result string) {
	if !r.tracing() {
		return
	}
	idx := r.traceIdx
	r.traceIdx++
	r.traceBuf[idx] = TraceEvent{
		Step:   idx,
		Rule:   rule,
		Param:  param,
		Redex:  redex,
		Result: result,
	}
}
