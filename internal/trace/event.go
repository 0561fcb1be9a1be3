package trace

import "time"

// Kind is what happened: a span opened or closed, an instant, a failure,
// or a liveness tick.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	// KindFault records a failure (runtime error, cancelled check). Faults
	// pass every level except off.
	KindFault
	KindHeartbeat
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
	KindFault:     "fault",
	KindHeartbeat: "heartbeat",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event. Smaller is coarser.
type Scope uint8

const (
	// ScopeFile wraps the whole pipeline of one source file.
	ScopeFile Scope = iota + 1
	// ScopeStage wraps tokenize, parse, sema or run.
	ScopeStage
	// ScopeDecl wraps the checking of one function body.
	ScopeDecl
	// ScopeCall wraps one function activation in the interpreter.
	ScopeCall
)

var scopeNames = [...]string{
	ScopeFile:  "file",
	ScopeStage: "stage",
	ScopeDecl:  "decl",
	ScopeCall:  "call",
}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is one record. Extra only appears on span ends, faults and
// heartbeats.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64
	GID      uint64
	Name     string // "parse", "sema", "call:fib"
	Detail   string
	Extra    map[string]string
}
