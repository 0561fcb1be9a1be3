package trace

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64

	// openSpans и lastBegun читает Heartbeat
	openSpans atomic.Int64
	lastBegun atomic.Pointer[string]
)

func nextSeq() uint64 { return seqCounter.Add(1) }

// goroutineID reads the id from the "goroutine N [running]:" header.
// DiagnoseDir checks files concurrently, so spans carry it.
func goroutineID() uint64 {
	var buf [64]byte
	header := buf[:runtime.Stack(buf[:], false)]
	header, ok := bytes.CutPrefix(header, []byte("goroutine "))
	if !ok {
		return 0
	}
	if i := bytes.IndexByte(header, ' '); i > 0 {
		header = header[:i]
	}
	gid, err := strconv.ParseUint(string(header), 10, 64)
	if err != nil {
		return 0
	}
	return gid
}

// Span is an open begin/end pair. The zero Span and spans rejected by the
// level are inert: End, WithExtra and ID all work on them.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	gid     uint64
	scope   Scope
	name    string
	started time.Time
	extra   map[string]string
}

// Begin opens a span under parent (0 for a root).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if !admits(t, KindSpanBegin, scope) {
		return &Span{}
	}
	s := &Span{
		tracer:  t,
		id:      spanCounter.Add(1),
		parent:  parent,
		gid:     goroutineID(),
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	openSpans.Add(1)
	lastBegun.Store(&s.name)
	t.Emit(&Event{
		Time:     s.started,
		Seq:      nextSeq(),
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   s.id,
		ParentID: parent,
		GID:      s.gid,
		Name:     name,
	})
	return s
}

// End closes the span once and returns how long it was open.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil {
		return 0
	}
	tracer := s.tracer
	s.tracer = nil
	openSpans.Add(-1)
	elapsed := time.Since(s.started)
	tracer.Emit(&Event{
		Time:     time.Now(),
		Seq:      nextSeq(),
		Kind:     KindSpanEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		GID:      s.gid,
		Name:     s.name,
		Detail:   detail,
		Extra:    s.extra,
	})
	return elapsed
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.tracer == nil {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	emitInstant(t, KindPoint, scope, name, detail, parent, nil)
}

// Fault records a failure. It reaches the ring at every level but off, so
// a post-mortem dump always ends with the fault itself.
func Fault(t Tracer, scope Scope, name, detail string, parent uint64, extra map[string]string) {
	emitInstant(t, KindFault, scope, name, detail, parent, extra)
}

func emitInstant(t Tracer, kind Kind, scope Scope, name, detail string, parent uint64, extra map[string]string) {
	if !admits(t, kind, scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Seq:      nextSeq(),
		Kind:     kind,
		Scope:    scope,
		ParentID: parent,
		GID:      goroutineID(),
		Name:     name,
		Detail:   detail,
		Extra:    extra,
	})
}

func admits(t Tracer, kind Kind, scope Scope) bool {
	return t != nil && t.Enabled() && t.Level().Admits(kind, scope)
}
