package trace

import "context"

type ctxKey struct{}

// WithTracer stores t in ctx; nil stores Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, t)
}

// FromContext never returns nil.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(ctxKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// RingOf finds the ring buffer behind t: the tracer itself in ModeRing or
// one of the Fanout targets in ModeBoth.
func RingOf(t Tracer) (*RingTracer, bool) {
	switch tr := t.(type) {
	case *RingTracer:
		return tr, true
	case *Fanout:
		for _, target := range tr.targets {
			if r, ok := RingOf(target); ok {
				return r, true
			}
		}
	}
	return nil, false
}
