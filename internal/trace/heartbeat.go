package trace

import (
	"strconv"
	"sync"
	"time"
)

// Heartbeat ticks while a long program runs. Each tick carries the number
// of open spans and the name of the latest one, so a stuck loop shows up as
// ticks with the same "last" and no span ends.
type Heartbeat struct {
	tracer Tracer
	every  time.Duration
	stop   chan struct{}
	done   chan struct{}
	once   sync.Once
}

// StartHeartbeat returns nil when tracing is off or every is not positive.
func StartHeartbeat(t Tracer, every time.Duration) *Heartbeat {
	if t == nil || !t.Enabled() || every <= 0 {
		return nil
	}
	h := &Heartbeat{
		tracer: t,
		every:  every,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go h.loop()
	return h
}

func (h *Heartbeat) loop() {
	defer close(h.done)
	ticker := time.NewTicker(h.every)
	defer ticker.Stop()

	var beat uint64
	for {
		select {
		case <-h.stop:
			return
		case now := <-ticker.C:
			beat++
			h.tracer.Emit(&Event{
				Time:   now,
				Seq:    nextSeq(),
				Kind:   KindHeartbeat,
				Scope:  ScopeFile,
				GID:    goroutineID(),
				Name:   "heartbeat",
				Detail: "#" + strconv.FormatUint(beat, 10),
				Extra:  activity(),
			})
		}
	}
}

func activity() map[string]string {
	extra := map[string]string{"open": strconv.FormatInt(openSpans.Load(), 10)}
	if last := lastBegun.Load(); last != nil {
		extra["last"] = *last
	}
	return extra
}

// Stop waits for the ticker goroutine. Safe on nil and on repeated calls.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	<-h.done
}
