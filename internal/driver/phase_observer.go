package driver

import "time"

// PhaseStatus tells a stage opening from a stage closing.
type PhaseStatus uint8

const (
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

func (s PhaseStatus) String() string {
	if s == PhaseEnd {
		return "end"
	}
	return "start"
}

// PhaseEvent is sent to Options.Observer at stage boundaries. Elapsed is
// zero on PhaseStart.
type PhaseEvent struct {
	Stage   Stage
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver may be nil.
type PhaseObserver func(PhaseEvent)

// open reports the start of stage and returns the matching close.
func (o PhaseObserver) open(stage Stage) func() {
	if o == nil {
		return func() {}
	}
	o(PhaseEvent{Stage: stage, Status: PhaseStart})
	started := time.Now()
	return func() {
		o(PhaseEvent{Stage: stage, Status: PhaseEnd, Elapsed: time.Since(started)})
	}
}
