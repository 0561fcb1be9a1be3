package observ

import (
	"fmt"
	"io"
	"time"
)

// Timer measures the stages of one file or one run for --timings. It is
// not safe for concurrent use; DiagnoseDir gives every file its own.
type Timer struct {
	phases []phase
	now    func() time.Time
}

type phase struct {
	name    string
	started time.Time
	took    time.Duration
	note    string
}

func NewTimer() *Timer { return &Timer{now: time.Now} }

// Track opens a phase; calling the result closes it with a note such as
// "tokens=42". A nil Timer tracks nothing.
func (t *Timer) Track(name string) func(note string) {
	if t == nil {
		return func(string) {}
	}
	i := len(t.phases)
	t.phases = append(t.phases, phase{name: name, started: t.now()})
	return func(note string) {
		p := &t.phases[i]
		p.took = t.now().Sub(p.started)
		p.note = note
	}
}

// PhaseReport is one row of a Report. The tags serve both the JSON timing
// note and the msgpack disk cache.
type PhaseReport struct {
	Name       string  `json:"name" msgpack:"name"`
	DurationMS float64 `json:"duration_ms" msgpack:"duration_ms"`
	Note       string  `json:"note,omitempty" msgpack:"note,omitempty"`
}

type Report struct {
	TotalMS float64       `json:"total_ms" msgpack:"total_ms"`
	Phases  []PhaseReport `json:"phases" msgpack:"phases"`
}

// Report freezes the phases tracked so far; TotalMS is their sum.
func (t *Timer) Report() Report {
	var r Report
	if t == nil {
		return r
	}
	var total time.Duration
	for _, p := range t.phases {
		total += p.took
		r.Phases = append(r.Phases, PhaseReport{Name: p.name, DurationMS: millis(p.took), Note: p.note})
	}
	r.TotalMS = millis(total)
	return r
}

// WriteTable prints the report the way `--timings` shows it:
//
//	timings:
//	  tokenize      0.12 ms  // tokens=42
//	  total         0.12 ms
func (r Report) WriteTable(w io.Writer) {
	fmt.Fprintln(w, "timings:")
	for _, p := range r.Phases {
		fmt.Fprintf(w, "  %-10s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			fmt.Fprintf(w, "  // %s", p.Note)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "  %-10s %7.2f ms\n", "total", r.TotalMS)
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
