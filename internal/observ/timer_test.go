package observ

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	clock := time.Unix(0, 0)
	tm := NewTimer()
	tm.now = func() time.Time { return clock }

	lex := tm.Track("lex")
	clock = clock.Add(2 * time.Millisecond)
	lex("tokens=10")
	parse := tm.Track("parse")
	clock = clock.Add(3 * time.Millisecond)
	parse("items=2")

	report := tm.Report()
	if len(report.Phases) != 2 || report.TotalMS != 5 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.Phases[0].DurationMS != 2 || report.Phases[1].Note != "items=2" {
		t.Fatalf("unexpected phases: %+v", report.Phases)
	}
	var buf bytes.Buffer
	report.WriteTable(&buf)
	table := buf.String()
	if !strings.HasPrefix(table, "timings:\n") || !strings.Contains(table, "// tokens=10") || !strings.Contains(table, "total") {
		t.Fatalf("unexpected table:\n%s", table)
	}
}

func TestUnfinishedPhaseReportsZero(t *testing.T) {
	tm := NewTimer()
	tm.Track("run")
	r := tm.Report()
	if len(r.Phases) != 1 || r.Phases[0].DurationMS != 0 {
		t.Fatalf("open phase should report zero: %+v", r)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.Track("x")("note")
	if r := tm.Report(); len(r.Phases) != 0 {
		t.Fatalf("nil timer should report nothing")
	}
}
