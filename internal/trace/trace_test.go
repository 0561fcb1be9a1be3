package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLevelAdmits(t *testing.T) {
	cases := []struct {
		level Level
		kind  Kind
		scope Scope
		want  bool
	}{
		{LevelOff, KindFault, ScopeFile, false},
		{LevelFault, KindSpanBegin, ScopeFile, false},
		{LevelFault, KindFault, ScopeCall, true},
		{LevelStage, KindSpanBegin, ScopeStage, true},
		{LevelStage, KindSpanBegin, ScopeDecl, false},
		{LevelDecl, KindPoint, ScopeDecl, true},
		{LevelDecl, KindSpanBegin, ScopeCall, false},
		{LevelCall, KindSpanEnd, ScopeCall, true},
		{LevelStage, KindHeartbeat, ScopeFile, true},
	}
	for _, c := range cases {
		if got := c.level.Admits(c.kind, c.scope); got != c.want {
			t.Fatalf("%s.Admits(%s, %s) = %v, want %v", c.level, c.kind, c.scope, got, c.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"off": LevelOff, "FAULT": LevelFault, "error": LevelFault, "stage": LevelStage, "Call": LevelCall} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if tr.Enabled() {
		t.Fatalf("LevelOff tracer should be disabled")
	}
	sp := Begin(tr, ScopeFile, "x", 0)
	if sp.ID() != 0 || sp.End("") != 0 {
		t.Fatalf("disabled span should be inert")
	}
}

func TestStreamTextFiltersByScope(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelStage, Output: &buf, Format: FormatText})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	sp := Begin(tr, ScopeStage, "parse", 0)
	inner := Begin(tr, ScopeCall, "call:main", sp.ID())
	inner.End("")
	sp.WithExtra("tokens", "12").WithExtra("errors", "0").End("")
	sp.End("")

	out := buf.String()
	if strings.Contains(out, "call:main") {
		t.Fatalf("call scope leaked at stage level:\n%s", out)
	}
	if !strings.Contains(out, "→ parse") || strings.Count(out, "← parse") != 1 {
		t.Fatalf("want one begin and one end line:\n%s", out)
	}
	if !strings.Contains(out, "{errors=0, tokens=12}") {
		t.Fatalf("extras should be sorted:\n%s", out)
	}
}

func TestNDJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelCall, FormatNDJSON)
	Point(tr, ScopeCall, "print", "hello", 0)

	var got map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &got); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if got["kind"] != "point" || got["scope"] != "call" || got["detail"] != "hello" {
		t.Fatalf("unexpected event: %v", got)
	}
}

func TestFaultPassesFaultLevel(t *testing.T) {
	r := NewRingTracer(8, LevelFault)
	sp := Begin(r, ScopeStage, "run", 0)
	Fault(r, ScopeStage, "run", "division by zero", sp.ID(), map[string]string{"code": "RUN4001"})
	sp.End("")

	events := r.Snapshot()
	if len(events) != 1 || events[0].Kind != KindFault || events[0].Extra["code"] != "RUN4001" {
		t.Fatalf("ring should hold only the fault, got %+v", events)
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if !strings.Contains(buf.String(), "✗ run (division by zero)") {
		t.Fatalf("unexpected dump:\n%s", buf.String())
	}
}

func TestRingWrapsAndDumps(t *testing.T) {
	r := NewRingTracer(3, LevelCall)
	for i := 0; i < 5; i++ {
		Point(r, ScopeStage, string(rune('a'+i)), "", 0)
	}
	events := r.Snapshot()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].Name != "c" || events[2].Name != "e" {
		t.Fatalf("ring order wrong: %s..%s", events[0].Name, events[2].Name)
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("dump should write one line per event:\n%s", buf.String())
	}
}

func TestModeBothKeepsRing(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelStage, Mode: ModeBoth, Output: &buf, RingSize: 8})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	Begin(tr, ScopeFile, "run", 0).End("")
	ring, ok := RingOf(tr)
	if !ok {
		t.Fatalf("expected ring behind ModeBoth tracer")
	}
	if n := len(ring.Snapshot()); n != 2 {
		t.Fatalf("ring holds %d events, want 2", n)
	}
	if buf.Len() == 0 {
		t.Fatalf("stream side wrote nothing")
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestContextRoundTrip(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("empty context should yield Nop")
	}
	r := NewRingTracer(4, LevelStage)
	ctx := WithTracer(context.Background(), r)
	if FromContext(ctx) != Tracer(r) {
		t.Fatalf("tracer lost in context")
	}
}

func TestHeartbeatReportsOpenSpan(t *testing.T) {
	r := NewRingTracer(64, LevelStage)
	sp := Begin(r, ScopeStage, "spin", 0)
	hb := StartHeartbeat(r, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(r.Snapshot()) < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	hb.Stop()
	hb.Stop()
	sp.End("")

	events := r.Snapshot()
	if len(events) < 2 || events[1].Kind != KindHeartbeat {
		t.Fatalf("expected a heartbeat after the span begin, got %v", events)
	}
	if events[1].Extra["last"] != "spin" || events[1].Extra["open"] == "0" {
		t.Fatalf("heartbeat extras = %v", events[1].Extra)
	}
	if StartHeartbeat(Nop, time.Second) != nil {
		t.Fatalf("heartbeat on disabled tracer should be nil")
	}
}

func TestParseModeAndFormat(t *testing.T) {
	if m, err := ParseMode("ring"); err != nil || m != ModeRing {
		t.Fatalf("ParseMode(ring) = %v, %v", m, err)
	}
	if f, err := ParseFormat("json"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat(json) = %v, %v", f, err)
	}
	if _, err := ParseFormat("chrome"); err == nil {
		t.Fatalf("unknown format accepted")
	}
	if got := formatFor(Config{OutputPath: "out.jsonl"}); got != FormatNDJSON {
		t.Fatalf("formatFor(.jsonl) = %v", got)
	}
}
