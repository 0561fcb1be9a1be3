package driver

import "time"

// Stage is one layer of the per-file pipeline. As an option it names the
// last layer to run.
type Stage string

const (
	StageTokenize Stage = "tokenize"
	StageSyntax   Stage = "syntax"
	StageSema     Stage = "sema"
	// StageRun only appears in progress events and timings.
	StageRun Stage = "run"
)

// ParseStage accepts the CLI spelling of a stage; "all" means sema.
func ParseStage(s string) (Stage, bool) {
	switch s {
	case "tokenize", "lex":
		return StageTokenize, true
	case "syntax", "parse":
		return StageSyntax, true
	case "sema", "all", "":
		return StageSema, true
	}
	return "", false
}

func (s Stage) rank() int {
	switch s {
	case StageTokenize:
		return 1
	case StageSyntax:
		return 2
	default:
		return 3
	}
}

// Status captures progress state of one file.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusCached  Status = "cached"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// ProgressEvent reports progress for a file (or for the whole run when File is empty).
type ProgressEvent struct {
	File    string
	Stage   Stage
	Status  Status
	Elapsed time.Duration
}

// ProgressSink consumes progress events. DiagnoseDir calls it from worker
// goroutines, so implementations must be goroutine-safe.
type ProgressSink interface {
	OnEvent(ProgressEvent)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- ProgressEvent
}

func (s ChannelSink) OnEvent(evt ProgressEvent) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// Options configure one pass over a file.
type Options struct {
	Stage            Stage
	MaxDiagnostics   int
	IgnoreWarnings   bool
	WarningsAsErrors bool
	EnableTimings    bool
	// Cache is consulted only by Diagnose and DiagnoseDir; Run always checks from scratch.
	Cache    *DiskCache
	Observer PhaseObserver
}
