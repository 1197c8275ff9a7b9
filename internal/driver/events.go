package driver

import (
	"time"

	"traitgen/internal/diag"
)

// Stage describes a phase of expanding one file.
type Stage string

const (
	// StageParse covers lexing, parsing and the reserved-identifier check.
	StageParse Stage = "parse"
	// StageGenerate builds the trait and impl fragments.
	StageGenerate Stage = "generate"
	// StageRender prints fragments and splices them into the output text.
	StageRender Stage = "render"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the stage is running.
	StatusWorking Status = "working"
	// StatusCached indicates the output came from the disk cache.
	StatusCached Status = "cached"
	// StatusDone indicates the file was expanded.
	StatusDone Status = "done"
	// StatusError indicates the file produced error diagnostics.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Items   int
	Elapsed time.Duration
}

// ProgressSink consumes progress events. OnEvent may be called from several
// workers at once.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

// OnEvent sends evt to the channel.
func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// SinkFunc adapts a plain function to ProgressSink.
type SinkFunc func(Event)

// OnEvent calls f(evt).
func (f SinkFunc) OnEvent(evt Event) { f(evt) }

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}

// DefaultMaxDiagnostics applies when Options.MaxDiagnostics is not positive.
const DefaultMaxDiagnostics = 100

func newBag(maxDiagnostics int) *diag.Bag {
	if maxDiagnostics <= 0 {
		maxDiagnostics = DefaultMaxDiagnostics
	}
	return diag.NewBag(maxDiagnostics)
}
