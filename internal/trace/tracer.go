package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Tracer receives trace events. Emit must be safe for concurrent use: the
// driver expands files from several goroutines.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	// Enabled reports Level() > LevelOff.
	Enabled() bool
}

type nopTracer struct{}

func (nopTracer) Emit(*Event)   {}
func (nopTracer) Flush() error  { return nil }
func (nopTracer) Close() error  { return nil }
func (nopTracer) Level() Level  { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// Nop drops everything; it is what FromContext returns without a tracer.
var Nop Tracer = nopTracer{}

// StorageMode selects where events go.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // written as they happen
	ModeRing                          // kept in memory, dumped on panic
	ModeBoth
)

var modeNames = map[StorageMode]string{ModeStream: "stream", ModeRing: "ring", ModeBoth: "both"}

func (m StorageMode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// ParseMode reads the --trace-mode flag.
func ParseMode(s string) (StorageMode, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if name == want {
			return m, nil
		}
	}
	return ModeRing, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

// DefaultRingSize is used when Config.RingSize is not positive.
const DefaultRingSize = 4096

// Config mirrors the --trace* flags.
type Config struct {
	Level Level
	Mode  StorageMode
	// FormatAuto picks NDJSON for .ndjson, .jsonl and .json paths.
	Format Format
	// Output wins over OutputPath. "" or "-" means stderr; parent
	// directories of OutputPath are created.
	Output     io.Writer
	OutputPath string
	RingSize   int
	// Heartbeat > 0 makes New wrap the tracer in a Heartbeat.
	Heartbeat time.Duration
}

// New builds the tracer described by cfg.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = DefaultRingSize
	}

	var t Tracer
	switch cfg.Mode {
	case ModeRing:
		t = NewRingTracer(cfg.RingSize, cfg.Level)
	case ModeStream, ModeBoth:
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		t = NewStreamTracer(w, cfg.Level, outputFormat(cfg))
		if cfg.Mode == ModeBoth {
			t = NewMultiTracer(cfg.Level, t, NewRingTracer(cfg.RingSize, cfg.Level))
		}
	default:
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	}

	if h := StartHeartbeat(t, cfg.Heartbeat); h != nil {
		return h, nil
	}
	return t, nil
}

func outputFormat(cfg Config) Format {
	if cfg.Format != FormatAuto {
		return cfg.Format
	}
	switch strings.ToLower(filepath.Ext(cfg.OutputPath)) {
	case ".ndjson", ".jsonl", ".json":
		return FormatNDJSON
	}
	return FormatText
}

func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return os.Stderr, nil
	}
	if dir := filepath.Dir(cfg.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create trace directory: %w", err)
		}
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}

func isStdStream(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (f == os.Stdout || f == os.Stderr)
}
