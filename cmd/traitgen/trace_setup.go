package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"traitgen/internal/trace"
)

var (
	activeTracer trace.Tracer
	closeOnce    sync.Once
)

// setupTracing inspects trace-related flags and attaches a tracer to the
// command context.
func setupTracing(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()

	traceOutput, err := flags.GetString("trace")
	if err != nil {
		return fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := flags.GetString("trace-mode")
	if err != nil {
		return fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	ringSize, err := flags.GetInt("trace-ring-size")
	if err != nil {
		return fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	heartbeatInterval, err := flags.GetDuration("trace-heartbeat")
	if err != nil {
		return fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace без уровня включает фазы
	if level == trace.LevelOff && traceOutput != "" {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return fmt.Errorf("invalid trace mode: %w", err)
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: traceOutput,
		RingSize:   ringSize,
		Heartbeat:  heartbeatInterval,
	})
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	activeTracer = tracer

	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)
	cmd.Root().SetContext(ctx)
	return nil
}

// closeTracing flushes the tracer; PersistentPostRun is skipped when a
// command fails, so main calls it too.
func closeTracing() {
	closeOnce.Do(func() {
		if activeTracer == nil {
			return
		}
		if err := activeTracer.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "trace: flush error: %v\n", err)
		}
		if err := activeTracer.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "trace: close error: %v\n", err)
		}
	})
}

// dumpTraceOnPanic prints the ring buffer when a command panics. It must be
// deferred directly so that recover sees the panic.
func dumpTraceOnPanic() {
	r := recover()
	if r == nil {
		return
	}
	if ring := trace.RingOf(activeTracer); ring != nil {
		ring.ReportPanic(os.Stderr, r)
	}
	panic(r)
}
