// Package prof wraps runtime profilers behind one session so the CLI can
// start them before a command and stop them afterwards.
package prof

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	rtrace "runtime/trace"
)

// Config names the output files; empty paths disable a profiler.
type Config struct {
	CPU   string
	Mem   string
	Trace string
}

// Enabled reports whether any profiler is requested.
func (c Config) Enabled() bool {
	return c.CPU != "" || c.Mem != "" || c.Trace != ""
}

// Session is a set of running profilers.
type Session struct {
	cfg       Config
	cpuFile   *os.File
	traceFile *os.File
	stopped   bool
}

// Start launches the CPU profiler and runtime tracer requested by cfg. The
// heap profile is written by Stop.
func Start(cfg Config) (*Session, error) {
	s := &Session{cfg: cfg}
	if cfg.CPU != "" {
		f, err := os.Create(cfg.CPU)
		if err != nil {
			return nil, fmt.Errorf("cpu profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("cpu profile: %w", err)
		}
		s.cpuFile = f
	}
	if cfg.Trace != "" {
		f, err := os.Create(cfg.Trace)
		if err != nil {
			s.stopCPU()
			return nil, fmt.Errorf("runtime trace: %w", err)
		}
		if err := rtrace.Start(f); err != nil {
			_ = f.Close()
			s.stopCPU()
			return nil, fmt.Errorf("runtime trace: %w", err)
		}
		s.traceFile = f
	}
	return s, nil
}

// Stop ends the running profilers and writes the heap profile. Calling it
// twice is a no-op.
func (s *Session) Stop() error {
	if s == nil || s.stopped {
		return nil
	}
	s.stopped = true

	var errs []error
	if s.traceFile != nil {
		rtrace.Stop()
		errs = append(errs, s.traceFile.Close())
	}
	errs = append(errs, s.stopCPU())
	if s.cfg.Mem != "" {
		errs = append(errs, writeHeap(s.cfg.Mem))
	}
	return errors.Join(errs...)
}

func (s *Session) stopCPU() error {
	if s.cpuFile == nil {
		return nil
	}
	pprof.StopCPUProfile()
	err := s.cpuFile.Close()
	s.cpuFile = nil
	return err
}

func writeHeap(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("heap profile: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}
