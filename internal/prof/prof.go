// Package prof wraps the runtime profilers behind one start/stop session so
// the CLI can enable them from flags.
package prof

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	rtrace "runtime/trace"
)

// Config selects the profiles to record. Empty paths disable a profile.
type Config struct {
	CPU          string
	Heap         string
	RuntimeTrace string
}

// Session is a running set of profilers.
type Session struct {
	cfg       Config
	cpuFile   *os.File
	traceFile *os.File
	stopped   bool
}

// Start begins CPU profiling and runtime tracing as configured. The heap
// profile is written by Stop.
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
	if cfg.RuntimeTrace != "" {
		f, err := os.Create(cfg.RuntimeTrace)
		if err == nil {
			if err = rtrace.Start(f); err != nil {
				_ = f.Close()
			}
		}
		if err != nil {
			_ = s.stopCPU()
			return nil, fmt.Errorf("runtime trace: %w", err)
		}
		s.traceFile = f
	}
	return s, nil
}

// Stop ends every profiler and writes the heap profile. Calling Stop again
// is a no-op.
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
	if s.cfg.Heap != "" {
		errs = append(errs, writeHeap(s.cfg.Heap))
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

func writeHeap(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("heap profile: %w", err)
	}
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("heap profile: %w", err)
	}
	return f.Close()
}
