package prof

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSessionWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		CPU:          filepath.Join(dir, "cpu.pprof"),
		Heap:         filepath.Join(dir, "heap.pprof"),
		RuntimeTrace: filepath.Join(dir, "trace.out"),
	}
	s, err := Start(cfg)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("second stop: %v", err)
	}
	for _, path := range []string{cfg.CPU, cfg.Heap, cfg.RuntimeTrace} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("missing %s: %v", path, err)
		}
	}
}

func TestStartFailsOnBadPath(t *testing.T) {
	if _, err := Start(Config{CPU: filepath.Join(t.TempDir(), "missing", "cpu.pprof")}); err == nil {
		t.Fatalf("expected error")
	}
}
