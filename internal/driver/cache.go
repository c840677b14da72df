package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"dalc/internal/diag"
	"dalc/internal/project"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 2

// DiskCache stores per-unit check results on disk keyed by content hash.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached outcome of checking one unit.
type DiskPayload struct {
	Schema uint16

	Name        string
	Diagnostics []CachedDiagnostic
	Declared    []string
	Resolved    []ResolvedCall
	Rejected    int
	Unresolved  int
}

// CachedDiagnostic is the serialisable form of diag.Diagnostic. The file is
// not stored: entries are keyed by content, so one entry may serve several
// paths.
type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Section  string
	Index    int
	Notes    []string
}

// OpenDiskCache returns a cache rooted at dir. An empty dir selects
// $XDG_CACHE_HOME/dalc, falling back to ~/.cache/dalc.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, "dalc")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "units", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// atomic replace
	return os.Rename(tmp, p)
}

// Get reads a payload. A missing entry or one written with another schema
// version is a miss, not an error.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	var payload DiskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return false, err
	}
	if payload.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	*out = payload
	return true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "units"))
}

func encodeDiagnostics(items []diag.Diagnostic) []CachedDiagnostic {
	out := make([]CachedDiagnostic, len(items))
	for i, d := range items {
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Section:  d.Primary.Section,
			Index:    d.Primary.Index,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, n.Msg)
		}
		out[i] = cd
	}
	return out
}

// decodeDiagnostics replays cached diagnostics into bag, attributing them to path.
func decodeDiagnostics(items []CachedDiagnostic, path string, bag *diag.Bag) {
	for _, cd := range items {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code),
			diag.Location{File: path, Section: cd.Section, Index: cd.Index}, cd.Message)
		for _, n := range cd.Notes {
			d = d.WithNote(n)
		}
		bag.Add(d)
	}
}
