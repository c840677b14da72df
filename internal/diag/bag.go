package diag

import (
	"math"
	"sort"

	"fortio.org/safecast"
)

type Bag struct {
	items []Diagnostic
	max   uint16
}

// NewBag returns a bag holding at most max diagnostics; values beyond the
// uint16 range are clamped.
func NewBag(max int) *Bag {
	limit, err := safecast.Conv[uint16](max)
	if err != nil {
		limit = math.MaxUint16
		if max < 0 {
			limit = 0
		}
	}
	return &Bag{
		items: make([]Diagnostic, 0, min(int(limit), 64)),
		max:   limit,
	}
}

// Add stores d unless the limit is reached; it reports whether d was stored.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() uint16 {
	return b.max
}

// HasErrors reports whether any diagnostic is an error.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any diagnostic is at least a warning.
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the stored diagnostics. The slice aliases the bag; do not modify it.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends other's diagnostics, growing the limit when needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	total := len(b.items) + len(other.items)
	if total > int(b.max) {
		if limit, err := safecast.Conv[uint16](total); err == nil {
			b.max = limit
		} else {
			b.max = math.MaxUint16
		}
	}
	for _, d := range other.items {
		b.Add(d)
	}
}

// Sort orders diagnostics by file, section, index, severity (desc) and code
// for deterministic output.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Section != dj.Primary.Section {
			return di.Primary.Section < dj.Primary.Section
		}
		if di.Primary.Index != dj.Primary.Index {
			return di.Primary.Index < dj.Primary.Index
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

type dedupKey struct {
	code Code
	loc  Location
	msg  string
}

// Dedup drops repeated diagnostics with the same code, location and message.
func (b *Bag) Dedup() {
	seen := make(map[dedupKey]struct{}, len(b.items))
	kept := b.items[:0]
	for _, d := range b.items {
		key := dedupKey{code: d.Code, loc: d.Primary, msg: d.Message}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, d)
	}
	b.items = kept
}
