package symbols

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"dalc/internal/types"
)

// Provider contributes at most one built-in signature.
type Provider interface {
	FunctionType() (*FunctionSignature, bool)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func() (*FunctionSignature, bool)

func (f ProviderFunc) FunctionType() (*FunctionSignature, bool) { return f() }

// BuiltinSet is the process-wide part of the function namespace: the
// built-in signatures and reserved keywords. It is built once by
// NewBuiltinSet and is read-only afterwards, so any number of registries may
// share it across goroutines.
type BuiltinSet struct {
	table       *FunctionTable
	keywords    map[string]struct{}
	fingerprint string
}

// NewBuiltinSet walks providers once, in order, storing every signature they
// yield. Providers yielding nothing are skipped. A duplicate among providers
// is a defect of the provider list and is returned as an error.
func NewBuiltinSet(providers []Provider, keywords []string) (*BuiltinSet, error) {
	b := &BuiltinSet{
		table:    NewFunctionTable(),
		keywords: make(map[string]struct{}, len(keywords)),
	}
	for i, p := range providers {
		if p == nil {
			continue
		}
		sig, ok := p.FunctionType()
		if !ok || sig == nil {
			continue
		}
		if err := b.table.Set(sig); err != nil {
			return nil, fmt.Errorf("builtin provider %d: %w", i, err)
		}
	}
	for _, kw := range keywords {
		b.keywords[kw] = struct{}{}
	}
	b.fingerprint = b.computeFingerprint()
	return b, nil
}

// EmptyBuiltinSet returns a set with no functions and no keywords.
func EmptyBuiltinSet() *BuiltinSet {
	b, _ := NewBuiltinSet(nil, nil)
	return b
}

func (b *BuiltinSet) computeFingerprint() string {
	h := sha256.New()
	for _, sig := range b.table.All() {
		_, _ = h.Write([]byte(sig.DetailString()))
		_, _ = h.Write([]byte{0})
	}
	for _, kw := range b.Keywords() {
		_, _ = h.Write([]byte(kw))
		_, _ = h.Write([]byte{1})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint identifies the set's content; it changes whenever a signature
// or keyword does.
func (b *BuiltinSet) Fingerprint() string { return b.fingerprint }

// IsKeyword reports whether name is reserved.
func (b *BuiltinSet) IsKeyword(name string) bool {
	_, ok := b.keywords[name]
	return ok
}

// Keywords returns the reserved names in sorted order.
func (b *BuiltinSet) Keywords() []string {
	out := make([]string, 0, len(b.keywords))
	for kw := range b.keywords {
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}

// Contains reports whether an equal built-in signature exists.
func (b *BuiltinSet) Contains(sig *FunctionSignature) bool { return b.table.Contains(sig) }

// Get returns the built-in signature equal to sig, or nil.
func (b *BuiltinSet) Get(sig *FunctionSignature) *FunctionSignature { return b.table.Get(sig) }

// HasCallable reports whether any built-in overload of name accepts args.
func (b *BuiltinSet) HasCallable(name string, args []*types.Type) bool {
	return b.table.HasCallable(name, args)
}

// GetCallable returns the first built-in overload of name accepting args.
func (b *BuiltinSet) GetCallable(name string, args []*types.Type) *FunctionSignature {
	return b.table.GetCallable(name, args)
}

// Overloads returns the built-in signatures stored under name.
func (b *BuiltinSet) Overloads(name string) []*FunctionSignature { return b.table.Overloads(name) }

// All returns every built-in signature.
func (b *BuiltinSet) All() []*FunctionSignature { return b.table.All() }

// Len reports the number of built-in signatures.
func (b *BuiltinSet) Len() int { return b.table.Len() }
