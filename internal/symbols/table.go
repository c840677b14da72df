package symbols

import (
	"dalc/internal/types"
)

// FunctionTable groups signatures by name. Overloads of one name keep their
// insertion order and no two of them are Equal.
type FunctionTable struct {
	byName map[string][]*FunctionSignature
	names  []string // first-insertion order of names
	size   int
}

// NewFunctionTable returns an empty table.
func NewFunctionTable() *FunctionTable {
	return &FunctionTable{byName: make(map[string][]*FunctionSignature)}
}

// Set appends sig to the overloads of its name. It fails with a
// DuplicateFunction error, leaving the table untouched, when an equal
// signature is already stored.
func (t *FunctionTable) Set(sig *FunctionSignature) error {
	if sig == nil {
		return &RegistrationError{Kind: InvalidName}
	}
	overloads, known := t.byName[sig.Name()]
	if indexOf(overloads, sig) >= 0 {
		return duplicateError(sig)
	}
	if !known {
		t.names = append(t.names, sig.Name())
	}
	t.byName[sig.Name()] = append(overloads, sig)
	t.size++
	return nil
}

// Contains reports whether an equal signature is stored.
func (t *FunctionTable) Contains(sig *FunctionSignature) bool {
	return t.Get(sig) != nil
}

// Get returns the stored signature equal to sig, or nil.
func (t *FunctionTable) Get(sig *FunctionSignature) *FunctionSignature {
	if sig == nil {
		return nil
	}
	overloads := t.byName[sig.Name()]
	if i := indexOf(overloads, sig); i >= 0 {
		return overloads[i]
	}
	return nil
}

// HasCallable reports whether any overload of name accepts args.
func (t *FunctionTable) HasCallable(name string, args []*types.Type) bool {
	return t.GetCallable(name, args) != nil
}

// GetCallable returns the first overload of name, in declaration order, that
// accepts args. Later overloads never win over earlier ones even when they are
// more specific.
func (t *FunctionTable) GetCallable(name string, args []*types.Type) *FunctionSignature {
	for _, sig := range t.byName[name] {
		if sig.IsCallable(name, args) {
			return sig
		}
	}
	return nil
}

// Overloads returns a copy of the signatures stored under name.
func (t *FunctionTable) Overloads(name string) []*FunctionSignature {
	overloads := t.byName[name]
	if len(overloads) == 0 {
		return nil
	}
	out := make([]*FunctionSignature, len(overloads))
	copy(out, overloads)
	return out
}

// All returns every stored signature, grouped by name in first-insertion order.
func (t *FunctionTable) All() []*FunctionSignature {
	out := make([]*FunctionSignature, 0, t.size)
	for _, name := range t.names {
		out = append(out, t.byName[name]...)
	}
	return out
}

// Names returns the stored function names in first-insertion order.
func (t *FunctionTable) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Len reports the number of stored signatures.
func (t *FunctionTable) Len() int { return t.size }

// Clear removes every signature.
func (t *FunctionTable) Clear() {
	clear(t.byName)
	t.names = t.names[:0]
	t.size = 0
}

func indexOf(overloads []*FunctionSignature, sig *FunctionSignature) int {
	for i, candidate := range overloads {
		if candidate.Equal(sig) {
			return i
		}
	}
	return -1
}
