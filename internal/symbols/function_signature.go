package symbols

import (
	"hash/fnv"
	"slices"
	"strings"

	"dalc/internal/types"
)

// FunctionSignature is one declared function: a name, ordered parameter types
// and an optional result. It never changes after construction.
type FunctionSignature struct {
	name   string
	params []*types.Type
	result *types.Type
	key    string
	hash   uint64
}

// NewFunctionSignature builds a signature. result may be nil.
func NewFunctionSignature(name string, result *types.Type, params ...*types.Type) (*FunctionSignature, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &RegistrationError{Kind: InvalidName}
	}
	sig := &FunctionSignature{
		name:   name,
		params: slices.Clone(params),
		result: result,
	}
	sig.key = formatKey(name, sig.params, (*types.Type).Name)
	h := fnv.New64a()
	_, _ = h.Write([]byte(sig.key))
	sig.hash = h.Sum64()
	return sig, nil
}

// MustFunctionSignature is like NewFunctionSignature but panics on error.
func MustFunctionSignature(name string, result *types.Type, params ...*types.Type) *FunctionSignature {
	sig, err := NewFunctionSignature(name, result, params...)
	if err != nil {
		panic(err)
	}
	return sig
}

// CallKey formats an attempted call the way PrototypeKey formats a
// declaration, for diagnostics about unresolved calls.
func CallKey(name string, args []*types.Type) string {
	return formatKey(name, args, (*types.Type).NameKey)
}

func formatKey(name string, params []*types.Type, typeName func(*types.Type) string) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(typeName(p))
	}
	sb.WriteByte(')')
	return sb.String()
}

func (s *FunctionSignature) Name() string { return s.name }

// Params returns a copy of the parameter types.
func (s *FunctionSignature) Params() []*types.Type { return slices.Clone(s.params) }

// Arity returns the number of parameters.
func (s *FunctionSignature) Arity() int { return len(s.params) }

// Result returns the declared result type, or nil.
func (s *FunctionSignature) Result() *types.Type { return s.result }

// PrototypeKey returns name(Param,...) using declared type names.
func (s *FunctionSignature) PrototypeKey() string { return s.key }

// DetailString returns name(Param,...)[:Result] using detail type names.
func (s *FunctionSignature) DetailString() string {
	detail := formatKey(s.name, s.params, (*types.Type).NameKey)
	if s.result != nil {
		detail += ":" + s.result.NameKey()
	}
	return detail
}

func (s *FunctionSignature) String() string { return s.DetailString() }

// Hash is derived from PrototypeKey; equal signatures hash equally.
func (s *FunctionSignature) Hash() uint64 { return s.hash }

// IsCallable reports whether a call to name with the given argument types may
// bind to s. Each argument must be nearly equal to its parameter, be a java
// action, or be an instance of the parameter type.
func (s *FunctionSignature) IsCallable(name string, args []*types.Type) bool {
	if s.name != name || len(args) != len(s.params) {
		return false
	}
	for i, arg := range args {
		param := s.params[i]
		if arg.NearlyEqual(param) || arg.IsJavaAction() || arg.IsInstanceOf(param) {
			continue
		}
		return false
	}
	return true
}

// Equal reports structural identity: same name and pairwise nearly equal
// parameters. The result type does not take part.
func (s *FunctionSignature) Equal(other *FunctionSignature) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil {
		return false
	}
	if s.hash != other.hash || s.name != other.name || len(s.params) != len(other.params) {
		return false
	}
	for i := range s.params {
		if !s.params[i].NearlyEqual(other.params[i]) {
			return false
		}
	}
	return true
}
