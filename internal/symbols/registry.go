package symbols

import (
	"dalc/internal/types"
)

// Registry is the function namespace of one compilation unit: the shared
// built-ins plus the unit's own declarations. A Registry is not safe for
// concurrent use; give every concurrently checked unit its own.
type Registry struct {
	builtins *BuiltinSet
	user     *FunctionTable
}

// NewRegistry returns a registry over builtins with an empty user table.
// A nil builtins behaves as an empty set.
func NewRegistry(builtins *BuiltinSet) *Registry {
	if builtins == nil {
		builtins = EmptyBuiltinSet()
	}
	return &Registry{builtins: builtins, user: NewFunctionTable()}
}

// Builtins returns the shared built-in set.
func (r *Registry) Builtins() *BuiltinSet { return r.builtins }

// SetUserFunction declares sig in the user table. Checks run in order:
// keyword, built-in duplicate, user duplicate; the first failure is returned
// and nothing is stored.
func (r *Registry) SetUserFunction(sig *FunctionSignature) error {
	if sig == nil {
		return &RegistrationError{Kind: InvalidName}
	}
	if r.builtins.IsKeyword(sig.Name()) {
		return &RegistrationError{Kind: KeywordConflict, Name: sig.Name(), Detail: sig.DetailString()}
	}
	if r.builtins.Contains(sig) {
		return duplicateError(sig)
	}
	if r.user.Contains(sig) {
		return duplicateError(sig)
	}
	return r.user.Set(sig)
}

// IsKeyword reports whether name is reserved.
func (r *Registry) IsKeyword(name string) bool { return r.builtins.IsKeyword(name) }

// Contains reports whether sig is declared as a user or built-in function.
func (r *Registry) Contains(sig *FunctionSignature) bool {
	return r.user.Contains(sig) || r.builtins.Contains(sig)
}

// HasCallable reports whether any user or built-in overload of name accepts args.
func (r *Registry) HasCallable(name string, args []*types.Type) bool {
	return r.user.HasCallable(name, args) || r.builtins.HasCallable(name, args)
}

// HasCallableSignature is HasCallable using sig's name and parameter types.
func (r *Registry) HasCallableSignature(sig *FunctionSignature) bool {
	if sig == nil {
		return false
	}
	return r.HasCallable(sig.Name(), sig.params)
}

// Get returns the stored signature equal to sig. A user declaration shadows
// an equal built-in.
func (r *Registry) Get(sig *FunctionSignature) *FunctionSignature {
	if found := r.user.Get(sig); found != nil {
		return found
	}
	return r.builtins.Get(sig)
}

// GetCallable resolves a call. User overloads are searched first, so any
// matching user declaration wins over every built-in; within each table the
// earliest declared match wins.
func (r *Registry) GetCallable(name string, args []*types.Type) *FunctionSignature {
	if found := r.user.GetCallable(name, args); found != nil {
		return found
	}
	return r.builtins.GetCallable(name, args)
}

// Overloads returns the user overloads of name followed by the built-in ones.
func (r *Registry) Overloads(name string) []*FunctionSignature {
	return append(r.user.Overloads(name), r.builtins.Overloads(name)...)
}

// IsBuiltinFunction reports whether sig is a built-in.
func (r *Registry) IsBuiltinFunction(sig *FunctionSignature) bool { return r.builtins.Contains(sig) }

// IsUserFunction reports whether sig is declared by the unit.
func (r *Registry) IsUserFunction(sig *FunctionSignature) bool { return r.user.Contains(sig) }

// UserFunctions returns the unit's declarations.
func (r *Registry) UserFunctions() []*FunctionSignature { return r.user.All() }

// Clear forgets the unit's declarations. Built-ins are unaffected.
func (r *Registry) Clear() { r.user.Clear() }
