package types

import (
	"errors"
	"fmt"
	"strings"
)

// Kind enumerates the variants of declared types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindPrimitive
	KindClass
	KindIterable
	KindSet
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindPrimitive:
		return "primitive"
	case KindClass:
		return "class"
	case KindIterable:
		return "iterable"
	case KindSet:
		return "set"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Parameterized reports whether the kind carries an element type.
func (k Kind) Parameterized() bool {
	return k == KindIterable || k == KindSet
}

var (
	// ErrEmptyName is returned when a type is constructed without a name.
	ErrEmptyName = errors.New("types: empty type name")
	// ErrNoBacking is returned when a type is constructed without a native backing.
	ErrNoBacking = errors.New("types: missing native backing")
	// ErrNoElement is returned when a parameterized type has no element type.
	ErrNoElement = errors.New("types: missing element type")
)

// Type describes a declared type. Values are immutable once constructed; the
// same logical type may exist as several instances, compare them with
// NearlyEqual rather than ==.
type Type struct {
	kind   Kind
	name   string
	native *Native
	elem   *Type
	action bool
}

// Descriptor helpers ---------------------------------------------------------

// NewPrimitive describes a fixed named type such as Decimal or String.
func NewPrimitive(name string, native *Native) (*Type, error) {
	return newType(KindPrimitive, name, native, nil, false)
}

// NewClass describes a plain wrapper around an arbitrary native class.
func NewClass(name string, native *Native) (*Type, error) {
	return newType(KindClass, name, native, nil, false)
}

// NewJavaAction describes a class wrapper that acts as a dynamically typed
// bridge: call sites accept it for any declared parameter type.
func NewJavaAction(name string, native *Native) (*Type, error) {
	return newType(KindClass, name, native, nil, true)
}

// NewIterable describes a sequence of elem.
func NewIterable(name string, native *Native, elem *Type) (*Type, error) {
	return newType(KindIterable, name, native, elem, false)
}

// NewSet describes a set of elem. Sets never share identity with iterables.
func NewSet(name string, native *Native, elem *Type) (*Type, error) {
	return newType(KindSet, name, native, elem, false)
}

func newType(kind Kind, name string, native *Native, elem *Type, action bool) (*Type, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if native == nil {
		return nil, fmt.Errorf("%w for %q", ErrNoBacking, name)
	}
	if kind.Parameterized() && elem == nil {
		return nil, fmt.Errorf("%w for %q", ErrNoElement, name)
	}
	return &Type{kind: kind, name: name, native: native, elem: elem, action: action}, nil
}

// Kind returns the variant of t.
func (t *Type) Kind() Kind {
	if t == nil {
		return KindInvalid
	}
	return t.kind
}

// Name returns the declared name, without element parameters.
func (t *Type) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

// NameKey returns the detail form of the name, e.g. Iterable<Decimal>.
func (t *Type) NameKey() string {
	if t == nil {
		return ""
	}
	if t.elem == nil {
		return t.name
	}
	return t.name + "<" + t.elem.NameKey() + ">"
}

// String implements fmt.Stringer.
func (t *Type) String() string { return t.NameKey() }

// Native returns the backing of t.
func (t *Type) Native() *Native {
	if t == nil {
		return nil
	}
	return t.native
}

// Elem returns the element type of iterables and sets, nil otherwise.
func (t *Type) Elem() *Type {
	if t == nil {
		return nil
	}
	return t.elem
}

// IsJavaAction reports whether t bypasses structural checks at call sites.
func (t *Type) IsJavaAction() bool {
	return t != nil && t.action
}

// NearlyEqual reports value-level identity: same variant, name, backing and
// element structure.
func (t *Type) NearlyEqual(other *Type) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	if t.kind != other.kind || t.name != other.name || t.action != other.action {
		return false
	}
	if t.native == nil || other.native == nil || t.native.name != other.native.name {
		return false
	}
	if (t.elem == nil) != (other.elem == nil) {
		return false
	}
	return t.elem == nil || t.elem.NearlyEqual(other.elem)
}

// IsInstanceOf reports whether a value of t may be used where target is
// declared. The answer comes from the declared backing hierarchy; element
// types are compared covariantly.
func (t *Type) IsInstanceOf(target *Type) bool {
	if t == nil || target == nil {
		return false
	}
	if t.NearlyEqual(target) {
		return true
	}
	if !t.native.AssignableTo(target.native) {
		return false
	}
	if target.elem == nil {
		return true
	}
	if t.elem == nil {
		return false
	}
	return t.elem.IsInstanceOf(target.elem)
}
