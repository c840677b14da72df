package types

import (
	"fmt"
	"sort"
)

// Backing names of the built-in native hierarchy.
const (
	NativeObject       = "java.lang.Object"
	NativeNumber       = "java.lang.Number"
	NativeBigDecimal   = "java.math.BigDecimal"
	NativeDecimalRange = "dalc.DecimalRange"
	NativeString       = "java.lang.String"
	NativeBoolean      = "java.lang.Boolean"
	NativeLocalDate    = "java.time.LocalDate"
	NativeIterable     = "java.lang.Iterable"
	NativeCollection   = "java.util.Collection"
	NativeSet          = "java.util.Set"
	NativeAction       = "dalc.JavaAction"
)

// Names of the parameterized type constructors.
const (
	IterableName = "Iterable"
	SetName      = "Set"
)

// Builtins stores the predeclared types.
type Builtins struct {
	Object       *Type
	Decimal      *Type
	DecimalRange *Type
	String       *Type
	Boolean      *Type
	Date         *Type
	JavaAction   *Type
}

// Universe holds the built-in native hierarchy and predeclared types. It is
// built once and only read afterwards.
type Universe struct {
	natives  map[string]*Native
	named    map[string]*Type
	builtins Builtins
}

// NewUniverse constructs a universe seeded with the built-in types.
func NewUniverse() *Universe {
	u := &Universe{
		natives: make(map[string]*Native, 16),
		named:   make(map[string]*Type, 16),
	}
	object := u.native(NativeObject, nil)
	number := u.native(NativeNumber, object)
	decimal := u.native(NativeBigDecimal, number)
	u.native(NativeDecimalRange, decimal)
	u.native(NativeString, object)
	u.native(NativeBoolean, object)
	u.native(NativeLocalDate, object)
	iterable := u.native(NativeIterable, object)
	collection := u.native(NativeCollection, iterable)
	u.native(NativeSet, collection)
	u.native(NativeAction, object)

	u.builtins.Object = u.declare(NewClass("Object", u.natives[NativeObject]))
	u.builtins.Decimal = u.declare(NewPrimitive("Decimal", u.natives[NativeBigDecimal]))
	u.builtins.DecimalRange = u.declare(NewPrimitive("DecimalRange", u.natives[NativeDecimalRange]))
	u.builtins.String = u.declare(NewPrimitive("String", u.natives[NativeString]))
	u.builtins.Boolean = u.declare(NewPrimitive("Boolean", u.natives[NativeBoolean]))
	u.builtins.Date = u.declare(NewPrimitive("Date", u.natives[NativeLocalDate]))
	u.builtins.JavaAction = u.declare(NewJavaAction("JavaAction", u.natives[NativeAction]))
	return u
}

func (u *Universe) native(name string, super *Native) *Native {
	n := NewNative(name, super)
	u.natives[name] = n
	return n
}

func (u *Universe) declare(t *Type, err error) *Type {
	if err != nil {
		panic(fmt.Errorf("types: universe seed: %w", err))
	}
	u.named[t.Name()] = t
	return t
}

// Builtins returns the predeclared types.
func (u *Universe) Builtins() Builtins {
	return u.builtins
}

// Native returns the built-in backing with the given name.
func (u *Universe) Native(name string) (*Native, bool) {
	n, ok := u.natives[name]
	return n, ok
}

// Lookup returns the predeclared type with the given name.
func (u *Universe) Lookup(name string) (*Type, bool) {
	t, ok := u.named[name]
	return t, ok
}

// Names lists the predeclared type names in sorted order.
func (u *Universe) Names() []string {
	names := make([]string, 0, len(u.named))
	for name := range u.named {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Iterable builds Iterable<elem>.
func (u *Universe) Iterable(elem *Type) (*Type, error) {
	return NewIterable(IterableName, u.natives[NativeIterable], elem)
}

// Set builds Set<elem>.
func (u *Universe) Set(elem *Type) (*Type, error) {
	return NewSet(SetName, u.natives[NativeSet], elem)
}

// MustIterable is like Iterable but panics on error.
func (u *Universe) MustIterable(elem *Type) *Type {
	t, err := u.Iterable(elem)
	if err != nil {
		panic(err)
	}
	return t
}

// MustSet is like Set but panics on error.
func (u *Universe) MustSet(elem *Type) *Type {
	t, err := u.Set(elem)
	if err != nil {
		panic(err)
	}
	return t
}
