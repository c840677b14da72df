package types

import (
	"errors"
	"testing"
)

func TestConstructorsRejectMissingParts(t *testing.T) {
	obj := NewNative(NativeObject, nil)
	if _, err := NewPrimitive("", obj); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if _, err := NewClass("Thing", nil); !errors.Is(err, ErrNoBacking) {
		t.Fatalf("expected ErrNoBacking, got %v", err)
	}
	if _, err := NewIterable("Iterable", obj, nil); !errors.Is(err, ErrNoElement) {
		t.Fatalf("expected ErrNoElement, got %v", err)
	}
}

func TestNearlyEqualAcrossInstances(t *testing.T) {
	u1 := NewUniverse()
	u2 := NewUniverse()
	a := u1.MustIterable(u1.Builtins().Decimal)
	b := u2.MustIterable(u2.Builtins().Decimal)
	if a == b {
		t.Fatalf("expected distinct instances")
	}
	if !a.NearlyEqual(b) || !b.NearlyEqual(a) {
		t.Fatalf("Iterable<Decimal> instances should be nearly equal")
	}
	if !a.NearlyEqual(a) {
		t.Fatalf("NearlyEqual must be reflexive")
	}
}

func TestSetIsNotIterableForIdentity(t *testing.T) {
	u := NewUniverse()
	dec := u.Builtins().Decimal
	set := u.MustSet(dec)
	it := u.MustIterable(dec)
	if set.NearlyEqual(it) {
		t.Fatalf("Set<Decimal> must not be nearly equal to Iterable<Decimal>")
	}
	if !set.IsInstanceOf(it) {
		t.Fatalf("Set<Decimal> should be usable where Iterable<Decimal> is expected")
	}
	if it.IsInstanceOf(set) {
		t.Fatalf("Iterable<Decimal> must not be usable where Set<Decimal> is expected")
	}
}

func TestIsInstanceOfHierarchy(t *testing.T) {
	u := NewUniverse()
	b := u.Builtins()
	if !b.DecimalRange.IsInstanceOf(b.Decimal) {
		t.Fatalf("DecimalRange should be an instance of Decimal")
	}
	if b.Decimal.IsInstanceOf(b.DecimalRange) {
		t.Fatalf("Decimal must not be an instance of DecimalRange")
	}
	if b.String.IsInstanceOf(b.Decimal) {
		t.Fatalf("String must not be an instance of Decimal")
	}
	if !b.String.IsInstanceOf(b.Object) {
		t.Fatalf("every backing descends from Object")
	}
	ranges := u.MustIterable(b.DecimalRange)
	decimals := u.MustIterable(b.Decimal)
	if !ranges.IsInstanceOf(decimals) {
		t.Fatalf("element types should be covariant")
	}
	if decimals.IsInstanceOf(ranges) {
		t.Fatalf("element covariance must not run backwards")
	}
	if b.Decimal.IsInstanceOf(nil) || (*Type)(nil).IsInstanceOf(b.Decimal) {
		t.Fatalf("nil operands are never instances")
	}
}

func TestIterableOfObjectAcceptsAnyIterable(t *testing.T) {
	u := NewUniverse()
	b := u.Builtins()
	objects := u.MustIterable(b.Object)
	strs := u.MustSet(b.String)
	if !strs.IsInstanceOf(objects) {
		t.Fatalf("Set<String> should be usable where Iterable<Object> is expected")
	}
	if b.String.IsInstanceOf(objects) {
		t.Fatalf("unparameterized String must not satisfy Iterable<Object>")
	}
}

func TestJavaActionFlag(t *testing.T) {
	u := NewUniverse()
	b := u.Builtins()
	if !b.JavaAction.IsJavaAction() {
		t.Fatalf("JavaAction must be flagged")
	}
	if b.Decimal.IsJavaAction() {
		t.Fatalf("Decimal must not be flagged")
	}
	if b.JavaAction.IsInstanceOf(b.Decimal) {
		t.Fatalf("the flag alone does not make JavaAction a subtype")
	}
}

func TestNameKey(t *testing.T) {
	u := NewUniverse()
	nested := u.MustSet(u.MustIterable(u.Builtins().String))
	if nested.Name() != "Set" {
		t.Fatalf("Name() = %q", nested.Name())
	}
	if nested.NameKey() != "Set<Iterable<String>>" {
		t.Fatalf("NameKey() = %q", nested.NameKey())
	}
}

func TestParse(t *testing.T) {
	u := NewUniverse()
	got, err := u.Parse(" Set< Iterable<DecimalRange> > ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.NameKey() != "Set<Iterable<DecimalRange>>" {
		t.Fatalf("unexpected type %s", got)
	}
	if _, err := u.Parse("Money"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
	for _, bad := range []string{"", "Iterable", "Set<Decimal", "Decimal>", "Decimal<String>"} {
		if _, err := u.Parse(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestIsInstanceOfCyclicBackingTerminates(t *testing.T) {
	a := NewNative("example.A", nil)
	b := NewNative("example.B", a)
	a.super = b
	c := NewNative("example.C", nil)

	ta, err := NewClass("A", a)
	if err != nil {
		t.Fatalf("new class: %v", err)
	}
	tc, err := NewClass("C", c)
	if err != nil {
		t.Fatalf("new class: %v", err)
	}
	if ta.IsInstanceOf(tc) {
		t.Fatalf("A must not be an instance of C")
	}
	if got := a.Chain(); len(got) != 2 {
		t.Fatalf("expected cyclic chain to stop after two backings, got %v", got)
	}
	if !a.AssignableTo(b) || !b.AssignableTo(a) {
		t.Fatalf("backings on a cycle should reach each other")
	}
}

func TestZeroTypeIsTotal(t *testing.T) {
	x, y := new(Type), new(Type)
	if x.IsInstanceOf(y) || x.NearlyEqual(y) {
		t.Fatalf("types without a backing must not match each other")
	}
	if !x.NearlyEqual(x) {
		t.Fatalf("NearlyEqual must stay reflexive")
	}
	dec := NewUniverse().Builtins().Decimal
	if x.IsInstanceOf(dec) || dec.IsInstanceOf(x) || dec.NearlyEqual(x) {
		t.Fatalf("a type without a backing must not match Decimal")
	}
}
