package builtins

import (
	"errors"
	"testing"

	"dalc/internal/symbols"
	"dalc/internal/types"
)

func TestLoad(t *testing.T) {
	u := types.NewUniverse()
	set, err := Load(u)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	reserved := 0
	for _, e := range entries {
		if e.reserved {
			reserved++
		}
	}
	if set.Len() != len(entries)-reserved {
		t.Fatalf("expected %d builtins, got %d", len(entries)-reserved, set.Len())
	}
	if len(set.Overloads("parallel")) != 0 {
		t.Fatalf("reserved entries must not be registered")
	}
}

func TestKeywordsReserved(t *testing.T) {
	set, err := Load(types.NewUniverse())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, kw := range []string{"null", "proj", "prjection"} {
		if !set.IsKeyword(kw) {
			t.Fatalf("%q should be reserved", kw)
		}
	}
	if set.IsKeyword("projection") {
		t.Fatalf("projection is not a keyword")
	}
	for _, sig := range set.All() {
		if set.IsKeyword(sig.Name()) {
			t.Fatalf("builtin %s collides with a keyword", sig)
		}
	}
}

func TestSumResolution(t *testing.T) {
	u := types.NewUniverse()
	b := u.Builtins()
	set, err := Load(u)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	reg := symbols.NewRegistry(set)

	pair := reg.GetCallable("sum", []*types.Type{b.Decimal, b.DecimalRange})
	if pair == nil || pair.DetailString() != "sum(Decimal,Decimal):Decimal" {
		t.Fatalf("unexpected resolution %v", pair)
	}
	coll := reg.GetCallable("sum", []*types.Type{u.MustSet(b.DecimalRange)})
	if coll == nil || coll.DetailString() != "sum(Iterable<Decimal>):Decimal" {
		t.Fatalf("unexpected resolution %v", coll)
	}
	if reg.GetCallable("sum", []*types.Type{u.MustSet(b.String)}) != nil {
		t.Fatalf("Set<String> must not resolve to sum")
	}
}

func TestUserCannotRedefineBuiltin(t *testing.T) {
	u := types.NewUniverse()
	b := u.Builtins()
	set, err := Load(u)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	reg := symbols.NewRegistry(set)
	err = reg.SetUserFunction(symbols.MustFunctionSignature("upper", b.String, b.String))
	if !errors.Is(err, symbols.ErrDuplicateFunction) {
		t.Fatalf("expected ErrDuplicateFunction, got %v", err)
	}
	if err := reg.SetUserFunction(symbols.MustFunctionSignature("upper", b.String, b.Decimal)); err != nil {
		t.Fatalf("new overload should be accepted: %v", err)
	}
}

func TestKeywordsReturnsCopy(t *testing.T) {
	kw := Keywords()
	kw[0] = "changed"
	if Keywords()[0] != "null" {
		t.Fatalf("Keywords must return a copy")
	}
}
