package symbols

import (
	"errors"
	"sync"
	"testing"

	"dalc/internal/types"
)

type fixture struct {
	u        *types.Universe
	b        types.Builtins
	sumDec   *FunctionSignature
	builtins *BuiltinSet
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	u := types.NewUniverse()
	b := u.Builtins()
	sumDec := MustFunctionSignature("sum", b.Decimal, b.Decimal, b.Decimal)
	providers := []Provider{
		ProviderFunc(func() (*FunctionSignature, bool) { return sumDec, true }),
		ProviderFunc(func() (*FunctionSignature, bool) { return nil, false }),
		nil,
		ProviderFunc(func() (*FunctionSignature, bool) {
			return MustFunctionSignature("upper", b.String, b.String), true
		}),
	}
	set, err := NewBuiltinSet(providers, []string{"null", "proj", "prjection", "if"})
	if err != nil {
		t.Fatalf("builtin set: %v", err)
	}
	return fixture{u: u, b: b, sumDec: sumDec, builtins: set}
}

func TestBuiltinSetSkipsEmptyProviders(t *testing.T) {
	f := newFixture(t)
	if f.builtins.Len() != 2 {
		t.Fatalf("expected 2 builtins, got %d", f.builtins.Len())
	}
	if !f.builtins.IsKeyword("prjection") || f.builtins.IsKeyword("projection") {
		t.Fatalf("keywords must be stored literally")
	}
	if f.builtins.Fingerprint() == "" {
		t.Fatalf("fingerprint should be set")
	}
}

func TestBuiltinSetRejectsDuplicateProviders(t *testing.T) {
	b := types.NewUniverse().Builtins()
	p := ProviderFunc(func() (*FunctionSignature, bool) {
		return MustFunctionSignature("abs", b.Decimal, b.Decimal), true
	})
	_, err := NewBuiltinSet([]Provider{p, p}, nil)
	if !errors.Is(err, ErrDuplicateFunction) {
		t.Fatalf("expected ErrDuplicateFunction, got %v", err)
	}
}

func TestBuiltinFingerprintTracksContent(t *testing.T) {
	b := types.NewUniverse().Builtins()
	p := ProviderFunc(func() (*FunctionSignature, bool) {
		return MustFunctionSignature("abs", b.Decimal, b.Decimal), true
	})
	a, _ := NewBuiltinSet([]Provider{p}, []string{"null"})
	same, _ := NewBuiltinSet([]Provider{p}, []string{"null"})
	other, _ := NewBuiltinSet([]Provider{p}, []string{"null", "if"})
	if a.Fingerprint() != same.Fingerprint() {
		t.Fatalf("equal content must fingerprint equally")
	}
	if a.Fingerprint() == other.Fingerprint() {
		t.Fatalf("different keywords must change the fingerprint")
	}
}

func TestSetUserFunctionContains(t *testing.T) {
	f := newFixture(t)
	reg := NewRegistry(f.builtins)
	sig := MustFunctionSignature("total", f.b.Decimal, f.u.MustIterable(f.b.Decimal))
	if err := reg.SetUserFunction(sig); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !reg.Contains(sig) || !reg.IsUserFunction(sig) {
		t.Fatalf("user function should be visible")
	}
	if reg.IsBuiltinFunction(sig) {
		t.Fatalf("user function is not a builtin")
	}
	if got := reg.UserFunctions(); len(got) != 1 || got[0] != sig {
		t.Fatalf("unexpected user functions: %v", got)
	}
}

func TestSetUserFunctionKeywordConflict(t *testing.T) {
	f := newFixture(t)
	reg := NewRegistry(f.builtins)
	before := len(reg.UserFunctions())
	err := reg.SetUserFunction(MustFunctionSignature("null", nil))
	if !errors.Is(err, ErrKeywordConflict) {
		t.Fatalf("expected ErrKeywordConflict, got %v", err)
	}
	var regErr *RegistrationError
	if !errors.As(err, &regErr) || regErr.Name != "null" {
		t.Fatalf("error should name the keyword, got %v", err)
	}
	if len(reg.UserFunctions()) != before {
		t.Fatalf("user table changed on failure")
	}
}

func TestSetUserFunctionKeywordCheckedFirst(t *testing.T) {
	b := types.NewUniverse().Builtins()
	clash := MustFunctionSignature("if", nil, b.Boolean)
	set, err := NewBuiltinSet([]Provider{
		ProviderFunc(func() (*FunctionSignature, bool) { return clash, true }),
	}, []string{"if"})
	if err != nil {
		t.Fatalf("builtin set: %v", err)
	}
	reg := NewRegistry(set)
	if err := reg.SetUserFunction(MustFunctionSignature("if", nil, b.Boolean)); !errors.Is(err, ErrKeywordConflict) {
		t.Fatalf("keyword check must run before the duplicate check, got %v", err)
	}
}

func TestSetUserFunctionDuplicates(t *testing.T) {
	f := newFixture(t)
	reg := NewRegistry(f.builtins)

	err := reg.SetUserFunction(MustFunctionSignature("sum", f.b.String, f.b.Decimal, f.b.Decimal))
	if !errors.Is(err, ErrDuplicateFunction) {
		t.Fatalf("redefining a builtin should fail, got %v", err)
	}

	first := MustFunctionSignature("area", f.b.Decimal, f.b.Decimal)
	if err := reg.SetUserFunction(first); err != nil {
		t.Fatalf("set: %v", err)
	}
	err = reg.SetUserFunction(MustFunctionSignature("area", f.b.String, f.b.Decimal))
	var regErr *RegistrationError
	if !errors.As(err, &regErr) || regErr.Kind != DuplicateFunction || regErr.Detail != "area(Decimal):String" {
		t.Fatalf("expected DuplicateFunction with detail, got %v", err)
	}
	if got := reg.UserFunctions(); len(got) != 1 || got[0] != first {
		t.Fatalf("registry must retain exactly the first declaration, got %v", got)
	}
	if err := reg.SetUserFunction(nil); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("nil signature should be rejected, got %v", err)
	}
}

func TestGetCallableUserBeforeBuiltin(t *testing.T) {
	f := newFixture(t)
	reg := NewRegistry(f.builtins)
	userSum := MustFunctionSignature("sum", f.b.String, f.b.String, f.b.String)
	if err := reg.SetUserFunction(userSum); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := reg.GetCallable("sum", []*types.Type{f.b.Decimal, f.b.Decimal}); got != f.sumDec {
		t.Fatalf("expected builtin sum, got %v", got)
	}
	if got := reg.GetCallable("sum", []*types.Type{f.b.String, f.b.String}); got != userSum {
		t.Fatalf("expected user sum, got %v", got)
	}
	if !reg.HasCallable("sum", []*types.Type{f.b.DecimalRange, f.b.Decimal}) {
		t.Fatalf("subtype call should be callable")
	}
	if !reg.HasCallableSignature(userSum) {
		t.Fatalf("a declared signature is callable with its own parameters")
	}
	if over := reg.Overloads("sum"); len(over) != 2 || over[0] != userSum || over[1] != f.sumDec {
		t.Fatalf("unexpected overloads %v", over)
	}
}

func TestGetCallableUserShadowsMatchingBuiltin(t *testing.T) {
	f := newFixture(t)
	reg := NewRegistry(f.builtins)
	// Object accepts a Decimal too, so both tables could answer the call.
	userSum := MustFunctionSignature("sum", f.b.Object, f.b.Object, f.b.Decimal)
	if err := reg.SetUserFunction(userSum); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := reg.GetCallable("sum", []*types.Type{f.b.Decimal, f.b.Decimal}); got != userSum {
		t.Fatalf("user overload should win, got %v", got)
	}
}

func TestGetShadowsOnlyEqualSignature(t *testing.T) {
	f := newFixture(t)
	reg := NewRegistry(f.builtins)
	userUpper := MustFunctionSignature("upper", f.b.String, f.b.Decimal)
	if err := reg.SetUserFunction(userUpper); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := reg.Get(MustFunctionSignature("upper", nil, f.b.Decimal)); got != userUpper {
		t.Fatalf("expected user upper, got %v", got)
	}
	builtinUpper := reg.Get(MustFunctionSignature("upper", nil, f.b.String))
	if builtinUpper == nil || !reg.IsBuiltinFunction(builtinUpper) {
		t.Fatalf("builtin upper(String) must stay visible, got %v", builtinUpper)
	}
	if reg.Get(MustFunctionSignature("upper", nil, f.b.Boolean)) != nil {
		t.Fatalf("undeclared signature should miss")
	}
}

func TestGetCallableMisses(t *testing.T) {
	f := newFixture(t)
	reg := NewRegistry(f.builtins)
	if reg.GetCallable("sum", []*types.Type{f.b.Decimal}) != nil {
		t.Fatalf("arity mismatch must miss")
	}
	if reg.GetCallable("sum", []*types.Type{f.b.String, f.b.Boolean}) != nil {
		t.Fatalf("incompatible arguments must miss")
	}
	if reg.HasCallable("nothing", nil) {
		t.Fatalf("unknown name must miss")
	}
}

func TestClearKeepsBuiltins(t *testing.T) {
	f := newFixture(t)
	reg := NewRegistry(f.builtins)
	user := MustFunctionSignature("area", nil, f.b.Decimal)
	_ = reg.SetUserFunction(user)
	reg.Clear()
	if reg.IsUserFunction(user) || reg.Contains(user) {
		t.Fatalf("user function should be gone after Clear")
	}
	if !reg.IsBuiltinFunction(f.sumDec) {
		t.Fatalf("builtins must survive Clear")
	}
	if err := reg.SetUserFunction(user); err != nil {
		t.Fatalf("redeclare after clear: %v", err)
	}
}

func TestRegistriesShareBuiltinsConcurrently(t *testing.T) {
	f := newFixture(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reg := NewRegistry(f.builtins)
			for j := 0; j < 50; j++ {
				reg.Clear()
				if err := reg.SetUserFunction(MustFunctionSignature("local", nil, f.b.String)); err != nil {
					t.Errorf("set: %v", err)
					return
				}
				if reg.GetCallable("sum", []*types.Type{f.b.Decimal, f.b.Decimal}) != f.sumDec {
					t.Errorf("lost builtin sum")
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestNilBuiltinsBehaveEmpty(t *testing.T) {
	reg := NewRegistry(nil)
	b := types.NewUniverse().Builtins()
	sig := MustFunctionSignature("null", nil, b.Decimal)
	if err := reg.SetUserFunction(sig); err != nil {
		t.Fatalf("no keywords are reserved without builtins: %v", err)
	}
	if reg.Builtins().Len() != 0 {
		t.Fatalf("expected no builtins")
	}
}
