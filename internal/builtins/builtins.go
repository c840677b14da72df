// Package builtins declares the functions every compilation unit can call
// without declaring them, and the reserved keywords.
//
// Load is the only entry point: the compiler calls it once at bootstrap and
// hands the resulting *symbols.BuiltinSet to every registry it creates.
package builtins

import (
	"fmt"

	"dalc/internal/symbols"
	"dalc/internal/types"
)

type entry struct {
	name   string
	result string // empty for no result
	params []string
	// reserved entries are declared for the language but not offered yet;
	// their providers yield nothing.
	reserved bool
}

// Order matters: overloads of one name resolve first-match in this order.
var entries = []entry{
	{name: "sum", result: "Decimal", params: []string{"Decimal", "Decimal"}},
	{name: "sum", result: "Decimal", params: []string{"Iterable<Decimal>"}},
	{name: "avg", result: "Decimal", params: []string{"Iterable<Decimal>"}},
	{name: "min", result: "Decimal", params: []string{"Decimal", "Decimal"}},
	{name: "min", result: "Decimal", params: []string{"Iterable<Decimal>"}},
	{name: "max", result: "Decimal", params: []string{"Decimal", "Decimal"}},
	{name: "max", result: "Decimal", params: []string{"Iterable<Decimal>"}},
	{name: "abs", result: "Decimal", params: []string{"Decimal"}},
	{name: "round", result: "Decimal", params: []string{"Decimal", "Decimal"}},
	{name: "range", result: "DecimalRange", params: []string{"Decimal", "Decimal"}},
	{name: "count", result: "Decimal", params: []string{"Iterable<Object>"}},
	{name: "size", result: "Decimal", params: []string{"Iterable<Object>"}},
	{name: "distinct", result: "Set<Object>", params: []string{"Iterable<Object>"}},
	{name: "contains", result: "Boolean", params: []string{"Iterable<Object>", "Object"}},
	{name: "concat", result: "String", params: []string{"String", "String"}},
	{name: "upper", result: "String", params: []string{"String"}},
	{name: "lower", result: "String", params: []string{"String"}},
	{name: "trim", result: "String", params: []string{"String"}},
	{name: "length", result: "Decimal", params: []string{"String"}},
	{name: "substring", result: "String", params: []string{"String", "Decimal", "Decimal"}},
	{name: "toString", result: "String", params: []string{"Object"}},
	{name: "isNull", result: "Boolean", params: []string{"Object"}},
	{name: "negate", result: "Boolean", params: []string{"Boolean"}},
	{name: "today", result: "Date"},
	{name: "year", result: "Decimal", params: []string{"Date"}},
	{name: "call", result: "Object", params: []string{"JavaAction"}},
	{name: "call", result: "Object", params: []string{"JavaAction", "Iterable<Object>"}},
	{name: "print", params: []string{"Object"}},
	{name: "parallel", result: "Iterable<Object>", params: []string{"Iterable<Object>"}, reserved: true},
}

// Providers builds the ordered provider list against u.
func Providers(u *types.Universe) ([]symbols.Provider, error) {
	providers := make([]symbols.Provider, 0, len(entries))
	for _, e := range entries {
		if e.reserved {
			providers = append(providers, symbols.ProviderFunc(func() (*symbols.FunctionSignature, bool) {
				return nil, false
			}))
			continue
		}
		sig, err := e.signature(u)
		if err != nil {
			return nil, fmt.Errorf("builtin %s: %w", e.name, err)
		}
		providers = append(providers, symbols.ProviderFunc(func() (*symbols.FunctionSignature, bool) {
			return sig, true
		}))
	}
	return providers, nil
}

func (e entry) signature(u *types.Universe) (*symbols.FunctionSignature, error) {
	var result *types.Type
	if e.result != "" {
		t, err := u.Parse(e.result)
		if err != nil {
			return nil, err
		}
		result = t
	}
	params := make([]*types.Type, 0, len(e.params))
	for _, p := range e.params {
		t, err := u.Parse(p)
		if err != nil {
			return nil, err
		}
		params = append(params, t)
	}
	return symbols.NewFunctionSignature(e.name, result, params...)
}

// Load builds the built-in set: every provider is consulted exactly once and
// the keyword list is attached.
func Load(u *types.Universe) (*symbols.BuiltinSet, error) {
	providers, err := Providers(u)
	if err != nil {
		return nil, err
	}
	set, err := symbols.NewBuiltinSet(providers, keywords)
	if err != nil {
		return nil, fmt.Errorf("load builtins: %w", err)
	}
	return set, nil
}
