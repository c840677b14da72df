package sema

import (
	"errors"
	"fmt"

	"dalc/internal/diag"
	"dalc/internal/project"
	"dalc/internal/symbols"
	"dalc/internal/types"
)

// Section names used in diagnostic locations.
const (
	SectionFunction = "function"
	SectionCall     = "call"
)

// Decl is a resolved function declaration. Index is the position of its
// [[function]] entry in the unit file.
type Decl struct {
	Sig   *symbols.FunctionSignature
	Index int
}

// Call is a call site with resolved argument types.
type Call struct {
	Name  string
	Args  []*types.Type
	Index int
}

// Key formats the call like a prototype key.
func (c Call) Key() string { return symbols.CallKey(c.Name, c.Args) }

// Unit is a compilation unit ready for checking.
type Unit struct {
	Name  string
	Path  string
	Decls []Decl
	Calls []Call
}

// BuildUnit resolves the type expressions of src against u. Entries that
// mention unknown types or have no name are reported and left out.
func BuildUnit(u *types.Universe, src *project.UnitSource, reporter diag.Reporter) *Unit {
	unit := &Unit{Name: src.Name, Path: src.Path}
	for i, fn := range src.Functions {
		loc := diag.Location{File: src.Path, Section: SectionFunction, Index: i}
		params, ok := resolveTypes(u, fn.Params, loc, reporter)
		if !ok {
			continue
		}
		var result *types.Type
		if fn.Returns != "" {
			result, ok = resolveType(u, fn.Returns, loc, reporter)
			if !ok {
				continue
			}
		}
		sig, err := symbols.NewFunctionSignature(fn.Name, result, params...)
		if err != nil {
			code := diag.SemaError
			if errors.Is(err, symbols.ErrInvalidName) {
				code = diag.SemaInvalidFunctionName
			}
			diag.ReportError(reporter, code, loc, err.Error()).Emit()
			continue
		}
		unit.Decls = append(unit.Decls, Decl{Sig: sig, Index: i})
	}
	for i, c := range src.Calls {
		loc := diag.Location{File: src.Path, Section: SectionCall, Index: i}
		args, ok := resolveTypes(u, c.Args, loc, reporter)
		if !ok {
			continue
		}
		unit.Calls = append(unit.Calls, Call{Name: c.Name, Args: args, Index: i})
	}
	return unit
}

func resolveTypes(u *types.Universe, exprs []string, loc diag.Location, reporter diag.Reporter) ([]*types.Type, bool) {
	out := make([]*types.Type, 0, len(exprs))
	for _, expr := range exprs {
		t, ok := resolveType(u, expr, loc, reporter)
		if !ok {
			return nil, false
		}
		out = append(out, t)
	}
	return out, true
}

func resolveType(u *types.Universe, expr string, loc diag.Location, reporter diag.Reporter) (*types.Type, bool) {
	t, err := u.Parse(expr)
	if err != nil {
		diag.ReportError(reporter, diag.SemaUnknownType, loc, fmt.Sprintf("cannot resolve type %q", expr)).
			WithNote(err.Error()).
			Emit()
		return nil, false
	}
	return t, true
}
