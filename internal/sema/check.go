package sema

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"dalc/internal/diag"
	"dalc/internal/symbols"
	"dalc/internal/trace"
)

// Resolution records which signature a call site bound to.
type Resolution struct {
	Call    Call
	Target  *symbols.FunctionSignature
	Builtin bool
}

// Result stores what a check of one unit produced.
type Result struct {
	Unit       string
	Declared   []*symbols.FunctionSignature
	Rejected   int
	Resolved   []Resolution
	Unresolved int
}

// Check registers the declarations of unit in reg and resolves its calls.
// reg is cleared first so one registry can serve many units in sequence.
// A rejected declaration is reported and skipped; later declarations and
// calls are still processed. Check returns ctx.Err() if ctx is cancelled
// between entries.
func Check(ctx context.Context, reg *symbols.Registry, unit *Unit, reporter diag.Reporter) (*Result, error) {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	tracer := trace.FromContext(ctx)
	parent := trace.ParentFrom(ctx)

	reg.Clear()
	res := &Result{Unit: unit.Name}

	for _, d := range unit.Decls {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		loc := diag.Location{File: unit.Path, Section: SectionFunction, Index: d.Index}
		if err := reg.SetUserFunction(d.Sig); err != nil {
			res.Rejected++
			reportRegistration(reporter, loc, err)
			trace.Point(tracer, trace.ScopeDecl, "reject", d.Sig.DetailString(), parent)
			continue
		}
		res.Declared = append(res.Declared, d.Sig)
		trace.Point(tracer, trace.ScopeDecl, "declare", d.Sig.DetailString(), parent)
	}

	for _, c := range unit.Calls {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		target := reg.GetCallable(c.Name, c.Args)
		if target == nil {
			res.Unresolved++
			reportUnresolved(reporter, reg, unit.Path, c)
			trace.Point(tracer, trace.ScopeDecl, "unresolved", c.Key(), parent)
			continue
		}
		builtin := !reg.IsUserFunction(target)
		res.Resolved = append(res.Resolved, Resolution{Call: c, Target: target, Builtin: builtin})
		trace.Point(tracer, trace.ScopeDecl, "resolve", c.Key()+" -> "+target.DetailString()+" builtin="+strconv.FormatBool(builtin), parent)
	}
	return res, nil
}

func reportRegistration(reporter diag.Reporter, loc diag.Location, err error) {
	var regErr *symbols.RegistrationError
	if !errors.As(err, &regErr) {
		diag.ReportError(reporter, diag.SemaError, loc, err.Error()).Emit()
		return
	}
	switch regErr.Kind {
	case symbols.KeywordConflict:
		diag.ReportError(reporter, diag.SemaKeywordConflict, loc,
			fmt.Sprintf("cannot declare %s: %q is a reserved keyword", regErr.Detail, regErr.Name)).Emit()
	case symbols.DuplicateFunction:
		diag.ReportError(reporter, diag.SemaDuplicateFunction, loc,
			fmt.Sprintf("function %s is already declared", regErr.Detail)).Emit()
	default:
		diag.ReportError(reporter, diag.SemaInvalidFunctionName, loc, regErr.Error()).Emit()
	}
}

func reportUnresolved(reporter diag.Reporter, reg *symbols.Registry, file string, c Call) {
	loc := diag.Location{File: file, Section: SectionCall, Index: c.Index}
	overloads := reg.Overloads(c.Name)
	if len(overloads) == 0 {
		diag.ReportError(reporter, diag.SemaUnknownFunction, loc,
			fmt.Sprintf("unknown function %q in call %s", c.Name, c.Key())).Emit()
		return
	}
	b := diag.ReportError(reporter, diag.SemaNoMatchingFunction, loc,
		fmt.Sprintf("no matching function for call %s", c.Key()))
	for _, sig := range overloads {
		b.WithNote("candidate: " + sig.DetailString())
	}
	b.Emit()
}
