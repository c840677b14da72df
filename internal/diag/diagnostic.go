package diag

import "fmt"

// Location points at an entry of a compilation unit, e.g. the third
// [[function]] table of orders.dalc.toml. Index is zero-based; Section is
// empty for unit-level findings.
type Location struct {
	File    string
	Section string
	Index   int
}

func (l Location) String() string {
	if l.Section == "" {
		return l.File
	}
	return fmt.Sprintf("%s:%s[%d]", l.File, l.Section, l.Index)
}

type Note struct {
	Msg string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  Location
	Notes    []Note
}

func New(sev Severity, code Code, primary Location, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary Location, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Msg: msg})
	return d
}
