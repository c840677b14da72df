package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"dalc/internal/diag"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	pathColor    = color.New(color.Bold)
	noteColor    = color.New(color.FgBlue)
)

// Pretty writes one block per diagnostic (bag.Sort() is expected first):
//
//	<file>:<section>[<index>]: <SEV> <CODE>: <message>
//	  note: <note>
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) error {
	for _, d := range bag.Items() {
		loc := d.Primary
		loc.File = formatPath(loc.File, opts.PathMode, opts.BaseDir)
		sev := severityColor(d.Severity)
		path := pathColor
		note := noteColor
		if !opts.Color {
			sev, path, note = plain(sev), plain(path), plain(note)
		}
		if _, err := fmt.Fprintf(w, "%s: %s %s: %s\n",
			path.Sprint(loc.String()), sev.Sprint(d.Severity.String()), d.Code.ID(), d.Message); err != nil {
			return err
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			if _, err := fmt.Fprintf(w, "  %s %s\n", note.Sprint("note:"), n.Msg); err != nil {
				return err
			}
		}
	}
	return nil
}

// Summary writes "N error(s), M warning(s)" for bag.
func Summary(w io.Writer, bag *diag.Bag, units int) error {
	var errs, warns int
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	_, err := fmt.Fprintf(w, "checked %d unit(s): %d error(s), %d warning(s)\n", units, errs, warns)
	return err
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

// plain returns a copy of c that never emits escape codes.
func plain(c *color.Color) *color.Color {
	cp := *c
	cp.DisableColor()
	return &cp
}
