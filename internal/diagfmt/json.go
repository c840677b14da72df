package diagfmt

import (
	"encoding/json"
	"io"

	"dalc/internal/diag"
)

// LocationJSON is a diagnostic location in JSON output.
type LocationJSON struct {
	File    string `json:"file"`
	Section string `json:"section,omitempty"`
	Index   int    `json:"index"`
}

// DiagnosticJSON is one diagnostic in JSON output.
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Title    string       `json:"title"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []string     `json:"notes,omitempty"`
}

// DiagnosticsOutput is the root of JSON output.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// BuildDiagnosticsOutput converts bag into its JSON form. Count is the
// number of diagnostics in bag even when Max truncates the list.
func BuildDiagnosticsOutput(bag *diag.Bag, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, len(items)),
		Count:       len(items),
	}
	for i, d := range items {
		if opts.Max > 0 && i >= opts.Max {
			break
		}
		dj := DiagnosticJSON{
			Severity: d.Severity.Label(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Location: LocationJSON{
				File:    formatPath(d.Primary.File, opts.PathMode, opts.BaseDir),
				Section: d.Primary.Section,
				Index:   d.Primary.Index,
			},
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				dj.Notes = append(dj.Notes, n.Msg)
			}
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	return out
}

// JSON writes bag as indented JSON.
func JSON(w io.Writer, bag *diag.Bag, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, opts))
}
