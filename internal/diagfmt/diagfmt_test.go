package diagfmt

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"dalc/internal/diag"
)

func sampleBag() *diag.Bag {
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SemaNoMatchingFunction,
		diag.Location{File: filepath.Join("units", "orders.dalc.toml"), Section: "call", Index: 2},
		"no matching function for call upper(Decimal)").
		WithNote("candidate: upper(String):String"))
	bag.Add(diag.New(diag.SevWarning, diag.IOCacheError,
		diag.Location{File: filepath.Join("units", "orders.dalc.toml")}, "cache write: disk full"))
	return bag
}

func TestPrettyPlain(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, sampleBag(), PrettyOpts{PathMode: PathModeBasename, ShowNotes: true}); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	want := "orders.dalc.toml:call[2]: ERROR SEM3005: no matching function for call upper(Decimal)\n" +
		"  note: candidate: upper(String):String\n" +
		"orders.dalc.toml: WARNING IO4002: cache write: disk full\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPrettyHidesNotes(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, sampleBag(), PrettyOpts{}); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	if strings.Contains(buf.String(), "note:") {
		t.Fatalf("notes should be hidden:\n%s", buf.String())
	}
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := Summary(&buf, sampleBag(), 3); err != nil {
		t.Fatalf("summary: %v", err)
	}
	if buf.String() != "checked 3 unit(s): 1 error(s), 1 warning(s)\n" {
		t.Fatalf("unexpected summary %q", buf.String())
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	opts := JSONOpts{PathMode: PathModeRelative, BaseDir: "units", IncludeNotes: true, Max: 1}
	if err := JSON(&buf, sampleBag(), opts); err != nil {
		t.Fatalf("json: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 2 || len(out.Diagnostics) != 1 {
		t.Fatalf("expected count 2 with one entry, got %+v", out)
	}
	d := out.Diagnostics[0]
	if d.Severity != "error" || d.Code != "SEM3005" || d.Location.File != "orders.dalc.toml" || d.Location.Index != 2 {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if len(d.Notes) != 1 || d.Notes[0] != "candidate: upper(String):String" {
		t.Fatalf("unexpected notes %v", d.Notes)
	}
}
