package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestNopByDefault(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("expected Nop tracer")
	}
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("LevelOff must yield a disabled tracer, got %v, %v", tr, err)
	}
	span := Begin(tr, ScopeDriver, "check", 0)
	if span.End("") != 0 || span.ID() != 0 {
		t.Fatalf("disabled spans are inert")
	}
}

func TestStreamTextRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDetail, Output: &buf, Format: FormatText})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	root := Begin(tr, ScopeDriver, "check", 0)
	unit := Begin(tr, ScopeUnit, "unit:orders", root.ID()).WithExtra("calls", "3").WithExtra("decls", "2")
	Point(tr, ScopeDecl, "register", "f(Decimal)", unit.ID())
	unit.End("ok")
	root.End("")

	out := buf.String()
	if strings.Contains(out, "register") {
		t.Fatalf("decl events must be filtered at detail level:\n%s", out)
	}
	if !strings.Contains(out, "unit unit:orders (ok) {calls=3, decls=2}") {
		t.Fatalf("missing unit end event:\n%s", out)
	}
	if strings.Count(out, "\n") != 4 {
		t.Fatalf("expected 4 events:\n%s", out)
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeDecl, "resolve", "sum(Decimal,Decimal)", 7)
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if got["kind"] != "point" || got["scope"] != "decl" || got["detail"] != "sum(Decimal,Decimal)" {
		t.Fatalf("unexpected event %v", got)
	}
}

func TestParseLevel(t *testing.T) {
	if lvl, err := ParseLevel("DEBUG"); err != nil || lvl != LevelDebug {
		t.Fatalf("got %v, %v", lvl, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestParentContext(t *testing.T) {
	ctx := WithParent(context.Background(), 42)
	if ParentFrom(ctx) != 42 || ParentFrom(context.Background()) != 0 {
		t.Fatalf("parent propagation broken")
	}
}
