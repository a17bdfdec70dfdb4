package diff

import (
    "strings"
    "testing"

    "class-autocomplete/internal/tui/state"
)

func TestUnifiedSnapshot(t *testing.T) {
    v := NewDiffView(true)
    s := state.UIState{View: state.Unified}
    out := v.View(s, "p1: btn\np2: lead", "p1: btn\np2: lead is-wide")
    if !strings.HasPrefix(out, "BEFORE vs AFTER (Unified)\n") {
        t.Fatalf("missing unified header")
    }
    if !strings.Contains(out, "  p1: btn\n") {
        t.Fatalf("expected unchanged line in output: %q", out)
    }
    if !strings.Contains(out, "- p2: lead\n") || !strings.Contains(out, "+ p2: lead is-wide\n") {
        t.Fatalf("expected +/- lines in unified output: %q", out)
    }
}

func TestSideBySideSnapshot(t *testing.T) {
    v := NewDiffView(true)
    s := state.UIState{View: state.SideBySide, Width: 60}
    out := v.View(s, "left", "right")
    if !strings.HasPrefix(out, "BEFORE │ AFTER\n") {
        t.Fatalf("missing sbs header")
    }
    if !strings.Contains(out, " │ ") {
        t.Fatalf("missing separator")
    }
    if !strings.Contains(out, "+ ") || !strings.Contains(out, "- ") {
        t.Fatalf("missing markers: %q", out)
    }
}

func TestNoChanges(t *testing.T) {
    if got := NewDiffView(true).View(state.UIState{}, "a", "a"); got != "No changes\n" {
        t.Fatalf("unexpected output %q", got)
    }
}
