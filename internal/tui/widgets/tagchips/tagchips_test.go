package tagchips

import (
    "strings"
    "testing"

    "class-autocomplete/internal/tui/util"
)

func TestViewNoColor(t *testing.T) {
    out := View(util.ComputeTags("btn card btn", 5), true)
    if out != "[btn] <card> [btn (dup)]" {
        t.Fatalf("unexpected chips: %q", out)
    }
}

func TestViewTruncatesLongLabels(t *testing.T) {
    long := strings.Repeat("x", MaxLabel+10)
    out := View(util.ComputeTags(long, 0), true)
    if !strings.HasSuffix(out, "…>") {
        t.Fatalf("expected truncated label, got %q", out)
    }
}

func TestViewEmpty(t *testing.T) {
    if View(nil, true) != "" {
        t.Fatalf("expected empty output")
    }
}
