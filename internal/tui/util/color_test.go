package util

import "testing"

func TestNoColor(t *testing.T) {
    t.Setenv("NO_COLOR", "")
    if NoColor(false) {
        t.Fatalf("expected color with no flag and empty NO_COLOR")
    }
    if !NoColor(true) {
        t.Fatalf("explicit flag must disable color")
    }
    t.Setenv("NO_COLOR", "1")
    if !NoColor(false) {
        t.Fatalf("NO_COLOR must disable color")
    }
}

func TestDefaultPaletteDistinct(t *testing.T) {
    p := DefaultPalette()
    if p.Primary == "" || p.Warning == "" || p.Idle == "" {
        t.Fatalf("palette has empty color: %+v", p)
    }
    if p.Primary == p.Warning || p.Primary == p.Idle || p.Warning == p.Idle {
        t.Fatalf("chip states must be distinguishable: %+v", p)
    }
}
