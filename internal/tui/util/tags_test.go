package util

import (
    "testing"

    "class-autocomplete/internal/tui/state"
)

func kinds(tags []state.Tag) []state.TagKind {
    out := make([]state.TagKind, len(tags))
    for i, t := range tags {
        out[i] = t.Kind
    }
    return out
}

func TestActiveChipFollowsCaret(t *testing.T) {
    tags := ComputeTags("btn card lead", 6)
    if len(tags) != 3 {
        t.Fatalf("expected 3 tags, got %d", len(tags))
    }
    want := []state.TagKind{state.PLAIN, state.ACTIVE, state.PLAIN}
    for i, k := range kinds(tags) {
        if k != want[i] {
            t.Fatalf("tag %d: got kind %v want %v", i, k, want[i])
        }
    }
    if tags[1].Text != "card" {
        t.Fatalf("unexpected active text %q", tags[1].Text)
    }
}

func TestCaretOnWhitespaceActivatesNothing(t *testing.T) {
    for _, tg := range ComputeTags("btn  card", 4) {
        if tg.Kind == state.ACTIVE {
            t.Fatalf("did not expect an active chip, got %q", tg.Text)
        }
    }
}

func TestDuplicates(t *testing.T) {
    tags := ComputeTags("foo bar foo", 0)
    want := []state.TagKind{state.ACTIVE, state.PLAIN, state.DUPLICATE}
    for i, k := range kinds(tags) {
        if k != want[i] {
            t.Fatalf("tag %d: got kind %v want %v", i, k, want[i])
        }
    }
    if Duplicates(tags) != 1 {
        t.Fatalf("expected one duplicate")
    }
}

func TestActiveWinsOverDuplicate(t *testing.T) {
    tags := ComputeTags("foo bar foo", 11)
    if tags[2].Kind != state.ACTIVE {
        t.Fatalf("expected trailing foo to be active, got %v", tags[2].Kind)
    }
    if Duplicates(tags) != 0 {
        t.Fatalf("expected no duplicates when the repeat is active")
    }
}

func TestEmptyValue(t *testing.T) {
    if tags := ComputeTags("", 0); len(tags) != 0 {
        t.Fatalf("expected no tags, got %v", tags)
    }
}
