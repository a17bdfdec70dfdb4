package util

import (
    "class-autocomplete/internal/token"
    "class-autocomplete/internal/tui/state"
)

// ComputeTags splits a class value into chips, in value order.
//
// Rules:
// - The token under the caret is ACTIVE, even when it repeats another.
// - A token equal to an earlier one is DUPLICATE.
// - Everything else is PLAIN.
// A caret resting on whitespace activates nothing.
func ComputeTags(value string, caret int) []state.Tag {
    active := token.At(value, caret)
    seen := map[string]bool{}
    toks := token.All(value)
    tags := make([]state.Tag, 0, len(toks))
    for _, t := range toks {
        kind := state.PLAIN
        switch {
        case !active.Empty() && t.Start == active.Start:
            kind = state.ACTIVE
        case seen[t.Text]:
            kind = state.DUPLICATE
        }
        seen[t.Text] = true
        tags = append(tags, state.Tag{Kind: kind, Text: t.Text})
    }
    return tags
}

// Duplicates counts the DUPLICATE chips.
func Duplicates(tags []state.Tag) int {
    n := 0
    for _, t := range tags {
        if t.Kind == state.DUPLICATE {
            n++
        }
    }
    return n
}
