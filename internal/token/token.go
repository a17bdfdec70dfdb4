// Package token locates and replaces space-delimited tokens inside a single
// line of text. Offsets are rune offsets so they line up with the caret
// position reported by bubbles/textinput.
package token

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is a maximal run of non-space characters, or an empty run when the
// caret sits on a space boundary. Start and End are rune offsets into the
// value the token was computed from.
type Token struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// Empty reports whether the token has no text.
func (t Token) Empty() bool { return t.Text == "" }

// At returns the token surrounding caret. The scan goes left from caret-1 to
// the nearest space (exclusive) or the start of value, and right from caret
// to the nearest space or the end of value. Out of range carets are clamped.
func At(value string, caret int) Token {
	r := []rune(value)
	caret = clamp(caret, 0, len(r))

	start := 0
	for i := caret - 1; i >= 0; i-- {
		if r[i] == ' ' {
			start = i + 1
			break
		}
	}
	end := len(r)
	for i := caret; i < len(r); i++ {
		if r[i] == ' ' {
			end = i
			break
		}
	}
	return Token{Start: start, End: end, Text: string(r[start:end])}
}

// All returns every non-empty token of value in order.
func All(value string) []Token {
	var out []Token
	start := -1
	pos := 0
	for _, c := range value {
		if c == ' ' {
			if start >= 0 {
				out = append(out, Token{Start: start, End: pos})
			}
			start = -1
		} else if start < 0 {
			start = pos
		}
		pos++
	}
	if start >= 0 {
		out = append(out, Token{Start: start, End: pos})
	}
	if len(out) == 0 {
		return nil
	}
	r := []rune(value)
	for i := range out {
		out[i].Text = string(r[out[i].Start:out[i].End])
	}
	return out
}

// Replace swaps tok for replacement followed by a single space. Only the
// first occurrence of tok.Text at or after tok.Start is touched, so equal
// tokens earlier in value survive. When tok.Start lies beyond the end of
// value (the token is stale) the replacement is appended instead. Whitespace
// runs in the result are collapsed to one space.
func Replace(value string, tok Token, replacement string) string {
	r := []rune(value)
	start := max(tok.Start, 0)
	switch {
	case len(r) > start:
		tail := string(r[start:])
		value = string(r[:start]) + strings.Replace(tail, tok.Text, replacement+" ", 1)
	case len(r) == 0:
		value = replacement + " "
	default:
		value = value + " " + replacement + " "
	}
	return Collapse(value)
}

// Collapse folds every run of whitespace into a single space. It is
// idempotent.
func Collapse(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, c := range s {
		if unicode.IsSpace(c) {
			if !inSpace {
				b.WriteByte(' ')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(c)
	}
	return b.String()
}

// CaretAfter returns the caret offset one past the first occurrence of
// inserted in value plus its trailing space, clamped to the value length.
// If inserted is missing the caret goes to the end.
func CaretAfter(value, inserted string) int {
	n := utf8.RuneCountInString(value)
	idx := strings.Index(value, inserted)
	if idx < 0 {
		return n
	}
	pos := utf8.RuneCountInString(value[:idx]) + utf8.RuneCountInString(inserted) + 1
	return clamp(pos, 0, n)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
