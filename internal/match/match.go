// Package match decides which candidates are shown for a query and where the
// query sits inside each shown candidate.
package match

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Matcher filters by substring containment. The zero value ignores case,
// which is how the list widget in the browser build compared entries.
type Matcher struct {
	CaseSensitive bool
}

// Span is a half-open byte range inside a candidate.
type Span struct {
	Start int
	End   int
}

// Marked is a candidate plus the spans that matched the query.
type Marked struct {
	Text  string
	Spans []Span
}

// Filter reports whether candidate contains query. The query is trimmed and
// an empty query matches everything.
func (m Matcher) Filter(candidate, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	if m.CaseSensitive {
		return strings.Contains(candidate, query)
	}
	_, ok := m.indexFrom(candidate, query, 0)
	return ok
}

// Select returns the candidates that pass Filter, in their original order.
func (m Matcher) Select(candidates []string, query string) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if m.Filter(c, query) {
			out = append(out, c)
		}
	}
	return out
}

// Mark locates every non-overlapping occurrence of query in candidate.
func (m Matcher) Mark(candidate, query string) Marked {
	out := Marked{Text: candidate}
	query = strings.TrimSpace(query)
	if query == "" {
		return out
	}
	from := 0
	for from < len(candidate) {
		sp, ok := m.indexFrom(candidate, query, from)
		if !ok {
			break
		}
		out.Spans = append(out.Spans, sp)
		from = sp.End
	}
	return out
}

// Segments splits the marked text into alternating plain and matched parts,
// skipping empty parts. It is what a renderer walks to apply styles.
func (mk Marked) Segments() []Segment {
	var segs []Segment
	prev := 0
	for _, sp := range mk.Spans {
		if sp.Start > prev {
			segs = append(segs, Segment{Text: mk.Text[prev:sp.Start]})
		}
		segs = append(segs, Segment{Text: mk.Text[sp.Start:sp.End], Match: true})
		prev = sp.End
	}
	if prev < len(mk.Text) {
		segs = append(segs, Segment{Text: mk.Text[prev:]})
	}
	return segs
}

// Segment is one run of a Marked candidate.
type Segment struct {
	Text  string
	Match bool
}

func (m Matcher) indexFrom(s, query string, from int) (Span, bool) {
	if m.CaseSensitive {
		i := strings.Index(s[from:], query)
		if i < 0 {
			return Span{}, false
		}
		return Span{Start: from + i, End: from + i + len(query)}, true
	}
	for i := from; i < len(s); {
		if end, ok := foldPrefix(s, i, query); ok {
			return Span{Start: i, End: end}, true
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return Span{}, false
}

// foldPrefix reports whether s[i:] starts with query under simple case
// folding and returns the byte offset where the match ends in s.
func foldPrefix(s string, i int, query string) (int, bool) {
	j := i
	for _, qr := range query {
		if j >= len(s) {
			return 0, false
		}
		r, size := utf8.DecodeRuneInString(s[j:])
		if !equalFold(r, qr) {
			return 0, false
		}
		j += size
	}
	return j, true
}

func equalFold(a, b rune) bool {
	if a == b {
		return true
	}
	for f := unicode.SimpleFold(a); f != a; f = unicode.SimpleFold(f) {
		if f == b {
			return true
		}
	}
	return false
}
