package suggest

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ParseStylesheet returns the class names used in selectors of src, in
// order of first appearance. Declarations, comments, strings, attribute
// selectors and at-rule preludes are ignored. Escapes such as `.md\:flex`
// or `.w-1\/2` are decoded.
//
// Selectors are read from the token stream rather than the rule grammar so
// nested rules inside a declaration block are seen too.
func ParseStylesheet(src string) []string {
	l := css.NewLexer(parse.NewInputString(src))
	var names []string
	var prelude []css.Token
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			return Normalize(names)
		case css.CommentToken:
		case css.LeftBraceToken:
			names = append(names, selectorClasses(prelude)...)
			prelude = prelude[:0]
		case css.RightBraceToken, css.SemicolonToken:
			prelude = prelude[:0]
		default:
			prelude = append(prelude, css.Token{TokenType: tt, Data: data})
		}
	}
}

// selectorClasses collects identifiers that directly follow a '.' delimiter.
func selectorClasses(toks []css.Token) []string {
	for len(toks) > 0 && toks[0].TokenType == css.WhitespaceToken {
		toks = toks[1:]
	}
	if len(toks) == 0 || toks[0].TokenType == css.AtKeywordToken {
		return nil
	}
	var out []string
	brackets := 0
	for i, t := range toks {
		switch t.TokenType {
		case css.LeftBracketToken:
			brackets++
		case css.RightBracketToken:
			if brackets > 0 {
				brackets--
			}
		case css.DelimToken:
			if brackets > 0 || string(t.Data) != "." || i+1 >= len(toks) {
				continue
			}
			if next := toks[i+1]; next.TokenType == css.IdentToken {
				if name := unescapeIdent(string(next.Data)); name != "" {
					out = append(out, name)
				}
			}
		}
	}
	return out
}

// unescapeIdent decodes CSS escapes in a raw identifier.
func unescapeIdent(raw string) string {
	if !strings.Contains(raw, `\`) {
		return raw
	}
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' {
			b.WriteByte(raw[i])
			continue
		}
		r, n := decodeEscape(raw[i+1:])
		if n == 0 {
			continue
		}
		b.WriteRune(r)
		i += n
	}
	return b.String()
}

// decodeEscape reads the part of an escape after the backslash.
func decodeEscape(s string) (rune, int) {
	if s == "" || s[0] == '\n' {
		return 0, 0
	}
	n := 0
	for n < len(s) && n < 6 && isHex(s[n]) {
		n++
	}
	if n == 0 {
		return utf8.DecodeRuneInString(s)
	}
	v, err := strconv.ParseUint(s[:n], 16, 32)
	if err != nil || v == 0 || v > utf8.MaxRune {
		v = utf8.RuneError
	}
	if n < len(s) && (s[n] == ' ' || s[n] == '\t' || s[n] == '\n') {
		n++
	}
	return rune(v), n
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
