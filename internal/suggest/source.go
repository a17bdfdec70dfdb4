// Package suggest resolves the list of known class names that the
// autocomplete offers. Sources fetch; Cache makes sure a source is fetched
// at most once per process and that failures turn into an empty list.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"class-autocomplete/internal/config"
	"class-autocomplete/internal/httpx"
)

// Source fetches the candidate list. Implementations may fail; callers go
// through Cache, which swallows the error.
type Source interface {
	Fetch(ctx context.Context) ([]string, error)
}

// Func adapts a plain function to Source.
type Func func(ctx context.Context) ([]string, error)

func (f Func) Fetch(ctx context.Context) ([]string, error) { return f(ctx) }

// Static serves a fixed list.
type Static []string

func (s Static) Fetch(context.Context) ([]string, error) { return Normalize(s), nil }

// HTTP fetches a JSON array of strings.
type HTTP struct {
	URL    string
	Client *http.Client
}

func (s HTTP) Fetch(ctx context.Context) ([]string, error) {
	list, err := httpx.GetStrings(ctx, s.Client, s.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch suggestions: %w", err)
	}
	return Normalize(list), nil
}

// File reads candidates from disk. ".css" files contribute their class
// selectors, ".txt" files one or more names per line, anything else is
// decoded as a JSON array of strings.
type File struct {
	Path string
}

func (s File) Fetch(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read suggestions: %w", err)
	}
	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".css":
		return ParseStylesheet(string(data)), nil
	case ".txt":
		return Normalize(strings.Fields(string(data))), nil
	default:
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("parse suggestions %s: %w", s.Path, err)
		}
		return Normalize(list), nil
	}
}

// FromConfig picks the source described by c. A URL wins over a path, and a
// path wins over inline candidates. ok is false when nothing is configured.
func FromConfig(c config.SourceConfig) (src Source, ok bool) {
	switch {
	case strings.TrimSpace(c.URL) != "":
		return HTTP{URL: strings.TrimSpace(c.URL)}, true
	case strings.TrimSpace(c.Path) != "":
		return File{Path: config.ExpandPath(c.Path)}, true
	case len(c.Candidates) > 0:
		return Static(c.Candidates), true
	}
	return nil, false
}

// Normalize trims entries and drops empties and later duplicates. Order is
// preserved.
func Normalize(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
