package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJSONAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autocomplete.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"source":{"path":"classes.css"},"match":{"maxItems":5}}`), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "classes.css", c.Source.Path)
	assert.Equal(t, 5, c.Match.Limit())
	assert.Equal(t, DefaultLabel, c.UI.Label)
	assert.Equal(t, DefaultHelp, c.UI.Help)
	assert.Equal(t, DefaultMaxRows, c.UI.MaxRows)
	assert.Equal(t, DefaultServerPath, c.Server.Path)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autocomplete.yaml")
	doc := `
source:
  candidates: [btn, btn-primary]
match:
  caseSensitive: true
  maxItems: -1
ui:
  label: Classes
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"btn", "btn-primary"}, c.Source.Candidates)
	assert.True(t, c.Match.CaseSensitive)
	assert.Equal(t, 0, c.Match.Limit())
	assert.Equal(t, "Classes", c.UI.Label)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"bad-json.json":  `{`,
		"min-chars.json": `{"match":{"minChars":-1}}`,
		"path.json":      `{"server":{"path":"suggestions"}}`,
		"url.json":       `{"source":{"url":"ftp://example.com/list"}}`,
	}
	for name, body := range cases {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
		_, err := Load(path)
		assert.Error(t, err, name)
	}

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"out.json", "out.yml"} {
		path := filepath.Join(t.TempDir(), name)
		c := Default()
		c.Source.URL = "https://example.com/suggestions"
		c.Match.MinChars = 2
		require.NoError(t, Save(path, c))

		got, err := Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, c, got, name)
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("CLASS_DIR", "/tmp/classes")
	assert.Equal(t, "/tmp/classes/site.css", ExpandPath(" $CLASS_DIR/site.css "))
}
