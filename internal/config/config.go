package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultLabel      = "Additional CSS class(es)"
	DefaultHelp       = "Separate multiple classes with spaces."
	DefaultMaxItems   = 10
	DefaultMaxRows    = 8
	DefaultServerAddr = "127.0.0.1:8000"
	DefaultServerPath = "/block-class-autocomplete/v1/suggestions"
)

// Config is the on-disk settings file. It may be JSON or YAML; the format is
// picked from the file extension.
type Config struct {
	Source SourceConfig `json:"source" yaml:"source"`
	Match  MatchConfig  `json:"match" yaml:"match"`
	UI     UIConfig     `json:"ui" yaml:"ui"`
	Server ServerConfig `json:"server" yaml:"server"`
}

// SourceConfig says where the candidate class names come from. At most one
// of URL, Path or Candidates is used, in that order.
type SourceConfig struct {
	URL        string   `json:"url,omitempty" yaml:"url,omitempty"`   // JSON array of strings over HTTP
	Path       string   `json:"path,omitempty" yaml:"path,omitempty"` // .json, .css or .txt
	Candidates []string `json:"candidates,omitempty" yaml:"candidates,omitempty"`
}

type MatchConfig struct {
	CaseSensitive bool `json:"caseSensitive,omitempty" yaml:"caseSensitive,omitempty"`
	// MaxItems caps the rendered suggestions. 0 means the default, a
	// negative value means no cap.
	MaxItems int `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
	// MinChars is the minimum field length before suggestions open.
	MinChars int `json:"minChars,omitempty" yaml:"minChars,omitempty"`
}

type UIConfig struct {
	Label   string `json:"label,omitempty" yaml:"label,omitempty"`
	Help    string `json:"help,omitempty" yaml:"help,omitempty"`
	MaxRows int    `json:"maxRows,omitempty" yaml:"maxRows,omitempty"`
	NoColor bool   `json:"noColor,omitempty" yaml:"noColor,omitempty"`
}

type ServerConfig struct {
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Default returns a config with every default filled in and no source.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if isYAML(path) {
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parse config YAML: %w", err)
		}
	} else if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config JSON: %w", err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects settings that cannot work.
func (c *Config) Validate() error {
	if c.Match.MinChars < 0 {
		return fmt.Errorf("match.minChars must not be negative (got %d)", c.Match.MinChars)
	}
	if c.UI.MaxRows < 0 {
		return fmt.Errorf("ui.maxRows must not be negative (got %d)", c.UI.MaxRows)
	}
	if !strings.HasPrefix(c.Server.Path, "/") {
		return fmt.Errorf("server.path must start with / (got %q)", c.Server.Path)
	}
	if u := strings.TrimSpace(c.Source.URL); u != "" && !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return fmt.Errorf("source.url must be http(s) (got %q)", u)
	}
	return nil
}

// Limit resolves MaxItems: the default for 0 and 0 (no cap) for negatives.
func (m MatchConfig) Limit() int {
	switch {
	case m.MaxItems == 0:
		return DefaultMaxItems
	case m.MaxItems < 0:
		return 0
	}
	return m.MaxItems
}

func (c *Config) applyDefaults() {
	if c.UI.Label == "" {
		c.UI.Label = DefaultLabel
	}
	if c.UI.Help == "" {
		c.UI.Help = DefaultHelp
	}
	if c.UI.MaxRows == 0 {
		c.UI.MaxRows = DefaultMaxRows
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	if c.Server.Path == "" {
		c.Server.Path = DefaultServerPath
	}
}

// ExpandPath resolves ~/ and environment variables in p.
func ExpandPath(p string) string {
	p = strings.TrimSpace(p)
	if strings.HasPrefix(p, "~/") {
		if h, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(h, p[2:])
		}
	}
	return os.ExpandEnv(p)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
