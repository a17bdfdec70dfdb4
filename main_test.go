package main

import (
    "bytes"
    "encoding/json"
    "flag"
    "os"
    "path/filepath"
    "strings"
    "testing"

    cfg "class-autocomplete/internal/config"
)

func writeClasses(t *testing.T) string {
    t.Helper()
    path := filepath.Join(t.TempDir(), "classes.txt")
    if err := os.WriteFile(path, []byte("btn btn-primary\ncard\n"), 0644); err != nil {
        t.Fatalf("write classes: %v", err)
    }
    return path
}

func TestSuggestPlain(t *testing.T) {
    var out bytes.Buffer
    err := cmdSuggest([]string{"--source", writeClasses(t), "--no-color", "--value", "foo bt"}, &out)
    if err != nil {
        t.Fatalf("suggest: %v", err)
    }
    want := "token \"bt\" [4,6)\n  [bt]n\n  [bt]n-primary\n"
    if out.String() != want {
        t.Fatalf("got %q want %q", out.String(), want)
    }
}

func TestSuggestJSONAtCaret(t *testing.T) {
    var out bytes.Buffer
    err := cmdSuggest([]string{"--source", writeClasses(t), "--json", "--value", "car foo", "--caret", "1"}, &out)
    if err != nil {
        t.Fatalf("suggest: %v", err)
    }
    var res suggestOutput
    if err := json.Unmarshal(out.Bytes(), &res); err != nil {
        t.Fatalf("decode: %v\n%s", err, out.String())
    }
    if res.Token.Text != "car" || res.Token.Start != 0 || res.Token.End != 3 {
        t.Fatalf("unexpected token %+v", res.Token)
    }
    if res.State != "suggesting" || len(res.Matches) != 1 || res.Matches[0] != "card" {
        t.Fatalf("unexpected result %+v", res)
    }
}

func TestSuggestNoMatches(t *testing.T) {
    var out bytes.Buffer
    if err := cmdSuggest([]string{"--source", writeClasses(t), "--value", "zzz"}, &out); err != nil {
        t.Fatalf("suggest: %v", err)
    }
    if !strings.HasSuffix(out.String(), "no suggestions\n") {
        t.Fatalf("unexpected output %q", out.String())
    }
}

func TestSuggestWithoutSource(t *testing.T) {
    var out bytes.Buffer
    if err := cmdSuggest([]string{"--value", "x"}, &out); err == nil {
        t.Fatalf("expected an error without a source")
    }
}

func TestReplace(t *testing.T) {
    var out bytes.Buffer
    err := cmdReplace([]string{"--value", "foo bar foo", "--caret", "9", "--with", "baz", "--json"}, &out)
    if err != nil {
        t.Fatalf("replace: %v", err)
    }
    var res replaceOutput
    if err := json.Unmarshal(out.Bytes(), &res); err != nil {
        t.Fatalf("decode: %v", err)
    }
    if res.Value != "foo bar baz " || res.Caret != 12 {
        t.Fatalf("unexpected result %+v", res)
    }
}

func TestReplacePlainDefaultsToEnd(t *testing.T) {
    var out bytes.Buffer
    if err := cmdReplace([]string{"--value", "foo  ba", "--with", "bar"}, &out); err != nil {
        t.Fatalf("replace: %v", err)
    }
    if out.String() != "foo bar \ncaret 8\n" {
        t.Fatalf("unexpected output %q", out.String())
    }
}

func TestReplaceRejectsSpaces(t *testing.T) {
    var out bytes.Buffer
    if err := cmdReplace([]string{"--value", "x", "--with", "a b"}, &out); err == nil {
        t.Fatalf("expected error for multi-word class")
    }
}

func TestLoadSettingsOverrides(t *testing.T) {
    path := filepath.Join(t.TempDir(), "settings.yaml")
    conf := cfg.Default()
    conf.Source.Path = "theme.css"
    if err := cfg.Save(path, conf); err != nil {
        t.Fatalf("save: %v", err)
    }

    fs := flag.NewFlagSet("test", flag.ContinueOnError)
    common := addCommon(fs)
    if err := fs.Parse([]string{"--config", path, "--source", "https://example.test/classes", "--no-color"}); err != nil {
        t.Fatalf("parse: %v", err)
    }
    got, err := loadSettings(common)
    if err != nil {
        t.Fatalf("loadSettings: %v", err)
    }
    if got.Source.URL != "https://example.test/classes" || got.Source.Path != "" {
        t.Fatalf("expected --source URL to replace the path, got %+v", got.Source)
    }
    if !got.UI.NoColor {
        t.Fatalf("expected --no-color to stick")
    }
}

func TestLoadSettingsMissingExplicitConfig(t *testing.T) {
    fs := flag.NewFlagSet("test", flag.ContinueOnError)
    common := addCommon(fs)
    _ = fs.Parse([]string{"--config", filepath.Join(t.TempDir(), "missing.json")})
    if _, err := loadSettings(common); err == nil {
        t.Fatalf("expected error for a missing explicit config")
    }
}

func TestInitWritesConfig(t *testing.T) {
    path := filepath.Join(t.TempDir(), "ca.json")
    if err := cmdInit([]string{"--config", path, "--source", "site.css"}); err != nil {
        t.Fatalf("init: %v", err)
    }
    conf, err := cfg.Load(path)
    if err != nil {
        t.Fatalf("load: %v", err)
    }
    if conf.Source.Path != "site.css" || conf.Match.Limit() != cfg.DefaultMaxItems {
        t.Fatalf("unexpected config %+v", conf)
    }
}

func TestLoggerWritesFile(t *testing.T) {
    path := filepath.Join(t.TempDir(), "logs", "run.log")
    lf, err := openLogFile(path)
    if err != nil {
        t.Fatalf("openLogFile: %v", err)
    }
    newLogger("test", 2, 0, false, lf)("hello %d", 1)
    _ = lf.Close()
    data, _ := os.ReadFile(path)
    if !strings.Contains(string(data), "=== class-autocomplete") || !strings.Contains(string(data), "[test] hello 1\n") {
        t.Fatalf("unexpected log file: %q", string(data))
    }
}
