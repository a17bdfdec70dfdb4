// Copyright
// SPDX-License-Identifier: MIT
// class-autocomplete: token-aware class name suggestions for editor blocks, in a TUI or over HTTP
package main

import (
    "context"
    "encoding/json"
    "errors"
    "flag"
    "fmt"
    "io"
    "net/http"
    "os"
    "os/signal"
    "path/filepath"
    "strings"
    "sync"
    "syscall"
    "time"

    "github.com/charmbracelet/lipgloss"

    "class-autocomplete/internal/autocomplete"
    "class-autocomplete/internal/blocks"
    cfg "class-autocomplete/internal/config"
    "class-autocomplete/internal/match"
    "class-autocomplete/internal/ports"
    "class-autocomplete/internal/server"
    "class-autocomplete/internal/suggest"
    "class-autocomplete/internal/token"
    appTUI "class-autocomplete/internal/tui"
)

const Version = "0.3.0"

const (
    defaultConfig = "class-autocomplete.json"
    defaultBlocks = "blocks.json"
    portTries     = 10
)

/* ---------- CLI ---------- */

func main() {
    if len(os.Args) < 2 {
        usage()
        return
    }
    var err error
    switch os.Args[1] {
    case "help", "-h", "--help":
        if len(os.Args) > 2 {
            helpTopic(os.Args[2])
        } else {
            usage()
        }
    case "version", "--version":
        fmt.Println("class-autocomplete", Version)
    case "init":
        err = cmdInit(os.Args[2:])
    case "edit":
        err = cmdEdit(os.Args[2:])
    case "suggest":
        err = cmdSuggest(os.Args[2:], os.Stdout)
    case "replace":
        err = cmdReplace(os.Args[2:], os.Stdout)
    case "serve":
        err = cmdServe(os.Args[2:])
    default:
        usage()
    }
    if err != nil {
        fmt.Fprintln(os.Stderr, "error:", err)
        os.Exit(1)
    }
}

func usage() {
    fmt.Print(`class-autocomplete ` + Version + `
Suggests class names for the space-separated token under the caret and replaces just that token.
USAGE
  class-autocomplete <command> [options]
COMMANDS
  init         Scaffold class-autocomplete.json
  edit         Edit the class attribute of blocks in a blocks.json document (TUI)
  suggest      Print the token under the caret and the matching classes
  replace      Print the value after replacing the token under the caret
  serve        Serve the class list as JSON over HTTP
  help         Show help (try: class-autocomplete help edit)
  version      Print version
NOTES
  • Classes come from --source (URL, .css, .json or .txt) or the config's "source" section.
  • Default output is minimal; use -v or -vv for detailed logs. Use --log-file to tee logs to a file.
`, "\n")
}

func helpTopic(name string) {
    switch name {
    case "edit":
        fmt.Print(`USAGE
  class-autocomplete edit [--blocks PATH] [--config PATH] [--source SRC] [--no-color]
                          [-v | -vv] [--log-file PATH]
DESCRIPTION
  Lists the blocks of a document. Enter opens the inspector; blocks that accept custom
  classes get a class field that suggests names for the token under the caret.
  Review shows a diff of changed classes; s saves the document in place.
OPTIONS
  --blocks PATH          Blocks document (default: blocks.json)
  --config PATH          Settings file, JSON or YAML (default: class-autocomplete.json if present)
  --source SRC           Class list: http(s) URL, or a .css/.json/.txt file
  --no-color             Plain output (NO_COLOR is honoured too)
  -v                     Verbose INFO logs
  -vv                    DEBUG logs
  --log-file PATH        Append logs to file (created if missing). The TUI only logs there.
`, "\n")
    case "suggest":
        fmt.Print(`USAGE
  class-autocomplete suggest --value TEXT [--caret N] [--config PATH] [--source SRC] [--json]
DESCRIPTION
  Finds the token around --caret (default: end of TEXT) and prints every class containing it,
  in source order, with the matching part marked.
`, "\n")
    case "replace":
        fmt.Print(`USAGE
  class-autocomplete replace --value TEXT --with CLASS [--caret N] [--json]
DESCRIPTION
  Replaces the token around --caret with CLASS followed by one space, collapses runs of
  whitespace, and prints the new value and the caret position after the inserted class.
`, "\n")
    case "serve":
        fmt.Print(`USAGE
  class-autocomplete serve [--addr HOST:PORT] [--path PATH] [--config PATH] [--source SRC]
                           [--next-free] [-v | -vv] [--log-file PATH]
DESCRIPTION
  Serves the class list as a JSON array of strings (default path
  /block-class-autocomplete/v1/suggestions) plus /healthz. The source is read once.
OPTIONS
  --addr HOST:PORT       Listen address (default: 127.0.0.1:8000)
  --path PATH            Route for the list
  --next-free            If the port is busy, try the next ones
`, "\n")
    default:
        usage()
    }
}

/* ---------- logging ---------- */

var logFileMu sync.Mutex

func openLogFile(path string) (*os.File, error) {
    if path == "" {
        return nil, nil
    }
    if dir := filepath.Dir(path); dir != "." && dir != "" {
        _ = os.MkdirAll(dir, 0o755)
    }
    f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
    if err != nil {
        return nil, err
    }
    _, _ = fmt.Fprintf(f, "=== class-autocomplete %s started at %s ===\n", Version, time.Now().Format(time.RFC3339))
    return f, nil
}

// newLogger returns a printf-style logger. Lines reach stdout only when
// verbosity >= level and console is set; the log file gets every line.
func newLogger(tag string, level, verbosity int, console bool, lf *os.File) func(string, ...any) {
    return func(format string, args ...any) {
        line := fmt.Sprintf("[%s] %s", tag, fmt.Sprintf(format, args...))
        if console && verbosity >= level {
            fmt.Println(line)
        }
        if lf != nil {
            logFileMu.Lock()
            _, _ = fmt.Fprintln(lf, line)
            logFileMu.Unlock()
        }
    }
}

type commonFlags struct {
    config  *string
    source  *string
    verbose *bool
    debug   *bool
    logPath *string
    noColor *bool
}

func addCommon(fs *flag.FlagSet) commonFlags {
    return commonFlags{
        config:  fs.String("config", "", "Settings file (JSON or YAML)"),
        source:  fs.String("source", "", "Class list: http(s) URL or .css/.json/.txt file"),
        verbose: fs.Bool("v", false, "Verbose logs (INFO)"),
        debug:   fs.Bool("vv", false, "Debug logs (DEBUG)"),
        logPath: fs.String("log-file", "", "Append logs to file (created if missing)"),
        noColor: fs.Bool("no-color", false, "Disable colors"),
    }
}

func (c commonFlags) verbosity() int {
    if *c.debug {
        return 2
    }
    if *c.verbose {
        return 1
    }
    return 0
}

/* ---------- config ---------- */

// loadSettings reads the config file (the default one only if present) and
// applies flag overrides.
func loadSettings(c commonFlags) (*cfg.Config, error) {
    path := *c.config
    explicit := path != ""
    if !explicit {
        path = defaultConfig
    }
    var conf *cfg.Config
    if _, err := os.Stat(path); err == nil || explicit {
        conf, err = cfg.Load(path)
        if err != nil {
            return nil, err
        }
    } else {
        conf = cfg.Default()
    }
    if s := strings.TrimSpace(*c.source); s != "" {
        conf.Source = sourceFromFlag(s)
    }
    if *c.noColor {
        conf.UI.NoColor = true
    }
    if err := conf.Validate(); err != nil {
        return nil, err
    }
    return conf, nil
}

func sourceFromFlag(s string) cfg.SourceConfig {
    if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
        return cfg.SourceConfig{URL: s}
    }
    return cfg.SourceConfig{Path: s}
}

func newCache(conf *cfg.Config, logf func(string, ...any)) (*suggest.Cache, error) {
    src, ok := suggest.FromConfig(conf.Source)
    if !ok {
        return nil, errors.New("no class source: pass --source or set source in the config")
    }
    return suggest.NewCache(src, logf), nil
}

/* ---------- commands ---------- */

func cmdInit(args []string) error {
    fs := flag.NewFlagSet("init", flag.ExitOnError)
    path := fs.String("config", defaultConfig, "Settings file to write (.json, .yaml)")
    source := fs.String("source", "classes.css", "Class list to reference")
    force := fs.Bool("force", false, "Overwrite an existing file")
    _ = fs.Parse(args)

    if _, err := os.Stat(*path); err == nil && !*force {
        fmt.Println(*path, "already exists; not overwriting")
        return nil
    }
    conf := cfg.Default()
    conf.Source = sourceFromFlag(*source)
    if err := cfg.Save(*path, conf); err != nil {
        return fmt.Errorf("write %s: %w", *path, err)
    }
    fmt.Println("Wrote", *path)
    return nil
}

func cmdEdit(args []string) error {
    fs := flag.NewFlagSet("edit", flag.ExitOnError)
    fs.Usage = func() { helpTopic("edit") }
    common := addCommon(fs)
    blocksPath := fs.String("blocks", defaultBlocks, "Blocks document")
    _ = fs.Parse(args)

    conf, err := loadSettings(common)
    if err != nil {
        return err
    }
    lf, err := openLogFile(*common.logPath)
    if err != nil {
        fmt.Println("Could not open log file:", err)
    }
    defer func() {
        if lf != nil {
            _ = lf.Close()
        }
    }()
    // stdout belongs to the TUI while it runs.
    logf := newLogger("edit", 1, common.verbosity(), false, lf)

    doc, err := blocks.Load(*blocksPath)
    if err != nil {
        return err
    }
    cache, err := newCache(conf, newLogger("source", 0, common.verbosity(), false, lf))
    if err != nil {
        return err
    }
    before := blocks.Clone(doc)
    edited, save, err := appTUI.Run(doc, appTUI.Options{
        Path:   *blocksPath,
        Loader: cache,
        Match:  conf.Match,
        UI:     conf.UI,
        Logf:   logf,
    })
    if err != nil {
        return fmt.Errorf("tui: %w", err)
    }
    changes := blocks.Changes(before, edited)
    if !save {
        if len(changes) > 0 {
            fmt.Printf("Discarded %d change(s).\n", len(changes))
        }
        return nil
    }
    if err := blocks.Save(*blocksPath, edited); err != nil {
        return fmt.Errorf("save blocks: %w", err)
    }
    fmt.Printf("Saved %d change(s) to %s\n", len(changes), *blocksPath)
    if common.verbosity() > 0 {
        for _, c := range changes {
            fmt.Printf("  %s: %q -> %q\n", c.Label, c.Before, c.After)
        }
    }
    return nil
}

// valueField is a fixed value with a caret, for one-shot commands.
type valueField struct {
    value string
    pos   int
}

func (f *valueField) Value() string     { return f.value }
func (f *valueField) Position() int     { return f.pos }
func (f *valueField) SetCursor(pos int) { f.pos = pos }

type suggestOutput struct {
    Value   string      `json:"value"`
    Caret   int         `json:"caret"`
    Token   token.Token `json:"token"`
    State   string      `json:"state"`
    Matches []string    `json:"matches"`
}

var markStyle = lipgloss.NewStyle().Underline(true).Bold(true)

func renderMarked(mk match.Marked, noColor bool) string {
    var b strings.Builder
    for _, seg := range mk.Segments() {
        switch {
        case !seg.Match:
            b.WriteString(seg.Text)
        case noColor:
            b.WriteString("[" + seg.Text + "]")
        default:
            b.WriteString(markStyle.Render(seg.Text))
        }
    }
    return b.String()
}

func cmdSuggest(args []string, out io.Writer) error {
    fs := flag.NewFlagSet("suggest", flag.ExitOnError)
    fs.Usage = func() { helpTopic("suggest") }
    common := addCommon(fs)
    value := fs.String("value", "", "Field value")
    caret := fs.Int("caret", -1, "Caret offset in characters (default: end)")
    asJSON := fs.Bool("json", false, "Print JSON")
    _ = fs.Parse(args)

    conf, err := loadSettings(common)
    if err != nil {
        return err
    }
    lf, err := openLogFile(*common.logPath)
    if err != nil {
        fmt.Println("Could not open log file:", err)
    }
    defer func() {
        if lf != nil {
            _ = lf.Close()
        }
    }()
    logf := newLogger("suggest", 2, common.verbosity(), !*asJSON, lf)
    cache, err := newCache(conf, newLogger("source", 0, common.verbosity(), !*asJSON, lf))
    if err != nil {
        return err
    }

    f := &valueField{value: *value, pos: *caret}
    if f.pos < 0 {
        f.pos = len([]rune(*value))
    }
    ctrl := autocomplete.New(f, func(string) {},
        autocomplete.WithMatcher(match.Matcher{CaseSensitive: conf.Match.CaseSensitive}),
        autocomplete.WithMaxItems(conf.Match.Limit()),
        autocomplete.WithMinChars(conf.Match.MinChars),
        autocomplete.WithLogger(logf),
    )
    ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
    defer cancel()
    ctrl.Resolve(ctx, cache)
    logf("source %s, %d candidates", cache.State(), len(ctrl.Candidates()))

    if *asJSON {
        res := suggestOutput{
            Value:   f.value,
            Caret:   f.pos,
            Token:   ctrl.Token(),
            State:   ctrl.State().String(),
            Matches: ctrl.Visible(),
        }
        if res.Matches == nil {
            res.Matches = []string{}
        }
        enc := json.NewEncoder(out)
        enc.SetIndent("", "  ")
        return enc.Encode(res)
    }

    tok := ctrl.Token()
    fmt.Fprintf(out, "token %q [%d,%d)\n", tok.Text, tok.Start, tok.End)
    if ctrl.State() != autocomplete.Suggesting {
        fmt.Fprintln(out, "no suggestions")
        return nil
    }
    noColor := conf.UI.NoColor || os.Getenv("NO_COLOR") != ""
    for _, mk := range ctrl.Marked() {
        fmt.Fprintln(out, "  "+renderMarked(mk, noColor))
    }
    if n, shown := len(ctrl.Matches()), len(ctrl.Visible()); n > shown {
        fmt.Fprintf(out, "  (+%d more)\n", n-shown)
    }
    return nil
}

type replaceOutput struct {
    Value string `json:"value"`
    Caret int    `json:"caret"`
}

func cmdReplace(args []string, out io.Writer) error {
    fs := flag.NewFlagSet("replace", flag.ExitOnError)
    fs.Usage = func() { helpTopic("replace") }
    value := fs.String("value", "", "Field value")
    caret := fs.Int("caret", -1, "Caret offset in characters (default: end)")
    with := fs.String("with", "", "Class to insert")
    asJSON := fs.Bool("json", false, "Print JSON")
    _ = fs.Parse(args)

    repl := strings.TrimSpace(*with)
    if repl == "" || strings.ContainsAny(repl, " \t\n") {
        return errors.New("--with must be a single class name")
    }
    pos := *caret
    if pos < 0 {
        pos = len([]rune(*value))
    }
    tok := token.At(*value, pos)
    next := token.Replace(*value, tok, repl)
    res := replaceOutput{Value: next, Caret: token.CaretAfter(next, repl)}
    if *asJSON {
        return json.NewEncoder(out).Encode(res)
    }
    fmt.Fprintf(out, "%s\ncaret %d\n", res.Value, res.Caret)
    return nil
}

func cmdServe(args []string) error {
    fs := flag.NewFlagSet("serve", flag.ExitOnError)
    fs.Usage = func() { helpTopic("serve") }
    common := addCommon(fs)
    addr := fs.String("addr", "", "Listen address (default from config)")
    path := fs.String("path", "", "Route for the class list (default from config)")
    nextFree := fs.Bool("next-free", false, "Try the next ports if the address is busy")
    _ = fs.Parse(args)

    conf, err := loadSettings(common)
    if err != nil {
        return err
    }
    if *addr != "" {
        conf.Server.Addr = *addr
    }
    if *path != "" {
        conf.Server.Path = *path
    }
    if err := conf.Validate(); err != nil {
        return err
    }
    lf, err := openLogFile(*common.logPath)
    if err != nil {
        fmt.Println("Could not open log file:", err)
    }
    defer func() {
        if lf != nil {
            _ = lf.Close()
        }
    }()
    verbosity := common.verbosity()
    cache, err := newCache(conf, newLogger("source", 0, verbosity, true, lf))
    if err != nil {
        return err
    }

    tries := 0
    if *nextFree {
        tries = portTries
    }
    ln, err := ports.Listen(conf.Server.Addr, tries)
    if err != nil {
        return err
    }
    srv := server.New(conf.Server.Addr, conf.Server.Path, cache, newLogger("http", 2, verbosity, true, lf))
    fmt.Printf("Serving http://%s%s\n", ln.Addr(), conf.Server.Path)

    // Resolve up front so a broken source shows at startup, not on first request.
    go func() {
        list := cache.Load(context.Background())
        newLogger("serve", 1, verbosity, true, lf)("%d classes (%s)", len(list), cache.State())
    }()

    errCh := make(chan error, 1)
    go func() { errCh <- srv.ServeListener(ln) }()

    sigCh := make(chan os.Signal, 1)
    signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
    select {
    case err := <-errCh:
        if err != nil && !errors.Is(err, http.ErrServerClosed) {
            return err
        }
        return nil
    case <-sigCh:
    }
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    if err := srv.Close(ctx); err != nil {
        return fmt.Errorf("shutdown: %w", err)
    }
    fmt.Println("Stopped.")
    return nil
}
