package tui

import (
    "fmt"
    "strings"

    "github.com/atotto/clipboard"
    tea "github.com/charmbracelet/bubbletea"
    "github.com/charmbracelet/lipgloss"

    "class-autocomplete/internal/autocomplete"
    "class-autocomplete/internal/blocks"
    "class-autocomplete/internal/config"
    "class-autocomplete/internal/match"
    "class-autocomplete/internal/tui/field"
    "class-autocomplete/internal/tui/state"
    "class-autocomplete/internal/tui/util"
    "class-autocomplete/internal/tui/widgets/diff"
    help "class-autocomplete/internal/tui/widgets/helpoverlay"
    "class-autocomplete/internal/tui/widgets/statusbar"
)

// Options configures the editor session.
type Options struct {
    Path   string // shown in the title
    Loader autocomplete.Loader
    Match  config.MatchConfig
    UI     config.UIConfig
    Logf   func(string, ...any)
}

// Run lets the user edit block classes. It returns the edited document and
// whether the user asked to save it.
func Run(doc *blocks.Document, opts Options) (*blocks.Document, bool, error) {
    m := newModel(doc, opts)
    p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
    if _, err := p.Run(); err != nil {
        return nil, false, err
    }
    m.leave()
    return m.doc, m.save, nil
}

// ===== Model =====

type mode string

const (
    modeList    mode = "list"    // choose block
    modeInspect mode = "inspect" // block inspector
    modeReview  mode = "review"  // diff before saving
)

var copyToClipboard = clipboard.WriteAll

type model struct {
    // data
    orig *blocks.Document
    doc  *blocks.Document
    opts Options

    // ui state
    cursor   int
    mode     mode
    ui       state.UIState
    ctl      *classControl
    showHelp bool
    save     bool
}

func newModel(doc *blocks.Document, opts Options) *model {
    if opts.Logf == nil {
        opts.Logf = func(string, ...any) {}
    }
    return &model{
        orig: blocks.Clone(doc),
        doc:  doc,
        opts: opts,
        mode: modeList,
        ui:   state.UIState{Mode: state.CMD, MinCol: 24},
    }
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) noColor() bool { return util.NoColor(m.opts.UI.NoColor) }

func (m *model) props() Props {
    return Props{
        Block:    &m.doc.Blocks[m.cursor],
        Selected: true,
        Width:    m.ui.Width,
        Top:      2,
        NoColor:  m.noColor(),
    }
}

func (m *model) newField(p Props) *field.Model {
    b := p.Block
    return field.New(b.ClassName(), field.Options{
        Label:    m.opts.UI.Label,
        Help:     m.opts.UI.Help,
        Loader:   m.opts.Loader,
        OnChange: func(v string) { b.SetClassName(v) },
        Matcher:  match.Matcher{CaseSensitive: m.opts.Match.CaseSensitive},
        MaxItems: m.opts.Match.Limit(),
        MinChars: m.opts.Match.MinChars,
        MaxRows:  m.opts.UI.MaxRows,
        Width:    m.ui.Width,
        NoColor:  m.noColor(),
        Logf:     m.opts.Logf,
    })
}

func (m *model) inspect() tea.Cmd {
    if len(m.doc.Blocks) == 0 {
        return nil
    }
    m.ctl = withClassAutocomplete(baseControl{}, m.newField)
    cmd := m.ctl.Mount(m.props())
    m.mode = modeInspect
    if m.ctl.Field() != nil {
        m.ui = state.ToggleMode(m.ui)
        m.opts.Logf("inspect %s", m.doc.Blocks[m.cursor].Label())
    }
    m.track()
    return cmd
}

// leave unmounts the inspector and tidies the edited value.
func (m *model) leave() {
    if m.ctl == nil {
        return
    }
    if f := m.ctl.Field(); f != nil {
        m.doc.Blocks[m.cursor].SetClassName(strings.TrimSpace(f.Value()))
        m.ui = state.ToggleMode(m.ui)
    }
    m.ctl.Unmount()
    m.ctl = nil
    m.mode = modeList
    m.ui = state.ClearTrack(m.ui)
    m.ui.Edited = len(blocks.Changes(m.orig, m.doc))
}

func (m *model) track() {
    f := m.field()
    if f == nil {
        m.ui = state.ClearTrack(m.ui)
        return
    }
    c := f.Controller()
    m.ui = state.Track(m.ui, c.State().String(), f.Input.Position(), c.Token().Text, len(c.Matches()))
}

func (m *model) field() *field.Model {
    if m.ctl == nil {
        return nil
    }
    return m.ctl.Field()
}

func (m *model) copy(s string) {
    if err := copyToClipboard(s); err != nil {
        m.ui = state.Notify(m.ui, "copy failed: "+err.Error())
        return
    }
    m.ui = state.Notify(m.ui, "copied")
}

// Update handles all TUI interactions.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
    switch msg := msg.(type) {
    case tea.WindowSizeMsg:
        m.ui = state.Resize(m.ui, msg.Width)
        return m, nil
    case field.LoadedMsg:
        if m.ctl == nil {
            return m, nil
        }
        cmd := m.ctl.Update(msg)
        m.track()
        return m, cmd
    case tea.MouseMsg:
        if m.mode != modeInspect {
            return m, nil
        }
        cmd := m.ctl.Update(msg)
        m.track()
        return m, cmd
    case tea.KeyMsg:
        return m.key(msg)
    }
    if m.ctl != nil {
        return m, m.ctl.Update(msg)
    }
    return m, nil
}

func (m *model) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
    k := msg.String()
    if k == "ctrl+c" {
        m.save = false
        return m, tea.Quit
    }
    if m.showHelp {
        m.showHelp = false
        return m, nil
    }
    m.ui = state.Notify(m.ui, "")

    switch m.mode {
    case modeList:
        switch k {
        case "q":
            return m, tea.Quit
        case "up", "k":
            if m.cursor > 0 {
                m.cursor--
            }
        case "down", "j":
            if m.cursor < len(m.doc.Blocks)-1 {
                m.cursor++
            }
        case "enter":
            return m, m.inspect()
        case "y":
            if len(m.doc.Blocks) > 0 {
                m.copy(m.doc.Blocks[m.cursor].ClassName())
            }
        case "r":
            m.mode = modeReview
        case "?":
            m.showHelp = true
        }

    case modeInspect:
        f := m.field()
        if f == nil {
            switch k {
            case "q":
                return m, tea.Quit
            case "esc", "b", "enter":
                m.leave()
            case "?":
                m.showHelp = true
            }
            return m, nil
        }
        switch {
        case k == "ctrl+y":
            m.copy(f.Value())
            return m, nil
        case k == "f1":
            m.showHelp = true
            return m, nil
        case (k == "esc" || k == "enter") && !f.HandlesKey(msg):
            m.leave()
            return m, nil
        }
        cmd := m.ctl.Update(msg)
        m.track()
        return m, cmd

    case modeReview:
        switch k {
        case "q":
            return m, tea.Quit
        case "b", "esc":
            m.mode = modeList
        case "v":
            m.ui = state.ToggleView(m.ui)
            m.ui = state.Resize(m.ui, m.ui.Width)
        case "s":
            m.save = true
            return m, tea.Quit
        case "?":
            m.showHelp = true
        }
    }
    return m, nil
}

func (m *model) View() string {
    if m.showHelp {
        return help.NewHelpOverlay().View(m.ui) + "\n" + m.status()
    }
    switch m.mode {
    case modeList:
        return m.viewList()
    case modeInspect:
        return m.viewInspect()
    case modeReview:
        return m.viewReview()
    default:
        return ""
    }
}

// ===== Views =====

var (
    titleStyle = lipgloss.NewStyle().Bold(true)
    selStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "205", Dark: "213"}).Bold(true)
    faintStyle = lipgloss.NewStyle().Faint(true)
)

func render(noColor bool, st lipgloss.Style, s string) string {
    if noColor {
        return s
    }
    return st.Render(s)
}

func (m *model) status() string {
    return render(m.noColor(), faintStyle, statusbar.NewStatusBar().View(m.ui))
}

func (m *model) viewList() string {
    nc := m.noColor()
    var b strings.Builder
    title := "Blocks"
    if m.opts.Path != "" {
        title += " — " + m.opts.Path
    }
    b.WriteString(render(nc, titleStyle, title) + "\n")
    if len(m.doc.Blocks) == 0 {
        b.WriteString("No blocks found.\n")
    }
    for i, blk := range m.doc.Blocks {
        cls := blk.ClassName()
        switch {
        case !blk.SupportsClassName():
            cls = "(no custom class)"
        case cls == "":
            cls = "-"
        }
        if i == m.cursor {
            b.WriteString(render(nc, selStyle, "> "+blk.Label()) + "  " + cls + "\n")
            continue
        }
        b.WriteString("  " + blk.Label() + "  " + render(nc, faintStyle, cls) + "\n")
    }
    b.WriteString("\nEnter: inspect   y: copy class   r: review   ?: help   q: quit\n")
    b.WriteString(m.status())
    return b.String()
}

func (m *model) viewInspect() string {
    p := m.props()
    var b strings.Builder
    b.WriteString(render(p.NoColor, titleStyle, "Inspector: "+p.Block.Label()) + "\n\n")
    b.WriteString(m.ctl.View(p) + "\n\n")
    if m.field() != nil {
        b.WriteString("↑/↓: highlight   Enter/Tab: insert   Esc: close/back   ctrl+y: copy   F1: help\n")
    } else {
        b.WriteString("Esc: back   q: quit\n")
    }
    b.WriteString(m.status())
    return b.String()
}

// reviewTexts renders one "label: class" line per changed block.
func (m *model) reviewTexts() (before, after string) {
    var bl, al []string
    for _, c := range blocks.Changes(m.orig, m.doc) {
        bl = append(bl, fmt.Sprintf("%s: %s", c.Label, c.Before))
        al = append(al, fmt.Sprintf("%s: %s", c.Label, c.After))
    }
    return strings.Join(bl, "\n"), strings.Join(al, "\n")
}

func (m *model) viewReview() string {
    var b strings.Builder
    b.WriteString(render(m.noColor(), titleStyle, "Review changes") + "\n\n")
    before, after := m.reviewTexts()
    b.WriteString(diff.NewDiffView(m.noColor()).View(m.ui, before, after))
    b.WriteString("\ns: save   v: unified/side-by-side   b: back   q: quit\n")
    b.WriteString(m.status())
    return b.String()
}
