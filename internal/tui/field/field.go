// Package field is the class input used by the inspector: a bubbles text
// input with token-aware suggestions drawn underneath it.
package field

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"class-autocomplete/internal/autocomplete"
	"class-autocomplete/internal/match"
	"class-autocomplete/internal/tui/util"
)

// LoadedMsg delivers the candidate list to the mount that asked for it.
type LoadedMsg struct {
	Mount int64
	List  []string
}

var mounts atomic.Int64

type KeyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Commit  key.Binding
	Accept  key.Binding
	Dismiss key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next:    key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "next suggestion")),
		Prev:    key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "previous suggestion")),
		Commit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "insert highlighted")),
		Accept:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "insert highlighted or first")),
		Dismiss: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close suggestions")),
	}
}

type Options struct {
	Label       string
	Help        string
	Placeholder string

	Loader   autocomplete.Loader
	OnChange func(string)

	Matcher  match.Matcher
	MaxItems int // rendered suggestions; <= 0 means all
	MinChars int
	MaxRows  int // suggestion rows on screen
	Width    int
	NoColor  bool
	Logf     func(string, ...any)
}

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	helpStyle  = lipgloss.NewStyle().Faint(true)
	selStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "205", Dark: "213"}).Bold(true)
	markStyle  = lipgloss.NewStyle().Underline(true).Foreground(util.DefaultPalette().Primary)
	moreStyle  = lipgloss.NewStyle().Faint(true)
)

// Model is mounted once per inspector visit and must be closed when the
// inspector goes away. It is used through a pointer so the controller's
// view of the input stays valid.
type Model struct {
	Input *textinput.Model

	opts   Options
	keys   KeyMap
	mount  int64
	ctx    context.Context
	cancel context.CancelFunc

	disp *autocomplete.Dispatcher
	ctrl *autocomplete.Controller
	bind *autocomplete.Binding

	highlight int // index into Visible, -1 for none
	offset    int // first suggestion row on screen
	originX   int
	originY   int
}

func New(value string, opts Options) *Model {
	if opts.MaxRows <= 0 {
		opts.MaxRows = 8
	}
	if opts.Logf == nil {
		opts.Logf = func(string, ...any) {}
	}
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = opts.Placeholder
	in.SetValue(value)

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		Input:     &in,
		opts:      opts,
		keys:      DefaultKeyMap(),
		mount:     mounts.Add(1),
		ctx:       ctx,
		cancel:    cancel,
		disp:      autocomplete.NewDispatcher(),
		highlight: -1,
	}
	m.ctrl = autocomplete.New(m.Input, m.apply,
		autocomplete.WithMatcher(opts.Matcher),
		autocomplete.WithMaxItems(opts.MaxItems),
		autocomplete.WithMinChars(opts.MinChars),
		autocomplete.WithScroll(m.scrollTo),
		autocomplete.WithLogger(opts.Logf),
	)
	m.bind = m.ctrl.Bind(m.disp)
	return m
}

// Init starts the single candidate load for this mount.
func (m *Model) Init() tea.Cmd {
	if m.opts.Loader == nil {
		return nil
	}
	loader, ctx, id := m.opts.Loader, m.ctx, m.mount
	return func() tea.Msg {
		return LoadedMsg{Mount: id, List: loader.Load(ctx)}
	}
}

func (m *Model) Focus() tea.Cmd { return m.Input.Focus() }

func (m *Model) Blur() { m.Input.Blur() }

func (m *Model) Focused() bool { return m.Input.Focused() }

// Close unmounts the field. Loads still in flight are cancelled and their
// results dropped.
func (m *Model) Close() {
	m.cancel()
	m.bind.Release()
	m.highlight = -1
	m.offset = 0
}

func (m *Model) Value() string { return m.Input.Value() }

func (m *Model) Controller() *autocomplete.Controller { return m.ctrl }

// Suggesting reports whether the suggestion list is open.
func (m *Model) Suggesting() bool { return m.ctrl.State() == autocomplete.Suggesting }

// Highlighted returns the highlighted suggestion index, or -1.
func (m *Model) Highlighted() int { return m.highlight }

// Offset is the index of the first suggestion row on screen.
func (m *Model) Offset() int { return m.offset }

// SetOrigin records where the input line is drawn, for mouse hit testing.
func (m *Model) SetOrigin(x, y int) {
	m.originX, m.originY = x, y
}

func (m *Model) SetWidth(w int) { m.opts.Width = w }

// HandlesKey reports whether the field wants k rather than its host. Enter
// and Esc only belong to the field while suggestions are open.
func (m *Model) HandlesKey(k tea.KeyMsg) bool {
	switch {
	case key.Matches(k, m.keys.Dismiss):
		return m.Suggesting()
	case key.Matches(k, m.keys.Commit):
		return m.Suggesting() && m.highlight >= 0
	}
	return true
}

func (m *Model) apply(v string) {
	m.Input.SetValue(v)
	if m.opts.OnChange != nil {
		m.opts.OnChange(v)
	}
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case LoadedMsg:
		if msg.Mount != m.mount || m.ctrl.Closed() {
			return nil
		}
		m.opts.Logf("loaded %d candidates", len(msg.List))
		m.ctrl.SetCandidates(msg.List)
		m.resetList()
		return nil
	case tea.MouseMsg:
		return m.click(msg)
	case tea.KeyMsg:
		return m.key(msg)
	}
	var cmd tea.Cmd
	*m.Input, cmd = m.Input.Update(msg)
	return cmd
}

func (m *Model) key(k tea.KeyMsg) tea.Cmd {
	if m.Suggesting() {
		switch {
		case key.Matches(k, m.keys.Next):
			m.move(1)
			return nil
		case key.Matches(k, m.keys.Prev):
			m.move(-1)
			return nil
		case key.Matches(k, m.keys.Dismiss):
			m.ctrl.Dismiss()
			m.resetList()
			return nil
		case key.Matches(k, m.keys.Commit):
			if m.highlight >= 0 {
				m.commit(m.highlight)
			}
			return nil
		case key.Matches(k, m.keys.Accept):
			i := m.highlight
			if i < 0 {
				i = 0
			}
			m.commit(i)
			return nil
		}
	}

	before, pos := m.Input.Value(), m.Input.Position()
	var cmd tea.Cmd
	*m.Input, cmd = m.Input.Update(k)
	switch {
	case m.Input.Value() != before:
		if m.opts.OnChange != nil {
			m.opts.OnChange(m.Input.Value())
		}
		m.disp.Dispatch(autocomplete.Event{Kind: autocomplete.Input})
		m.resetList()
	default:
		m.disp.Dispatch(autocomplete.Event{Kind: autocomplete.KeyUp, Key: k.String()})
		if m.Input.Position() != pos {
			m.resetList()
		}
	}
	return cmd
}

// move walks the highlight, wrapping at both ends. From no highlight, down
// lands on the first entry and up on the last.
func (m *Model) move(delta int) {
	n := len(m.ctrl.Visible())
	if n == 0 {
		return
	}
	switch {
	case m.highlight < 0 && delta < 0:
		m.highlight = n - 1
	case m.highlight < 0:
		m.highlight = 0
	default:
		m.highlight = (m.highlight + delta + n) % n
	}
	m.disp.Dispatch(autocomplete.Event{Kind: autocomplete.Highlight, Text: m.ctrl.Visible()[m.highlight]})
}

func (m *Model) commit(i int) {
	vis := m.ctrl.Visible()
	if i < 0 || i >= len(vis) {
		return
	}
	m.disp.Dispatch(autocomplete.Event{Kind: autocomplete.Select, Text: vis[i]})
	m.resetList()
}

func (m *Model) resetList() {
	m.highlight = -1
	m.offset = 0
}

// scrollTo keeps entry i on screen, aligning it to the bottom edge when it
// falls below the window.
func (m *Model) scrollTo(i int) {
	rows := m.opts.MaxRows
	switch {
	case i < m.offset:
		m.offset = i
	case i >= m.offset+rows:
		m.offset = i - rows + 1
	}
}

func (m *Model) click(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	if msg.Y == m.originY {
		col := msg.X - m.originX - lipgloss.Width(m.Input.Prompt)
		if col < 0 {
			return nil
		}
		m.Input.SetCursor(columnToRune(m.Input.Value(), col))
		m.disp.Dispatch(autocomplete.Event{Kind: autocomplete.Click})
		m.resetList()
		return nil
	}
	row := msg.Y - m.originY - 1
	if m.Suggesting() && row >= 0 && row < m.opts.MaxRows {
		m.commit(m.offset + row)
	}
	return nil
}

// columnToRune maps a screen column inside s to a rune offset, counting
// wide characters as their display width.
func columnToRune(s string, col int) int {
	w := 0
	i := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > col {
			return i
		}
		w += rw
		i++
	}
	return i
}

// View draws the label, the input line and, while suggesting, the list.
// The input line is the first line of the returned string.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.Input.View())
	if m.Suggesting() {
		b.WriteString("\n")
		b.WriteString(m.list())
	}
	return b.String()
}

// Header is the label and help drawn above the input.
func (m *Model) Header() string {
	var lines []string
	if m.opts.Label != "" {
		lines = append(lines, m.style(labelStyle, m.opts.Label))
	}
	if m.opts.Help != "" {
		lines = append(lines, m.style(helpStyle, m.opts.Help))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) list() string {
	marked := m.ctrl.Marked()
	end := m.offset + m.opts.MaxRows
	if end > len(marked) {
		end = len(marked)
	}
	rows := make([]string, 0, end-m.offset+1)
	for i := m.offset; i < end; i++ {
		rows = append(rows, m.row(marked[i], i == m.highlight))
	}
	if len(marked) > m.opts.MaxRows {
		rows = append(rows, m.style(moreStyle, fmt.Sprintf("  %d-%d of %d", m.offset+1, end, len(marked))))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) row(mk match.Marked, selected bool) string {
	text := mk.Text
	if m.opts.Width > 4 && runewidth.StringWidth(text) > m.opts.Width-2 {
		text = runewidth.Truncate(text, m.opts.Width-2, "…")
		mk = match.Marked{Text: text, Spans: clipSpans(mk.Spans, len(strings.TrimSuffix(text, "…")))}
	}
	if selected {
		return m.style(selStyle, "> "+text)
	}
	var b strings.Builder
	b.WriteString("  ")
	for _, seg := range mk.Segments() {
		if seg.Match {
			b.WriteString(m.style(markStyle, seg.Text))
		} else {
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}

func clipSpans(spans []match.Span, n int) []match.Span {
	var out []match.Span
	for _, s := range spans {
		if s.End <= n {
			out = append(out, s)
		}
	}
	return out
}

func (m *Model) style(st lipgloss.Style, s string) string {
	if util.NoColor(m.opts.NoColor) {
		return s
	}
	return st.Render(s)
}
