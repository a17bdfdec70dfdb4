package tui

import (
    "errors"
    "testing"

    tea "github.com/charmbracelet/bubbletea"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "class-autocomplete/internal/blocks"
    "class-autocomplete/internal/config"
    "class-autocomplete/internal/suggest"
    "class-autocomplete/internal/tui/state"
)

var keyTypes = map[string]tea.KeyType{
    "up":    tea.KeyUp,
    "down":  tea.KeyDown,
    "enter": tea.KeyEnter,
    "esc":   tea.KeyEsc,
}

func press(m *model, keys ...string) tea.Cmd {
    var cmd tea.Cmd
    for _, k := range keys {
        msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
        if t, ok := keyTypes[k]; ok {
            msg = tea.KeyMsg{Type: t}
        }
        _, cmd = m.Update(msg)
    }
    return cmd
}

func testModel() *model {
    no := false
    doc := &blocks.Document{Blocks: []blocks.Block{
        {ID: "p1", Name: "core/paragraph", Attributes: map[string]any{"className": "lead"}},
        {Name: "core/html", Supports: &blocks.Supports{CustomClassName: &no}},
    }}
    ui := config.Default().UI
    ui.NoColor = true
    return newModel(doc, Options{
        Loader: suggest.NewCache(suggest.Static{"btn", "btn-primary", "lead", "is-wide"}, nil),
        Match:  config.MatchConfig{MaxItems: 10},
        UI:     ui,
    })
}

// open inspects the selected block and delivers its candidates.
func open(t *testing.T, m *model) {
    t.Helper()
    press(m, "enter")
    require.Equal(t, modeInspect, m.mode)
    f := m.field()
    require.NotNil(t, f)
    m.Update(f.Init()())
}

func TestInspectCommitsClass(t *testing.T) {
    m := testModel()
    open(t, m)
    assert.Equal(t, state.INSERT, m.ui.Mode)
    assert.Equal(t, "suggesting", m.ui.Phase)
    assert.Equal(t, "lead", m.ui.Token)

    press(m, " ", "b", "t")
    assert.Equal(t, "lead bt", m.doc.Blocks[0].ClassName(), "edits reach the block as they happen")
    assert.Equal(t, 2, m.ui.Matches)

    press(m, "down", "enter")
    assert.Equal(t, "lead btn ", m.doc.Blocks[0].ClassName())
    assert.Equal(t, 9, m.ui.Caret)

    press(m, "esc")
    assert.Equal(t, modeInspect, m.mode, "first esc only closes suggestions")
    press(m, "esc")
    assert.Equal(t, modeList, m.mode)
    assert.Equal(t, state.CMD, m.ui.Mode)
    assert.Equal(t, "lead btn", m.doc.Blocks[0].ClassName())
    assert.Equal(t, 1, m.ui.Edited)
    assert.Nil(t, m.ctl)
}

func TestUnsupportedBlockKeepsBaseControl(t *testing.T) {
    m := testModel()
    press(m, "down", "enter")
    require.Equal(t, modeInspect, m.mode)
    assert.Nil(t, m.field())
    out := m.View()
    assert.Contains(t, out, "does not accept custom classes")
    assert.NotContains(t, out, config.DefaultLabel)

    press(m, "esc")
    assert.Equal(t, modeList, m.mode)
}

func TestUnselectedRendersBase(t *testing.T) {
    blk := &blocks.Block{Name: "core/group"}
    c := withClassAutocomplete(baseControl{}, nil)
    p := Props{Block: blk, Selected: false, NoColor: true}
    assert.Nil(t, c.Mount(p))
    assert.Nil(t, c.Field())
    assert.Equal(t, baseControl{}.View(p), c.View(p))
}

func TestClickPlacesCaret(t *testing.T) {
    m := testModel()
    open(t, m)
    m.View()
    // title, blank, two attribute lines, blank, label, help, then the input.
    m.Update(tea.MouseMsg{X: 3, Y: 7, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
    assert.Equal(t, 1, m.field().Input.Position())
    assert.Equal(t, 1, m.ui.Caret)
}

func TestLoadAfterLeavingIsDropped(t *testing.T) {
    m := testModel()
    press(m, "enter")
    f := m.field()
    require.NotNil(t, f)
    msg := f.Init()()
    press(m, "esc")
    require.Equal(t, modeList, m.mode)

    m.Update(msg)
    assert.Empty(t, f.Controller().Candidates())
    assert.Equal(t, "lead", m.doc.Blocks[0].ClassName())
}

func TestReviewAndSave(t *testing.T) {
    m := testModel()
    open(t, m)
    press(m, " ", "i", "s", "-", "w", "esc", "esc")
    require.Equal(t, modeList, m.mode)

    press(m, "r")
    require.Equal(t, modeReview, m.mode)
    out := m.View()
    assert.Contains(t, out, "- core/paragraph (p1): lead\n")
    assert.Contains(t, out, "+ core/paragraph (p1): lead is-w\n")

    cmd := press(m, "s")
    require.NotNil(t, cmd)
    _, quit := cmd().(tea.QuitMsg)
    assert.True(t, quit)
    assert.True(t, m.save)
}

func TestCopyClass(t *testing.T) {
    var got string
    orig := copyToClipboard
    t.Cleanup(func() { copyToClipboard = orig })
    copyToClipboard = func(s string) error { got = s; return nil }

    m := testModel()
    press(m, "y")
    assert.Equal(t, "lead", got)
    assert.Equal(t, "copied", m.ui.Notice)

    copyToClipboard = func(string) error { return errors.New("no clipboard") }
    press(m, "y")
    assert.Equal(t, "copy failed: no clipboard", m.ui.Notice)
}

func TestCtrlCQuitsWithoutSaving(t *testing.T) {
    m := testModel()
    _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
    require.NotNil(t, cmd)
    assert.False(t, m.save)
}

func TestHelpOverlay(t *testing.T) {
    m := testModel()
    press(m, "?")
    assert.Contains(t, m.View(), "Help (Mode: CMD)")
    press(m, "x")
    assert.NotContains(t, m.View(), "Help (Mode:")
}
