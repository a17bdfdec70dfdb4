package tui

import (
    "fmt"
    "sort"
    "strings"

    tea "github.com/charmbracelet/bubbletea"
    "github.com/charmbracelet/lipgloss"

    "class-autocomplete/internal/blocks"
    "class-autocomplete/internal/tui/field"
    "class-autocomplete/internal/tui/util"
    chips "class-autocomplete/internal/tui/widgets/tagchips"
)

// Props is what the inspector hands to a block control.
type Props struct {
    Block    *blocks.Block
    Selected bool
    Width    int
    Top      int // screen row the control is drawn from
    NoColor  bool
}

// Control is a block's inspector panel.
type Control interface {
    Mount(p Props) tea.Cmd
    Update(msg tea.Msg) tea.Cmd
    View(p Props) string
    Unmount()
}

// baseControl lists the block's attributes.
type baseControl struct{}

func (baseControl) Mount(Props) tea.Cmd { return nil }
func (baseControl) Update(tea.Msg) tea.Cmd { return nil }
func (baseControl) Unmount() {}

func (baseControl) View(p Props) string {
    var b strings.Builder
    b.WriteString(render(p.NoColor, faintStyle, "Attributes") + "\n")
    keys := make([]string, 0, len(p.Block.Attributes))
    for k := range p.Block.Attributes {
        keys = append(keys, k)
    }
    sort.Strings(keys)
    if len(keys) == 0 {
        b.WriteString("  (none)\n")
    }
    for _, k := range keys {
        fmt.Fprintf(&b, "  %s: %v\n", k, p.Block.Attributes[k])
    }
    if !p.Block.SupportsClassName() {
        b.WriteString(render(p.NoColor, faintStyle, "This block does not accept custom classes.") + "\n")
    }
    return strings.TrimSuffix(b.String(), "\n")
}

// classControl adds the class autocomplete field to base while the block
// is selected and accepts custom classes. Otherwise it is base unchanged.
type classControl struct {
    base     Control
    newField func(p Props) *field.Model
    field    *field.Model
}

func withClassAutocomplete(base Control, newField func(p Props) *field.Model) *classControl {
    return &classControl{base: base, newField: newField}
}

func (c *classControl) enabled(p Props) bool {
    return p.Selected && p.Block != nil && p.Block.SupportsClassName()
}

func (c *classControl) Mount(p Props) tea.Cmd {
    cmd := c.base.Mount(p)
    if !c.enabled(p) {
        return cmd
    }
    c.field = c.newField(p)
    return tea.Batch(cmd, c.field.Init(), c.field.Focus())
}

func (c *classControl) Update(msg tea.Msg) tea.Cmd {
    if c.field != nil {
        return c.field.Update(msg)
    }
    return c.base.Update(msg)
}

func (c *classControl) View(p Props) string {
    base := c.base.View(p)
    if !c.enabled(p) || c.field == nil {
        return base
    }
    above := base + "\n\n"
    if h := c.field.Header(); h != "" {
        above += h + "\n"
    }
    // Hit testing follows the last drawn layout.
    c.field.SetOrigin(0, p.Top+lipgloss.Height(above)-1)
    c.field.SetWidth(p.Width)

    out := above + c.field.View()
    tags := util.ComputeTags(c.field.Value(), c.field.Input.Position())
    if s := chips.View(tags, p.NoColor); s != "" {
        out += "\n\n" + s
    }
    return out
}

func (c *classControl) Unmount() {
    if c.field != nil {
        c.field.Close()
        c.field = nil
    }
    c.base.Unmount()
}

// Field returns the mounted class field, or nil.
func (c *classControl) Field() *field.Model { return c.field }
