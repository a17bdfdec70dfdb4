package tagchips

import (
    "fmt"
    "strings"

    "github.com/charmbracelet/lipgloss"
    "github.com/mattn/go-runewidth"

    "class-autocomplete/internal/tui/state"
    "class-autocomplete/internal/tui/util"
)

// MaxLabel is the widest chip label, in cells, before it is truncated.
const MaxLabel = 24

// View renders class chips in value order using colored chips when possible
// and ASCII fallbacks when color is disabled or not desired.
func View(tags []state.Tag, noColor bool) string {
    if len(tags) == 0 {
        return ""
    }
    noColor = util.NoColor(noColor)

    parts := make([]string, 0, len(tags))
    for _, t := range tags {
        parts = append(parts, renderChip(t, noColor))
    }
    return strings.Join(parts, " ")
}

func renderChip(t state.Tag, noColor bool) string {
    label := chipLabel(t)
    if noColor {
        if t.Kind == state.ACTIVE {
            return fmt.Sprintf("<%s>", label)
        }
        return fmt.Sprintf("[%s]", label)
    }
    return chipStyle(t).Render(label)
}

func chipLabel(t state.Tag) string {
    label := runewidth.Truncate(t.Text, MaxLabel, "…")
    if t.Kind == state.DUPLICATE {
        label += " (dup)"
    }
    return label
}

func chipStyle(t state.Tag) lipgloss.Style {
    p := util.DefaultPalette()
    base := lipgloss.NewStyle().Padding(0, 1).Bold(true)
    switch t.Kind {
    case state.ACTIVE:
        return base.Background(p.Primary).Foreground(lipgloss.Color("#FFFFFF"))
    case state.DUPLICATE:
        return base.Background(p.Warning).Foreground(lipgloss.Color("#111111"))
    default:
        return base.Background(p.Idle).Foreground(lipgloss.Color("#FFFFFF"))
    }
}
