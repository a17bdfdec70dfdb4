package helpoverlay

import (
    "fmt"
    "strings"

    "class-autocomplete/internal/tui/state"
)

type HelpOverlay struct{}

func NewHelpOverlay() HelpOverlay { return HelpOverlay{} }

// View returns grouped keys help with the current mode indicated.
func (HelpOverlay) View(s state.UIState) string {
    mode := "CMD"
    if s.Mode == state.INSERT {
        mode = "INSERT"
    }
    sections := []struct{
        title string
        keys  []string
    }{
        {"Blocks", []string{"↑/↓: move", "Enter: inspect", "y: copy class", "r: review changes", "q: quit"}},
        {"Class field", []string{"type: edit classes", "←/→ Home/End or click: move caret", "Esc: close suggestions / back", "ctrl+y: copy class"}},
        {"Suggestions", []string{"↑/↓: highlight", "Enter: insert highlighted", "Tab: insert highlighted or first", "click: insert"}},
        {"Review", []string{"v: toggle unified/side-by-side", "s: save", "b/Esc: back"}},
    }
    var b strings.Builder
    fmt.Fprintf(&b, "Help (Mode: %s)\n", mode)
    for _, sec := range sections {
        fmt.Fprintf(&b, "\n%s:\n", sec.title)
        for _, k := range sec.keys {
            fmt.Fprintf(&b, "  %s\n", k)
        }
    }
    return b.String()
}
