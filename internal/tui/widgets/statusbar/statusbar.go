package statusbar

import (
    "fmt"
    "strings"

    "class-autocomplete/internal/tui/state"
)

type StatusBar struct{}

func NewStatusBar() StatusBar { return StatusBar{} }

// View composes a concise status line reflecting key UI state.
func (StatusBar) View(s state.UIState) string {
    mode := "[CMD]"
    if s.Mode == state.INSERT {
        mode = "[INSERT]"
    }
    parts := []string{mode}
    if s.Phase != "" {
        parts = append(parts,
            s.Phase,
            fmt.Sprintf("caret:%d", s.Caret),
            fmt.Sprintf("token:%q", s.Token),
            fmt.Sprintf("matches:%d", s.Matches),
        )
    }
    if s.Edited > 0 {
        parts = append(parts, fmt.Sprintf("edited:%d", s.Edited))
    }
    if s.Notice != "" {
        parts = append(parts, s.Notice)
    }
    return strings.Join(parts, "  ")
}
