package util

import (
    "os"

    "github.com/charmbracelet/lipgloss"
)

// NoColor reports whether styling is off, either by flag or NO_COLOR.
func NoColor(explicit bool) bool {
    return explicit || os.Getenv("NO_COLOR") != ""
}

// Palette holds the colors for match marks and class chips.
type Palette struct {
    // Primary marks the matched part of a suggestion and the active chip.
    Primary lipgloss.Color
    // Warning flags a class listed twice.
    Warning lipgloss.Color
    // Idle is the background of ordinary chips.
    Idle lipgloss.Color
}

func DefaultPalette() Palette {
    return Palette{
        Primary: lipgloss.Color("#3D6DFF"),
        Warning: lipgloss.Color("#F0AD4E"),
        Idle:    lipgloss.Color("#5A5A5A"),
    }
}
