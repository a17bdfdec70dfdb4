package state

// ToggleMode switches between CMD and INSERT modes and sets a brief notice.
func ToggleMode(s UIState) UIState {
    if s.Mode == CMD {
        s.Mode = INSERT
        s.Notice = "[INSERT]"
    } else {
        s.Mode = CMD
        s.Notice = "[CMD]"
    }
    return s
}

// ToggleView switches between Unified and SideBySide diff views.
func ToggleView(s UIState) UIState {
    if s.View == Unified {
        s.View = SideBySide
    } else {
        s.View = Unified
    }
    return s
}

// Resize updates width and sets a fallback notice if too narrow for side-by-side.
// Threshold heuristic: need at least 2*MinCol plus 3 chars for separator/gutters.
func Resize(s UIState, width int) UIState {
    s.Width = width
    threshold := 2*s.MinCol + 3
    if s.View == SideBySide && s.Width < threshold {
        s.View = Unified
        s.Notice = "Narrow width: using unified view"
    }
    return s
}

// Track copies the autocomplete snapshot into the state.
func Track(s UIState, phase string, caret int, token string, matches int) UIState {
    s.Phase = phase
    s.Caret = caret
    s.Token = token
    s.Matches = matches
    return s
}

// ClearTrack drops the autocomplete snapshot once no field is mounted.
func ClearTrack(s UIState) UIState {
    return Track(s, "", 0, "", 0)
}

// Notify sets the ephemeral notice.
func Notify(s UIState, msg string) UIState {
    s.Notice = msg
    return s
}
