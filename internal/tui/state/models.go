package state

// EditorMode represents the inspector's current input mode.
type EditorMode int

const (
    CMD EditorMode = iota // browsing blocks
    INSERT                // class field focused
)

// DiffMode controls how the review diff is rendered.
type DiffMode int

const (
    Unified DiffMode = iota
    SideBySide
)

// UIState holds cross-widget UI state used by the status bar, diff and help.
type UIState struct {
    // Mode & View
    Mode EditorMode
    View DiffMode

    // Layout
    Width  int
    MinCol int

    // Autocomplete snapshot
    Phase   string // controller state name
    Caret   int
    Token   string
    Matches int

    // Edits & notices
    Edited int // blocks whose class changed
    Notice string
}
