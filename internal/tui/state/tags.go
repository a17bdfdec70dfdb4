package state

// TagKind enumerates the kinds of class chips.
type TagKind int

const (
    PLAIN TagKind = iota
    ACTIVE    // token under the caret
    DUPLICATE // repeats an earlier token
)

// Tag is one class token rendered as a chip.
type Tag struct {
    Kind TagKind
    Text string
}
