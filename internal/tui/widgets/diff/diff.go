package diff

import (
    "strings"

    "github.com/charmbracelet/lipgloss"
    "github.com/mattn/go-runewidth"
    dmp "github.com/sergi/go-diff/diffmatchpatch"

    "class-autocomplete/internal/tui/state"
)

var (
    delLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
    addLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"})
    delChar = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"}).Underline(true)
    addChar = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"}).Underline(true)
    faint   = lipgloss.NewStyle().Faint(true)
)

type DiffView struct {
    NoColor bool
}

func NewDiffView(noColor bool) DiffView { return DiffView{NoColor: noColor} }

// View renders before and after with line and character highlights. Lines
// are compared pairwise, so callers should pass texts with one line per
// entry in the same order.
func (v DiffView) View(s state.UIState, before, after string) string {
    if before == after {
        return "No changes\n"
    }
    if s.View == state.SideBySide {
        return v.sideBySide(before, after, s)
    }
    return v.unified(before, after)
}

func (v DiffView) render(st lipgloss.Style, text string) string {
    if v.NoColor || text == "" {
        return text
    }
    return st.Render(text)
}

func charDiffs(before, after string) []dmp.Diff {
    d := dmp.New()
    diffs := d.DiffMain(before, after, false)
    return d.DiffCleanupSemantic(diffs)
}

func (v DiffView) unified(before, after string) string {
    var b strings.Builder
    b.WriteString("BEFORE vs AFTER (Unified)\n")
    bLines := strings.Split(before, "\n")
    aLines := strings.Split(after, "\n")
    max := len(bLines)
    if len(aLines) > max {
        max = len(aLines)
    }
    for i := 0; i < max; i++ {
        var bl, al string
        if i < len(bLines) {
            bl = bLines[i]
        }
        if i < len(aLines) {
            al = aLines[i]
        }
        if bl == al {
            if strings.TrimSpace(bl) == "" {
                continue
            }
            b.WriteString("  " + v.render(faint, bl) + "\n")
            continue
        }
        diffs := charDiffs(bl, al)
        b.WriteString(v.render(delLine, "- "))
        for _, df := range diffs {
            switch df.Type {
            case dmp.DiffDelete:
                b.WriteString(v.render(delChar, df.Text))
            case dmp.DiffEqual:
                b.WriteString(v.render(delLine, df.Text))
            }
        }
        b.WriteString("\n")
        b.WriteString(v.render(addLine, "+ "))
        for _, df := range diffs {
            switch df.Type {
            case dmp.DiffInsert:
                b.WriteString(v.render(addChar, df.Text))
            case dmp.DiffEqual:
                b.WriteString(v.render(addLine, df.Text))
            }
        }
        b.WriteString("\n")
    }
    return b.String()
}

func (v DiffView) sideBySide(before, after string, s state.UIState) string {
    const sep = " │ "
    var b strings.Builder
    b.WriteString("BEFORE │ AFTER\n")
    left := strings.Split(before, "\n")
    right := strings.Split(after, "\n")
    max := len(left)
    if len(right) > max {
        max = len(right)
    }
    colWidth := 40
    if s.Width > 0 {
        colWidth = (s.Width - len(sep)) / 2
        if colWidth < 10 {
            colWidth = 10
        }
    }
    for i := 0; i < max; i++ {
        var l, r string
        if i < len(left) {
            l = left[i]
        }
        if i < len(right) {
            r = right[i]
        }
        l = runewidth.Truncate(l, colWidth-2, "…")
        r = runewidth.Truncate(r, colWidth-2, "…")
        if l == r {
            b.WriteString(pad("  "+v.render(faint, l), colWidth) + sep + "  " + v.render(faint, r) + "\n")
            continue
        }
        var lb, rb strings.Builder
        for _, df := range charDiffs(l, r) {
            switch df.Type {
            case dmp.DiffDelete:
                lb.WriteString(v.render(delChar, df.Text))
            case dmp.DiffInsert:
                rb.WriteString(v.render(addChar, df.Text))
            case dmp.DiffEqual:
                lb.WriteString(v.render(delLine, df.Text))
                rb.WriteString(v.render(addLine, df.Text))
            }
        }
        b.WriteString(pad(v.render(delLine, "- ")+lb.String(), colWidth) + sep + v.render(addLine, "+ ") + rb.String() + "\n")
    }
    return b.String()
}

func pad(s string, width int) string {
    if w := lipgloss.Width(s); w < width {
        return s + strings.Repeat(" ", width-w)
    }
    return s
}
