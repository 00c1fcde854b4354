package suggest

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gridlens/internal/overlay"
)

var (
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("60"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220"))
	checkedMark   = "[x] "
	uncheckedMark = "[ ] "
)

// View renders the inline input line (the host lays out the trigger).
func (m Model) View() string {
	return m.Input.View()
}

// PopupView returns the floating box to composite over the host view, with
// its placement. ok is false when nothing should be drawn, including the
// missing-anchor case where Compute returned no placement.
func (m Model) PopupView() (string, overlay.Placement, bool) {
	if m.tagOpen && m.tagPlace != nil {
		return m.renderTags(), *m.tagPlace, true
	}
	if m.open && m.listPlace != nil && len(m.candidates) > 0 {
		return m.renderList(), *m.listPlace, true
	}
	return "", overlay.Placement{}, false
}

func (m Model) renderList() string {
	lines := make([]string, 0, len(m.candidates))
	width := m.listSize[0] - 2
	for i, e := range m.candidates {
		line := pad(entityLine(e), width)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderTags() string {
	lines := make([]string, 0, len(m.tags))
	width := m.tagSize[0] - 2
	for i, t := range m.tags {
		mark := uncheckedMark
		if m.activeTags[t] {
			mark = checkedMark
		}
		line := pad(mark+t, width)
		if i == m.tagCursor {
			line = selectedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}
