package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gridlens/internal/overlay"
)

func (m *Model) View() string {
	base := m.renderBase()
	switch m.popup {
	case popupActions, popupFilter, popupPageSize, popupDownload:
		if m.popupPlace != nil {
			return overlay.Composite(base, m.renderMenu(), *m.popupPlace)
		}
	case popupInspector, popupLogs, popupHelp:
		dimmed := lipgloss.NewStyle().Faint(true).Render(base)
		return centerOverlay(dimmed, m.renderModal(), m.termWidth, m.termHeight)
	}
	if box, place, ok := m.sugg.PopupView(); ok {
		return overlay.Composite(base, box, place)
	}
	return base
}

// centerOverlay paints a centered modal over the dimmed base by
// line replacement.
func centerOverlay(base, modal string, w, h int) string {
	centered := lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, modal)
	bLines := strings.Split(base, "\n")
	oLines := strings.Split(centered, "\n")
	maxLen := len(bLines)
	if len(oLines) > maxLen {
		maxLen = len(oLines)
	}
	for len(bLines) < maxLen {
		bLines = append(bLines, "")
	}
	for len(oLines) < maxLen {
		oLines = append(oLines, "")
	}
	out := make([]string, maxLen)
	for i := 0; i < maxLen; i++ {
		if strings.TrimSpace(oLines[i]) != "" {
			out[i] = oLines[i]
		} else {
			out[i] = bLines[i]
		}
	}
	return strings.Join(out, "\n")
}

func (m *Model) renderBase() string {
	parts := make([]string, 0, 5)
	if m.suggestLines() > 0 {
		parts = append(parts, m.renderSuggestLine())
	}
	if len(m.rows) == 0 && !m.loading {
		parts = append(parts, m.renderEmptyState())
	} else {
		parts = append(parts, m.tbl.View())
	}
	parts = append(parts, m.renderPageBar(), m.renderBottom(), m.renderStatus())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderSuggestLine() string {
	line := m.sugg.View()
	tags := ""
	if m.sugg.HasTags() {
		n := len(m.sugg.ActiveTags())
		tags = fmt.Sprintf("[tags:%d]", n)
	}
	gap := m.termWidth - lipgloss.Width(line) - lipgloss.Width(tags)
	if gap < 1 {
		gap = 1
	}
	return line + strings.Repeat(" ", gap) + m.styles.Help.Render(tags)
}

// renderEmptyState replaces the table area with a distinct no-rows
// presentation rather than an empty table shell.
func (m *Model) renderEmptyState() string {
	msg := "No rows match the current filters"
	if !m.filters.Active() && m.criteria.Empty() {
		msg = "No rows in this dataset"
	}
	box := m.styles.Empty.Render(msg)
	h := m.tbl.Height() + 1
	return lipgloss.Place(m.termWidth, h, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) renderPageBar() string {
	p := m.pager
	left := fmt.Sprintf("Page %d/%d  (%d records)", p.Page, p.TotalPages, p.TotalRecords)
	right := fmt.Sprintf("[r] %d rows ▾", p.PageSize)
	gap := m.termWidth - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	return m.styles.PageBar.Render(left + strings.Repeat(" ", gap) + right)
}

func (m *Model) renderBottom() string {
	switch m.inlineMode {
	case inlineSearch:
		return fmt.Sprintf("search: %s    [enter]=apply [esc]=cancel", m.inline.View())
	case inlineExpr:
		return fmt.Sprintf("expr: %s    [enter]=apply [esc]=cancel", m.inline.View())
	}
	var active []string
	if m.criteria.Query != "" {
		q := m.criteria.Query
		if m.criteria.UseRegex {
			q = "/" + q + "/"
		}
		if m.criteria.Field != "" {
			active = append(active, m.criteria.Field+"~"+q)
		} else {
			active = append(active, "text~"+q)
		}
	}
	if m.criteria.Expr != "" {
		active = append(active, "expr: "+m.criteria.Expr)
	}
	for key, vals := range m.filters {
		if len(vals) > 0 {
			active = append(active, fmt.Sprintf("%s∈{%s}", key, strings.Join(vals, ",")))
		}
	}
	if len(active) == 0 {
		if m.termWidth > 0 {
			return strings.Repeat(" ", m.termWidth)
		}
		return ""
	}
	return m.styles.Help.Render("Filters: " + strings.Join(active, "  ") + "    [F]=clear")
}

func (m *Model) renderStatus() string {
	busy := " "
	if m.loading {
		busy = m.spin.View()
	}
	sorted := "none"
	if m.sorting.Active() {
		sorted = m.sorting.Key + ":" + string(m.sorting.Dir)
	}
	status := fmt.Sprintf("%s %s | row:%d/%d sort:%s | [?]=help | %s",
		busy, m.cat.Title, m.tbl.Cursor()+1, len(m.rows), sorted, m.lastMsg)
	return m.styles.Status.Render(status)
}

func (m *Model) renderModal() string {
	title := m.styles.PopupTitle.Render(m.modalTitle)
	hint := "[esc/enter]=close"
	boxW := m.termWidth - 6
	if boxW < 20 {
		boxW = 20
	}
	return m.styles.PopupBox.Width(boxW).Render(title + "\n" + m.modal.View() + "\n" + hint)
}

func helpBody() string {
	lines := []string{
		"Navigation:",
		"  [↑/↓]      move row        [←/→]  select column",
		"  [,/.]      prev/next page  [g/G]  first/last page",
		"",
		"Data:",
		"  [s]        sort selected column (asc/desc)",
		"  [S]        reset sort",
		"  [f]        filter selected column (multi-select)",
		"  [F]        clear filter",
		"  [/]        search selected column (text or /regex/)",
		"  [e]        expression filter (govaluate)",
		"",
		"Rows:",
		"  [enter]    row actions (drill-down)",
		"  [i]        inspect row (full values)",
		"",
		"Other:",
		"  [u]        entity suggestions   [tab]=tag filter",
		"  [r]        rows per page",
		"  [d]        download (CSV/NDJSON)",
		"  [L]        application logs",
		"  [q]        quit",
	}
	return strings.Join(lines, "\n")
}
