package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"gridlens/internal/grid"
	"gridlens/internal/model"
	"gridlens/internal/overlay"
)

const (
	minColWidth = 6
	maxColWidth = 30
)

// applyColumns rebuilds the table header: derived labels plus sort and
// filter markers, and the selected-column cue for the keyboard flow.
func (m *Model) applyColumns() {
	if m.selCol >= len(m.columns) {
		m.selCol = 0
	}
	cols := make([]table.Column, len(m.columns))
	m.colWidths = make([]int, len(m.columns))
	for i, c := range m.columns {
		title := c.DisplayLabel()
		if m.sorting.Key == c.Key {
			if m.sorting.Dir == grid.Desc {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		if len(m.filters[c.Key]) > 0 {
			title += " ◈"
		}
		if i == m.selCol {
			title = "▸" + title
		}
		w := m.columnWidth(i, title)
		m.colWidths[i] = w
		cols[i] = table.Column{Title: title, Width: w}
	}
	m.tbl.SetColumns(cols)
	m.rebuildTable()
}

func (m *Model) columnWidth(idx int, title string) int {
	w := len([]rune(title)) + 1
	for _, row := range m.rows {
		cell, _ := cellValue(row[m.columns[idx].Key], m.cat.TruncateAt)
		if n := len([]rune(cell)); n > w {
			w = n
		}
	}
	if w < minColWidth {
		w = minColWidth
	}
	if w > maxColWidth {
		w = maxColWidth
	}
	return w
}

func (m *Model) rebuildTable() {
	rows := make([]table.Row, len(m.rows))
	for i, r := range m.rows {
		cells := make([]string, len(m.columns))
		for j, c := range m.columns {
			cell, _ := cellValue(r[c.Key], m.cat.TruncateAt)
			if c.Kind == model.KindNumber && j < len(m.colWidths) {
				cell = rightAlign(cell, m.colWidths[j])
			}
			cells[j] = cell
		}
		rows[i] = cells
	}
	cur := m.tbl.Cursor()
	m.tbl.SetRows(rows)
	if cur >= len(rows) {
		m.tbl.SetCursor(maxInt(0, len(rows)-1))
	}
}

// rightAlign pads numeric cells so digits line up under the header.
func rightAlign(s string, width int) string {
	n := width - 1 - len([]rune(s))
	if n <= 0 {
		return s
	}
	return strings.Repeat(" ", n) + s
}

// headerRect returns the screen rect of a column's header cell, the anchor
// for its filter dropdown.
func (m *Model) headerRect(idx int) overlay.Rect {
	x := 0
	for i := 0; i < idx && i < len(m.colWidths); i++ {
		x += m.colWidths[i] + 1
	}
	w := minColWidth
	if idx < len(m.colWidths) {
		w = m.colWidths[idx]
	}
	return overlay.Rect{X: x, Y: m.suggestLines(), W: w, H: 1}
}

// columnAt maps a click x-position on the header row to a column index.
func (m *Model) columnAt(x int) int {
	acc := 0
	for i, w := range m.colWidths {
		acc += w + 1
		if x < acc {
			return i
		}
	}
	return -1
}
