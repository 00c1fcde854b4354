package ui

import (
	"fmt"
	"strings"

	"gridlens/internal/model"
	"gridlens/internal/overlay"
	"gridlens/internal/util/logx"
)

// openMenu places a floating menu against its anchor. When the anchor is
// gone (zero rect) no placement is computed and the menu simply does not
// open; opening any menu closes whichever one was open before.
func (m *Model) openMenu(kind popupKind, anchor overlay.Rect) {
	items := m.menuItems(kind)
	if len(items) == 0 {
		return
	}
	w, h := menuDims(items)
	place := overlay.Compute(anchor, w, h, m.termWidth, m.termHeight)
	if place == nil {
		logx.Warnf("ui: no placement for popup kind=%d", kind)
		m.closePopup()
		return
	}
	m.popup = kind
	m.popupPlace = place
	m.popupCursor = 0
}

func (m *Model) closePopup() {
	m.popup = popupNone
	m.popupPlace = nil
	m.popupCursor = 0
}

func (m *Model) menuItems(kind popupKind) []string {
	switch kind {
	case popupActions:
		items := make([]string, len(m.actions))
		for i, a := range m.actions {
			items[i] = a.Name
		}
		return items
	case popupFilter:
		opts := m.unique[m.filterCol]
		items := make([]string, len(opts))
		for i, v := range opts {
			mark := "[ ] "
			if m.filters.Selected(m.filterCol, v) {
				mark = "[x] "
			}
			items[i] = mark + v
		}
		return items
	case popupPageSize:
		sizes := m.pager.Sizes()
		items := make([]string, len(sizes))
		for i, s := range sizes {
			mark := "    "
			if s == m.pager.PageSize {
				mark = "  ▸ "
			}
			items[i] = fmt.Sprintf("%s%d rows", mark, s)
		}
		return items
	case popupDownload:
		return []string{"Current page (CSV)", "Full dataset (CSV)", "Full dataset (NDJSON)"}
	}
	return nil
}

func menuDims(items []string) (int, int) {
	w := 12
	for _, it := range items {
		if n := len([]rune(it)) + 4; n > w {
			w = n
		}
	}
	return w, len(items) + 2
}

func (m *Model) renderMenu() string {
	items := m.menuItems(m.popup)
	w, _ := menuDims(items)
	lines := make([]string, len(items))
	for i, it := range items {
		line := it
		if n := w - 2 - len([]rune(it)); n > 0 {
			line += strings.Repeat(" ", n)
		}
		if i == m.popupCursor {
			line = m.styles.MenuSel.Render(line)
		} else {
			line = m.styles.MenuItem.Render(line)
		}
		lines[i] = line
	}
	return m.styles.PopupBox.Render(strings.Join(lines, "\n"))
}

// popupLen is the number of selectable entries in the open menu.
func (m *Model) popupLen() int { return len(m.menuItems(m.popup)) }

// openActionMenu opens the drill-down menu for the cursor row, anchored
// at the row's trigger cell on the right edge.
func (m *Model) openActionMenu() {
	if len(m.actions) == 0 || m.currentRow() == nil {
		return
	}
	anchor := overlay.Rect{X: maxInt(0, m.termWidth-4), Y: m.rowScreenY(), W: 3, H: 1}
	m.openMenu(popupActions, anchor)
}

// openFilterMenu opens the multi-select dropdown for the selected column,
// anchored at that column's header cell.
func (m *Model) openFilterMenu() {
	if m.selCol >= len(m.columns) {
		return
	}
	col := m.columns[m.selCol]
	m.filterCol = col.Key
	if len(m.unique[col.Key]) == 0 {
		m.setStatus("no filter options for " + col.DisplayLabel())
		return
	}
	m.openMenu(popupFilter, m.headerRect(m.selCol))
}

func (m *Model) openPageSizeMenu() {
	m.openMenu(popupPageSize, m.sizeRect)
}

func (m *Model) openDownloadMenu() {
	m.openMenu(popupDownload, m.sizeRect)
}

// openModal shows a centered viewport popup (inspector, logs, help).
func (m *Model) openModal(kind popupKind, title, body string) {
	m.popup = kind
	m.popupPlace = nil
	m.modalTitle = title
	m.modal.SetContent(body)
	m.modal.GotoTop()
}

func (m *Model) inspectorBody() string {
	row := m.currentRow()
	if row == nil {
		return "Select a row in the table"
	}
	var b strings.Builder
	for _, c := range m.columns {
		b.WriteString(c.DisplayLabel())
		b.WriteString(": ")
		b.WriteString(model.DisplayValue(row[c.Key]))
		b.WriteByte('\n')
	}
	// non-column fields still travel with drill-downs; show them too
	extra := false
	for k, v := range row {
		if m.isColumn(k) || !model.IsScalar(v) {
			continue
		}
		if !extra {
			b.WriteString("\nOther fields:\n")
			extra = true
		}
		b.WriteString(fmt.Sprintf("%s: %s\n", k, model.DisplayValue(v)))
	}
	return b.String()
}

func (m *Model) isColumn(key string) bool {
	for _, c := range m.columns {
		if c.Key == key {
			return true
		}
	}
	return false
}
