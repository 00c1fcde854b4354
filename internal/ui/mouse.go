package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.MouseWheelUp:
		m.tbl.MoveUp(1)
		return m, nil
	case tea.MouseWheelDown:
		m.tbl.MoveDown(1)
		return m, nil
	case tea.MouseLeft:
		return m.handleClick(msg)
	}
	return m, nil
}

func (m *Model) handleClick(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x, y := msg.X, msg.Y

	// An open menu owns the click: inside selects, outside dismisses.
	switch m.popup {
	case popupActions, popupFilter, popupPageSize, popupDownload:
		items := m.menuItems(m.popup)
		w, h := menuDims(items)
		if m.popupPlace != nil && m.popupPlace.Rect(w, h).Contains(x, y) {
			idx := y - m.popupPlace.Top - 1
			if idx >= 0 && idx < len(items) {
				m.popupCursor = idx
				return m.menuSelect(idx, m.popup == popupFilter)
			}
			return m, nil
		}
		m.closePopup()
		return m, nil
	case popupInspector, popupLogs, popupHelp:
		m.closePopup()
		return m, nil
	}

	// The suggestion widget does its own inside/outside hit-testing
	// across its input, list, tag trigger and tag list.
	if m.suggestLines() > 0 {
		inside := m.suggRect.Contains(x, y) || m.tagRect.Contains(x, y)
		if inside || m.sugg.Open() {
			var cmd tea.Cmd
			m.sugg, cmd = m.sugg.Update(msg)
			m.suggFocused = inside || m.sugg.Open()
			if !m.suggFocused {
				m.sugg.Blur()
			}
			return m, cmd
		}
	}

	// Header click: select the column and toggle its sort.
	if y == m.suggestLines() {
		if col := m.columnAt(x); col >= 0 {
			m.selCol = col
			return m.toggleSort(col)
		}
		return m, nil
	}

	if m.sizeRect.Contains(x, y) {
		m.openPageSizeMenu()
		return m, nil
	}

	// Table body: move the cursor; the right-edge cell is the row's
	// action trigger.
	bodyTop := m.suggestLines() + 1
	if y >= bodyTop && y < bodyTop+m.tbl.Height() {
		idx := y - bodyTop
		if idx < len(m.rows) {
			m.tbl.SetCursor(idx)
			if x >= m.termWidth-4 {
				m.openActionMenu()
			}
		}
		return m, nil
	}
	return m, nil
}
