package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"gridlens/internal/source"
	"gridlens/internal/suggest"
	"gridlens/internal/util/logx"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth, m.termHeight = msg.Width, msg.Height
		m.layout()
		m.closePopup()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case fetchedMsg:
		m.applyFetched(msg)
		return m, nil

	case uniqueMsg:
		if msg.err != nil {
			logx.Warnf("ui: unique values: %v", msg.err)
			return m, nil
		}
		m.unique = msg.vals
		return m, nil

	case sourceEventMsg:
		return m.onSourceEvent(msg)

	case suggest.SelectedMsg:
		m.entityKey = msg.Entity.Key
		m.suggFocused = false
		m.sugg.Blur()
		if m.isColumn(m.cat.SuggestKey) {
			m.filters[m.cat.SuggestKey] = []string{msg.Entity.Key}
			m.pager.GoToPage(1)
			m.applyColumns()
			return m, m.refetch()
		}
		return m, nil

	case suggest.ClearedMsg:
		m.entityKey = ""
		if m.isColumn(m.cat.SuggestKey) {
			m.filters.Clear(m.cat.SuggestKey)
			m.applyColumns()
			return m, m.refetch()
		}
		return m, nil

	case drillDoneMsg:
		if msg.err != nil {
			m.setStatus("drill-down failed: " + msg.err.Error())
		} else {
			m.setStatus("opened " + msg.url)
		}
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.setStatus("export failed: " + msg.err.Error())
		} else {
			m.setStatus("exported " + msg.path)
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// onSourceEvent reacts to the backing dataset changing: display state is
// derived state, so it resets and everything refetches.
func (m *Model) onSourceEvent(msg sourceEventMsg) (tea.Model, tea.Cmd) {
	if !msg.ok {
		return m, nil
	}
	w, _ := m.src.(source.Watchable)
	if msg.ev.Err != nil {
		m.setStatus("source: " + msg.ev.Err.Error())
		return m, watchCmd(w)
	}
	m.filters = map[string][]string{}
	m.sorting.Reset()
	m.pager.GoToPage(1)
	m.closePopup()
	m.applyColumns()
	return m, tea.Batch(m.refetch(), m.uniqueCmd(), watchCmd(w))
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Popups swallow keys first
	switch m.popup {
	case popupActions, popupFilter, popupPageSize, popupDownload:
		return m.handleMenuKey(msg)
	case popupInspector, popupLogs, popupHelp:
		if msg.Type == tea.KeyEsc || msg.Type == tea.KeyEnter {
			m.closePopup()
			return m, nil
		}
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}

	if m.suggFocused {
		if msg.Type == tea.KeyEsc && !m.sugg.Open() {
			m.suggFocused = false
			m.sugg.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.sugg, cmd = m.sugg.Update(msg)
		return m, cmd
	}

	if m.inlineMode != inlineNone {
		return m.handleInlineKey(msg)
	}

	km := m.keymap
	switch {
	case keyMatches(msg, km.Quit):
		return m, tea.Quit
	case msg.Type == tea.KeyLeft:
		if m.selCol > 0 {
			m.selCol--
			m.applyColumns()
		}
		return m, nil
	case msg.Type == tea.KeyRight:
		if m.selCol < len(m.columns)-1 {
			m.selCol++
			m.applyColumns()
		}
		return m, nil
	case keyMatches(msg, km.Sort):
		return m.toggleSort(m.selCol)
	case keyMatches(msg, km.ResetSort):
		m.sorting.Reset()
		m.applyColumns()
		return m, m.refetch()
	case keyMatches(msg, km.Filter):
		m.openFilterMenu()
		return m, nil
	case keyMatches(msg, km.ClearFilter):
		return m.clearFilters()
	case keyMatches(msg, km.Search):
		m.inlineMode = inlineSearch
		m.inline.SetValue(m.criteria.Query)
		m.inline.Prompt = "/"
		m.inline.Placeholder = "text or /regex/"
		return m, m.inline.Focus()
	case keyMatches(msg, km.Expr):
		m.inlineMode = inlineExpr
		m.inline.SetValue(m.criteria.Expr)
		m.inline.Prompt = "expr> "
		m.inline.Placeholder = `e.g. amount > 100 && active == true`
		return m, m.inline.Focus()
	case keyMatches(msg, km.NextPage):
		if m.pager.GoToPage(m.pager.Page + 1) {
			return m, m.refetch()
		}
		return m, nil
	case keyMatches(msg, km.PrevPage):
		if m.pager.GoToPage(m.pager.Page - 1) {
			return m, m.refetch()
		}
		return m, nil
	case keyMatches(msg, km.FirstPage):
		if m.pager.GoToPage(1) {
			return m, m.refetch()
		}
		return m, nil
	case keyMatches(msg, km.LastPage):
		if m.pager.GoToPage(m.pager.TotalPages) {
			return m, m.refetch()
		}
		return m, nil
	case keyMatches(msg, km.PageSize):
		m.openPageSizeMenu()
		return m, nil
	case keyMatches(msg, km.Download):
		m.openDownloadMenu()
		return m, nil
	case keyMatches(msg, km.Actions):
		m.openActionMenu()
		return m, nil
	case keyMatches(msg, km.Inspector):
		m.openModal(popupInspector, "Row", m.inspectorBody())
		return m, nil
	case keyMatches(msg, km.AppLogs):
		m.openModal(popupLogs, "Application Logs", logx.Dump())
		return m, nil
	case keyMatches(msg, km.Help):
		m.openModal(popupHelp, "Help", helpBody())
		return m, nil
	case keyMatches(msg, km.Suggest):
		if m.suggestLines() > 0 {
			m.suggFocused = true
			return m, m.sugg.Focus()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)
	return m, cmd
}

func (m *Model) toggleSort(col int) (tea.Model, tea.Cmd) {
	if col < 0 || col >= len(m.columns) {
		return m, nil
	}
	m.sorting.Toggle(m.columns[col].Key)
	m.pager.GoToPage(1)
	m.applyColumns()
	return m, m.refetch()
}

// clearFilters drops the selected column's filter first; with none left it
// clears the global criteria too.
func (m *Model) clearFilters() (tea.Model, tea.Cmd) {
	if m.selCol < len(m.columns) {
		key := m.columns[m.selCol].Key
		if len(m.filters[key]) > 0 {
			m.filters.Clear(key)
			m.applyColumns()
			return m, m.refetch()
		}
	}
	if m.filters.Active() || !m.criteria.Empty() {
		m.filters = map[string][]string{}
		m.criteria.Query = ""
		m.criteria.UseRegex = false
		m.criteria.Field = ""
		m.criteria.Expr = ""
		m.applyColumns()
		return m, m.refetch()
	}
	return m, nil
}

func (m *Model) handleInlineKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.inlineMode = inlineNone
		m.inline.Blur()
		return m, nil
	case tea.KeyEnter:
		val := strings.TrimSpace(m.inline.Value())
		if m.inlineMode == inlineSearch {
			m.criteria.UseRegex = strings.HasPrefix(val, "/") && strings.HasSuffix(val, "/") && len(val) > 2
			if m.criteria.UseRegex {
				val = val[1 : len(val)-1]
			}
			m.criteria.Query = val
			if val != "" && m.selCol < len(m.columns) {
				m.criteria.Field = m.columns[m.selCol].Key
			} else {
				m.criteria.Field = ""
			}
		} else {
			m.criteria.Expr = val
		}
		m.inlineMode = inlineNone
		m.inline.Blur()
		m.pager.GoToPage(1)
		return m, m.refetch()
	}
	var cmd tea.Cmd
	m.inline, cmd = m.inline.Update(msg)
	return m, cmd
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closePopup()
		return m, nil
	case tea.KeyUp:
		if m.popupCursor > 0 {
			m.popupCursor--
		}
		return m, nil
	case tea.KeyDown:
		if m.popupCursor < m.popupLen()-1 {
			m.popupCursor++
		}
		return m, nil
	case tea.KeyEnter, tea.KeySpace:
		return m.menuSelect(m.popupCursor, msg.Type == tea.KeySpace)
	}
	return m, nil
}

// menuSelect runs the highlighted entry of the open menu. Toggling a
// filter value keeps the dropdown open so several values can be picked in
// one visit; everything else closes on selection.
func (m *Model) menuSelect(idx int, keepOpen bool) (tea.Model, tea.Cmd) {
	switch m.popup {
	case popupActions:
		if idx >= len(m.actions) {
			return m, nil
		}
		row := m.currentRow()
		action := m.actions[idx]
		m.closePopup()
		if row == nil {
			return m, nil
		}
		return m, m.drillCmd(row, action)

	case popupFilter:
		opts := m.unique[m.filterCol]
		if idx >= len(opts) {
			return m, nil
		}
		m.filters.Toggle(m.filterCol, opts[idx])
		m.pager.GoToPage(1)
		m.applyColumns()
		if !keepOpen {
			m.closePopup()
		}
		return m, m.refetch()

	case popupPageSize:
		sizes := m.pager.Sizes()
		if idx >= len(sizes) {
			return m, nil
		}
		m.closePopup()
		if m.pager.SetPageSize(sizes[idx]) {
			return m, m.refetch()
		}
		return m, nil

	case popupDownload:
		m.closePopup()
		full := idx > 0
		ndjson := idx == 2
		m.setStatus("exporting...")
		return m, m.downloadCmd(full, ndjson)
	}
	return m, nil
}
