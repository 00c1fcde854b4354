// Package suggest implements the typeahead entity input: a text input
// that, while focused, floats a list of matching entities plus an optional
// tag-filter submenu. Both popups get their position from internal/overlay
// and are composited by the hosting view; this package only owns the
// open/closed state machine and the candidate matching.
package suggest

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"gridlens/internal/model"
	"gridlens/internal/overlay"
)

const maxVisible = 8

// SelectedMsg is emitted when the user commits an entity.
type SelectedMsg struct {
	Entity model.Entity
}

// ClearedMsg is emitted when the input is reset to empty.
type ClearedMsg struct{}

type Model struct {
	Input textinput.Model

	entities   []model.Entity
	candidates []model.Entity
	cursor     int

	tags       []string
	activeTags map[string]bool
	tagCursor  int

	open    bool
	tagOpen bool

	// geometry, supplied by the host on layout
	anchor     overlay.Rect
	tagTrigger overlay.Rect
	viewportW  int
	viewportH  int

	listPlace *overlay.Placement
	tagPlace  *overlay.Placement
	listSize  [2]int
	tagSize   [2]int
}

func New(entities []model.Entity, placeholder string) Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 128
	in.Prompt = "> "
	m := Model{
		Input:      in,
		entities:   entities,
		activeTags: map[string]bool{},
	}
	m.tags = collectTags(entities)
	m.refresh()
	return m
}

func collectTags(entities []model.Entity) []string {
	seen := map[string]bool{}
	var tags []string
	for _, e := range entities {
		for _, t := range e.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// SetGeometry tells the component where its input and tag trigger sit in
// the terminal, and how big the terminal is. Placement is recomputed on
// the next open.
func (m *Model) SetGeometry(input, tagTrigger overlay.Rect, viewportW, viewportH int) {
	m.anchor = input
	m.tagTrigger = tagTrigger
	m.viewportW = viewportW
	m.viewportH = viewportH
	m.place()
}

// Open reports whether any popup is showing.
func (m Model) Open() bool { return m.open || m.tagOpen }

// HasTags reports whether a tag-filter submenu exists at all.
func (m Model) HasTags() bool { return len(m.tags) > 0 }

// ActiveTags lists the currently enabled tag filters.
func (m Model) ActiveTags() []string {
	var out []string
	for _, t := range m.tags {
		if m.activeTags[t] {
			out = append(out, t)
		}
	}
	return out
}

func (m *Model) Focus() tea.Cmd {
	cmd := m.Input.Focus()
	if len(m.candidates) > 0 {
		m.open = true
		m.place()
	}
	return cmd
}

func (m *Model) Blur() {
	m.Input.Blur()
	m.open = false
	m.tagOpen = false
}

// Clear resets the input and reopens it for a fresh query.
func (m *Model) Clear() tea.Cmd {
	m.Input.SetValue("")
	m.refresh()
	m.open = len(m.candidates) > 0
	m.place()
	return func() tea.Msg { return ClearedMsg{} }
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.tagOpen {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyTab:
			m.tagOpen = false
			return m, nil
		case tea.KeyUp:
			if m.tagCursor > 0 {
				m.tagCursor--
			}
			return m, nil
		case tea.KeyDown:
			if m.tagCursor < len(m.tags)-1 {
				m.tagCursor++
			}
			return m, nil
		case tea.KeyEnter:
			if m.tagCursor < len(m.tags) {
				t := m.tags[m.tagCursor]
				m.activeTags[t] = !m.activeTags[t]
				m.refresh()
			}
			return m, nil
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		if m.open {
			m.open = false
			return m, nil
		}
	case tea.KeyTab:
		if m.HasTags() {
			m.tagOpen = true
			m.open = false
			m.place()
			return m, nil
		}
	case tea.KeyUp:
		if m.open && m.cursor > 0 {
			m.cursor--
			return m, nil
		}
	case tea.KeyDown:
		if m.open && m.cursor < len(m.candidates)-1 {
			m.cursor++
			return m, nil
		}
	case tea.KeyEnter:
		if m.open && m.cursor < len(m.candidates) {
			return m.commit(m.candidates[m.cursor])
		}
	case tea.KeyCtrlU:
		return m, m.Clear()
	}

	var cmd tea.Cmd
	before := m.Input.Value()
	m.Input, cmd = m.Input.Update(msg)
	if m.Input.Value() != before {
		m.refresh()
		m.open = len(m.candidates) > 0
		m.place()
	}
	return m, cmd
}

// handleMouse implements outside-click dismissal: a click inside the
// input, the candidate list, the tag trigger or the tag list is "inside";
// anything else closes the open popup.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Type != tea.MouseLeft {
		return m, nil
	}
	x, y := msg.X, msg.Y
	switch {
	case m.anchor.Contains(x, y):
		return m, m.Focus()
	case m.tagTrigger.Contains(x, y) && m.HasTags():
		m.tagOpen = !m.tagOpen
		if m.tagOpen {
			m.open = false
		}
		m.place()
		return m, nil
	case m.tagOpen && m.tagPlace != nil && m.tagPlace.Rect(m.tagSize[0], m.tagSize[1]).Contains(x, y):
		idx := y - m.tagPlace.Top - 1 // border
		if idx >= 0 && idx < len(m.tags) {
			t := m.tags[idx]
			m.activeTags[t] = !m.activeTags[t]
			m.refresh()
		}
		return m, nil
	case m.open && m.listPlace != nil && m.listPlace.Rect(m.listSize[0], m.listSize[1]).Contains(x, y):
		idx := y - m.listPlace.Top - 1
		if idx >= 0 && idx < len(m.candidates) {
			return m.commit(m.candidates[idx])
		}
		return m, nil
	}
	m.open = false
	m.tagOpen = false
	return m, nil
}

func (m Model) commit(e model.Entity) (Model, tea.Cmd) {
	m.Input.SetValue(e.Key)
	m.Input.CursorEnd()
	m.open = false
	m.tagOpen = false
	return m, func() tea.Msg { return SelectedMsg{Entity: e} }
}

func (m *Model) refresh() {
	q := strings.ToLower(strings.TrimSpace(m.Input.Value()))
	m.candidates = m.candidates[:0]
	for _, e := range m.entities {
		if !m.tagsMatch(e) {
			continue
		}
		if q == "" ||
			strings.Contains(strings.ToLower(e.Key), q) ||
			strings.Contains(strings.ToLower(e.Label), q) {
			m.candidates = append(m.candidates, e)
		}
	}
	if len(m.candidates) > maxVisible {
		m.candidates = m.candidates[:maxVisible]
	}
	if m.cursor >= len(m.candidates) {
		m.cursor = 0
	}
}

func (m *Model) tagsMatch(e model.Entity) bool {
	active := m.ActiveTags()
	if len(active) == 0 {
		return true
	}
	for _, want := range active {
		for _, t := range e.Tags {
			if t == want {
				return true
			}
		}
	}
	return false
}

func (m *Model) place() {
	if m.open {
		w, h := m.listDims()
		m.listSize = [2]int{w, h}
		m.listPlace = overlay.Compute(m.anchor, w, h, m.viewportW, m.viewportH)
		if m.listPlace == nil {
			m.open = false
		}
	}
	if m.tagOpen {
		w, h := m.tagDims()
		m.tagSize = [2]int{w, h}
		m.tagPlace = overlay.Compute(m.tagTrigger, w, h, m.viewportW, m.viewportH)
		if m.tagPlace == nil {
			m.tagOpen = false
		}
	}
}

func (m *Model) listDims() (int, int) {
	w := 20
	for _, e := range m.candidates {
		if n := len(entityLine(e)) + 4; n > w {
			w = n
		}
	}
	return w, len(m.candidates) + 2 // border rows
}

func (m *Model) tagDims() (int, int) {
	w := 16
	for _, t := range m.tags {
		if n := len(t) + 8; n > w {
			w = n
		}
	}
	return w, len(m.tags) + 2
}

func entityLine(e model.Entity) string {
	if e.Label != "" && e.Label != e.Key {
		return e.Key + "  " + e.Label
	}
	return e.Key
}
