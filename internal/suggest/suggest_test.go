package suggest

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"gridlens/internal/model"
	"gridlens/internal/overlay"
)

func testEntities() []model.Entity {
	return []model.Entity{
		{Key: "C0001", Label: "Acme Logistics", Tags: []string{"enterprise"}},
		{Key: "C0002", Label: "Borealis Foods", Tags: []string{"standard"}},
		{Key: "C0003", Label: "Cinder Works", Tags: []string{"enterprise", "trial"}},
	}
}

func newTestModel() Model {
	m := New(testEntities(), "customer")
	m.SetGeometry(
		overlay.Rect{X: 0, Y: 0, W: 40, H: 1},
		overlay.Rect{X: 42, Y: 0, W: 8, H: 1},
		80, 24,
	)
	return m
}

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestFocusOpensCandidateList(t *testing.T) {
	m := newTestModel()
	if m.Open() {
		t.Fatalf("open before focus")
	}
	m.Focus()
	if !m.Open() {
		t.Fatalf("focus did not open the list")
	}
}

func TestTypingNarrowsCandidates(t *testing.T) {
	m := newTestModel()
	m.Focus()
	m, _ = m.Update(typed("bor"))
	if len(m.candidates) != 1 || m.candidates[0].Key != "C0002" {
		t.Fatalf("candidates: %v", m.candidates)
	}
	m, _ = m.Update(typed("zzz"))
	if m.Open() {
		t.Fatalf("list stayed open with no candidates")
	}
}

func TestEnterCommitsSelection(t *testing.T) {
	m := newTestModel()
	m.Focus()
	m, _ = m.Update(key(tea.KeyDown))
	m, cmd := m.Update(key(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("no command from commit")
	}
	msg, ok := cmd().(SelectedMsg)
	if !ok {
		t.Fatalf("message: %T", cmd())
	}
	if msg.Entity.Key != "C0002" {
		t.Fatalf("committed entity: %+v", msg.Entity)
	}
	if m.Open() {
		t.Fatalf("list still open after commit")
	}
	if m.Input.Value() != "C0002" {
		t.Fatalf("input value: %q", m.Input.Value())
	}
}

func TestEscClosesList(t *testing.T) {
	m := newTestModel()
	m.Focus()
	m, _ = m.Update(key(tea.KeyEsc))
	if m.Open() {
		t.Fatalf("esc left the list open")
	}
}

func TestTagSubmenuFiltersCandidates(t *testing.T) {
	m := newTestModel()
	m.Focus()
	m, _ = m.Update(key(tea.KeyTab))
	if !m.tagOpen {
		t.Fatalf("tab did not open the tag submenu")
	}
	// tags are sorted: enterprise, standard, trial
	m, _ = m.Update(key(tea.KeyEnter)) // toggle "enterprise"
	m, _ = m.Update(key(tea.KeyTab))   // back to the input
	if got := m.ActiveTags(); len(got) != 1 || got[0] != "enterprise" {
		t.Fatalf("active tags: %v", got)
	}
	if len(m.candidates) != 2 {
		t.Fatalf("tag filter not applied: %v", m.candidates)
	}
}

func TestOutsideClickCloses(t *testing.T) {
	m := newTestModel()
	m.Focus()
	m, _ = m.Update(tea.MouseMsg{Type: tea.MouseLeft, X: 70, Y: 20})
	if m.Open() {
		t.Fatalf("outside click left the popup open")
	}
}

func TestClickInsideInputRefocuses(t *testing.T) {
	m := newTestModel()
	m.Focus()
	m, _ = m.Update(tea.MouseMsg{Type: tea.MouseLeft, X: 70, Y: 20})
	m, _ = m.Update(tea.MouseMsg{Type: tea.MouseLeft, X: 5, Y: 0})
	if !m.Open() {
		t.Fatalf("click on the input did not reopen the list")
	}
}

func TestClickOnCandidateCommits(t *testing.T) {
	m := newTestModel()
	m.Focus()
	if m.listPlace == nil {
		t.Fatal("no placement after focus")
	}
	// first candidate sits one row below the top border
	m, cmd := m.Update(tea.MouseMsg{Type: tea.MouseLeft, X: m.listPlace.Left + 2, Y: m.listPlace.Top + 1})
	if cmd == nil {
		t.Fatal("click did not commit")
	}
	if msg := cmd().(SelectedMsg); msg.Entity.Key != "C0001" {
		t.Fatalf("committed entity: %+v", msg.Entity)
	}
	_ = m
}

func TestClearEmitsClearedMsg(t *testing.T) {
	m := newTestModel()
	m.Focus()
	m, _ = m.Update(typed("bor"))
	m, cmd := m.Update(key(tea.KeyCtrlU))
	if cmd == nil {
		t.Fatal("no command from clear")
	}
	if _, ok := cmd().(ClearedMsg); !ok {
		t.Fatalf("message: %T", cmd())
	}
	if m.Input.Value() != "" {
		t.Fatalf("input not cleared: %q", m.Input.Value())
	}
}

func TestNoTagsNoSubmenu(t *testing.T) {
	m := New([]model.Entity{{Key: "A"}}, "x")
	m.SetGeometry(overlay.Rect{W: 10, H: 1}, overlay.Rect{}, 80, 24)
	if m.HasTags() {
		t.Fatalf("tags reported without any")
	}
	m.Focus()
	m, _ = m.Update(key(tea.KeyTab))
	if m.tagOpen {
		t.Fatalf("tab opened a submenu with no tags")
	}
}
