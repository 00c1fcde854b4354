package ui

import tea "github.com/charmbracelet/bubbletea"

type KeyMap struct {
	Sort        tea.Key
	ResetSort   tea.Key
	Filter      tea.Key
	ClearFilter tea.Key
	Search      tea.Key
	Expr        tea.Key
	NextPage    tea.Key
	PrevPage    tea.Key
	FirstPage   tea.Key
	LastPage    tea.Key
	PageSize    tea.Key
	Actions     tea.Key
	Inspector   tea.Key
	Suggest     tea.Key
	Download    tea.Key
	AppLogs     tea.Key
	Help        tea.Key
	Quit        tea.Key
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Sort:        tea.Key{Type: tea.KeyRunes, Runes: []rune{'s'}},
		ResetSort:   tea.Key{Type: tea.KeyRunes, Runes: []rune{'S'}},
		Filter:      tea.Key{Type: tea.KeyRunes, Runes: []rune{'f'}},
		ClearFilter: tea.Key{Type: tea.KeyRunes, Runes: []rune{'F'}},
		Search:      tea.Key{Type: tea.KeyRunes, Runes: []rune{'/'}},
		Expr:        tea.Key{Type: tea.KeyRunes, Runes: []rune{'e'}},
		NextPage:    tea.Key{Type: tea.KeyRunes, Runes: []rune{'.'}},
		PrevPage:    tea.Key{Type: tea.KeyRunes, Runes: []rune{','}},
		FirstPage:   tea.Key{Type: tea.KeyRunes, Runes: []rune{'g'}},
		LastPage:    tea.Key{Type: tea.KeyRunes, Runes: []rune{'G'}},
		PageSize:    tea.Key{Type: tea.KeyRunes, Runes: []rune{'r'}},
		Actions:     tea.Key{Type: tea.KeyEnter},
		Inspector:   tea.Key{Type: tea.KeyRunes, Runes: []rune{'i'}},
		Suggest:     tea.Key{Type: tea.KeyRunes, Runes: []rune{'u'}},
		Download:    tea.Key{Type: tea.KeyRunes, Runes: []rune{'d'}},
		AppLogs:     tea.Key{Type: tea.KeyRunes, Runes: []rune{'L'}},
		Help:        tea.Key{Type: tea.KeyRunes, Runes: []rune{'?'}},
		Quit:        tea.Key{Type: tea.KeyRunes, Runes: []rune{'q'}},
	}
}

func keyMatches(msg tea.KeyMsg, k tea.Key) bool {
	if k.Type != tea.KeyRunes {
		return msg.Type == k.Type
	}
	if len(k.Runes) > 0 {
		return msg.String() == string(k.Runes)
	}
	return false
}
