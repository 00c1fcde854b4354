package ui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Base       lipgloss.Style
	Status     lipgloss.Style
	Help       lipgloss.Style
	Empty      lipgloss.Style
	PopupBox   lipgloss.Style
	PopupTitle lipgloss.Style
	MenuItem   lipgloss.Style
	MenuSel    lipgloss.Style
	PageBar    lipgloss.Style

	TableStyles TableStyles
}

type TableStyles struct {
	Header         lipgloss.Style
	Cell           lipgloss.Style
	Selected       lipgloss.Style
	HeaderSelected lipgloss.Style
}

func NewStyles(dark bool) Styles {
	s := Styles{}
	if dark {
		s.Base = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
		s.Status = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
		s.Help = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
		s.Empty = lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("60")).Padding(1, 4)
		s.PopupBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("60")).Padding(0, 1)
		s.PopupTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
		s.PageBar = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	} else {
		s.Base = lipgloss.NewStyle()
		s.Status = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Help = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Empty = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12")).Padding(1, 4)
		s.PopupBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12")).Padding(0, 1)
		s.PopupTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("27"))
		s.PageBar = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	}
	s.MenuItem = lipgloss.NewStyle()
	s.MenuSel = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220"))
	s.TableStyles = TableStyles{
		Header:         lipgloss.NewStyle().Bold(true),
		Cell:           lipgloss.NewStyle(),
		Selected:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220")),
		HeaderSelected: lipgloss.NewStyle().Underline(true),
	}
	return s
}
