package tui

import "github.com/charmbracelet/lipgloss"

var (
	Primary = lipgloss.Color("#8BC34A")
	Muted   = lipgloss.Color("#6b7280")
	Danger  = lipgloss.Color("#e53935")
	Accent  = lipgloss.Color("#2196F3")
)

type Styles struct {
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Banner    lipgloss.Style
	Row       lipgloss.Style
	Selected  lipgloss.Style
	Child     lipgloss.Style
	Detail    lipgloss.Style
	Dialog    lipgloss.Style
	Help      lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Tab:       lipgloss.NewStyle().Padding(0, 2).Foreground(Muted),
		ActiveTab: lipgloss.NewStyle().Padding(0, 2).Bold(true).Foreground(Primary).Underline(true),
		Banner:    lipgloss.NewStyle().Bold(true).Foreground(Danger),
		Row:       lipgloss.NewStyle().PaddingLeft(2),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(Primary),
		Child:     lipgloss.NewStyle().PaddingLeft(6),
		Detail:    lipgloss.NewStyle().Foreground(Muted).Italic(true),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Accent).
			Padding(0, 1),
		Help: lipgloss.NewStyle().Foreground(Muted),
	}
}
