package bubbletea

import (
	"github.com/animus/anima"
	"github.com/charmbracelet/lipgloss"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	UserMsg   lipgloss.Style
	Reasoning lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t anima.Theme) Styles {
	return Styles{
		UserMsg:   lipgloss.NewStyle().Foreground(themeColor(t.UserMsg)).Bold(true),
		Reasoning: lipgloss.NewStyle().Foreground(themeColor(t.Reasoning)).Faint(true),
		Error:     lipgloss.NewStyle().Foreground(themeColor(t.Error)),
		Success:   lipgloss.NewStyle().Foreground(themeColor(t.Success)),
		Muted:     lipgloss.NewStyle().Foreground(themeColor(t.Muted)).Faint(true),
		Accent:    lipgloss.NewStyle().Foreground(themeColor(t.Accent)).Bold(true),
	}
}

func themeColor(c string) lipgloss.TerminalColor {
	if c == "" {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(c)
}
