package bubbletea

import tea "github.com/charmbracelet/bubbletea"

// MessageBlock is one entry in the transcript view. It mirrors the
// tea.Model shape except that View receives the current width, which
// keeps layout decisions in the root model and lets blocks render
// standalone in tests.
type MessageBlock interface {
	Update(tea.Msg) (MessageBlock, tea.Cmd)
	View(width int) string
}

// ToggleMsg asks a collapsible block to flip between its collapsed and
// expanded views. The root model delivers it to whichever block holds
// focus when the toggle key is pressed.
type ToggleMsg struct{}
