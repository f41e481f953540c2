package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var _ MessageBlock = (*SystemBlock)(nil)

// SystemBlock renders informational output from slash commands.
type SystemBlock struct {
	text   string
	styles Styles
}

// NewSystemBlock creates a SystemBlock.
func NewSystemBlock(text string, styles Styles) *SystemBlock {
	return &SystemBlock{text: text, styles: styles}
}

func (b *SystemBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *SystemBlock) View(width int) string {
	return lipgloss.NewStyle().Width(width).Render(b.styles.Muted.Render(b.text))
}
