package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var _ MessageBlock = (*UserBlock)(nil)

// UserBlock renders a user message with the sender's display name.
type UserBlock struct {
	label  string
	text   string
	styles Styles
}

// NewUserBlock creates a UserBlock.
func NewUserBlock(label, text string, styles Styles) *UserBlock {
	return &UserBlock{label: label, text: text, styles: styles}
}

func (b *UserBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *UserBlock) View(width int) string {
	content := b.styles.UserMsg.Render(b.label+" >") + " " + b.text
	return lipgloss.NewStyle().Width(width).Render(content)
}
