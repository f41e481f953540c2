package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var _ MessageBlock = (*ReasoningBlock)(nil)

// ReasoningBlock renders an agent reasoning segment with a collapsible
// toggle. Content arrives as full-replace snapshots.
type ReasoningBlock struct {
	content   string
	collapsed bool
	styles    Styles
}

// NewReasoningBlock creates a ReasoningBlock that starts collapsed.
func NewReasoningBlock(styles Styles) *ReasoningBlock {
	return &ReasoningBlock{collapsed: true, styles: styles}
}

// SetContent replaces the segment's full text.
func (b *ReasoningBlock) SetContent(text string) {
	b.content = text
}

func (b *ReasoningBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	if _, ok := msg.(ToggleMsg); ok {
		b.collapsed = !b.collapsed
	}
	return b, nil
}

func (b *ReasoningBlock) View(width int) string {
	wrap := lipgloss.NewStyle().Width(width)

	indicator := "▶"
	if !b.collapsed {
		indicator = "▼"
	}
	header := b.styles.Reasoning.Render(wrap.Render(indicator + " Reasoning"))
	if b.collapsed {
		return header
	}
	content := b.styles.Reasoning.Render(wrap.Render(b.content))
	return header + "\n" + content
}
