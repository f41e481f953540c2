package bubbletea

import (
	"strings"

	"github.com/animus/anima"
	"github.com/animus/anima/markdown"
	tea "github.com/charmbracelet/bubbletea"
)

var _ MessageBlock = (*AgentBlock)(nil)

// AgentBlock renders one agent turn with markdown formatting. Content
// arrives as full-replace snapshots, not deltas: SetContent replaces the
// whole turn text each time. Finalized paragraphs (the stable prefix
// ending at the last double newline) are rendered once per width and
// cached; only the trailing unfinalized text is re-rendered per snapshot.
type AgentBlock struct {
	label  string
	raw    string
	theme  anima.Theme
	styles Styles

	finalizedRaw     string
	finalizedByWidth map[int]string
}

// NewAgentBlock creates a block for one streaming agent turn.
func NewAgentBlock(label string, theme anima.Theme, styles Styles) *AgentBlock {
	return &AgentBlock{
		label:            label,
		theme:            theme,
		styles:           styles,
		finalizedByWidth: make(map[int]string),
	}
}

// SetContent replaces the turn's full text with a new snapshot. The
// accumulator only ever grows a turn, so the previously finalized prefix
// stays valid.
func (b *AgentBlock) SetContent(text string) {
	b.raw = text
	b.promoteFinalized()
}

// SetLabel updates the speaker label. The label can change between the
// first and later snapshots when agent metadata resolves late.
func (b *AgentBlock) SetLabel(label string) {
	b.label = label
}

func (b *AgentBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *AgentBlock) View(width int) string {
	header := b.styles.Accent.Render(b.label + ":")
	body := b.renderBody(width)
	if body == "" {
		return header
	}
	return header + "\n" + body
}

func (b *AgentBlock) renderBody(width int) string {
	finalizedRendered := b.renderFinalized(width)
	trailing := b.trailingRaw()
	if hasUnclosedFence(trailing) {
		// Close fence only for rendering so partial streams display safely.
		trailing += "\n```"
	}
	if trailing == "" {
		return finalizedRendered
	}
	trailingRendered := markdown.Render(trailing, width, b.theme)
	// Whitespace-only trailing input (e.g. " ") may render to whitespace;
	// treat it the same as empty to avoid spurious blank lines.
	if strings.TrimSpace(trailingRendered) == "" {
		return finalizedRendered
	}
	switch finalizedRendered {
	case "":
		return trailingRendered
	default:
		// Trim whitespace from independently-rendered fragments to avoid
		// a visible seam at the finalization boundary. The paragraph
		// break is reconstructed with a single "\n\n" to match
		// full-document render output.
		return strings.TrimRight(finalizedRendered, "\n") + "\n\n" + strings.TrimLeft(trailingRendered, "\n")
	}
}

// promoteFinalized scans for the last "\n\n" boundary that doesn't fall
// inside an unclosed fenced code block. Splitting inside a fence would
// produce a finalized fragment with an unclosed opening fence and a
// trailing fragment starting mid-code-block.
func (b *AgentBlock) promoteFinalized() {
	raw := b.raw
	for end := len(raw); ; {
		idx := strings.LastIndex(raw[:end], "\n\n")
		if idx <= 0 {
			return
		}
		candidate := raw[:idx]
		if !hasUnclosedFence(candidate) {
			if candidate != b.finalizedRaw {
				b.finalizedRaw = candidate
				// Width-sensitive cache must be invalidated when finalized text grows.
				clear(b.finalizedByWidth)
			}
			return
		}
		end = idx
	}
}

func (b *AgentBlock) renderFinalized(width int) string {
	if width <= 0 || b.finalizedRaw == "" {
		return ""
	}
	if cached, ok := b.finalizedByWidth[width]; ok {
		return cached
	}
	rendered := markdown.Render(b.finalizedRaw, width, b.theme)
	b.finalizedByWidth[width] = rendered
	return rendered
}

func (b *AgentBlock) trailingRaw() string {
	if b.finalizedRaw == "" {
		return b.raw
	}
	return strings.TrimPrefix(b.raw, b.finalizedRaw+"\n\n")
}

// hasUnclosedFence detects whether s contains an unclosed fenced code
// block by checking for an odd number of "```" occurrences. The substring
// count does not distinguish triple backticks inside inline code spans;
// in practice streamed agent output rarely contains those.
func hasUnclosedFence(s string) bool {
	return strings.Count(s, "```")%2 == 1
}
