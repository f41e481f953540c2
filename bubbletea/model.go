package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/animus/anima"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

var _ tea.Model = Model{}

// Model is the Bubble Tea model for the anima TUI.
type Model struct {
	// Input is the text input component. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable output area. Exported for test access.
	Viewport viewport.Model

	chat   *anima.Chat
	theme  anima.Theme
	styles Styles
	spin   spinner.Model

	blocks     []MessageBlock
	blockFocus int // index of focused collapsible block (-1 = none)

	// blockBySeq correlates turn updates with blocks within the current
	// exchange. Updates are full-content replacements keyed by the turn's
	// sequence number, so the map is reset on each send.
	blockBySeq map[int]*AgentBlock
	reasonSeq  map[int]*ReasoningBlock

	exchange *anima.Exchange
	// gen identifies the current exchange. Cancelling leaves a listener
	// goroutine behind whose messages carry the old gen and are dropped.
	gen int

	running bool
	waiting bool // streaming started, no update received yet
	err     error
	ready   bool
}

// New creates a new TUI Model over the given chat coordinator and theme.
func New(chat *anima.Chat, theme anima.Theme) Model {
	ti := textinput.New()
	ti.Placeholder = "Type a message..."
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 0

	styles := NewStyles(theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Muted

	return Model{
		Input:      ti,
		chat:       chat,
		theme:      theme,
		styles:     styles,
		spin:       sp,
		blockFocus: -1,
		blockBySeq: make(map[int]*AgentBlock),
		reasonSeq:  make(map[int]*ReasoningBlock),
	}
}

// Running returns whether an exchange is currently streaming.
func (m Model) Running() bool { return m.running }

// Err returns the last error, if any.
func (m Model) Err() error { return m.err }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.handleWindowSize(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.waiting {
			m.Viewport.SetContent(m.renderContent())
			m.Viewport.GotoBottom()
		}
		return m, cmd

	case TurnUpdateMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.waiting = false
		m = m.applyUpdate(msg.Update)
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		if msg.Update.Final {
			return m.finishExchange(nil)
		}
		return m, listenForUpdate(m.gen, m.exchange)

	case ExchangeDoneMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.finishExchange(msg.Err)

	case AgentListMsg:
		if msg.Err != nil {
			m.err = msg.Err
		} else {
			m.blocks = append(m.blocks, NewSystemBlock(formatAgentList(msg.Agents), m.styles))
		}
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		return m, nil

	case AgentSelectedMsg:
		if msg.Err != nil {
			m.err = msg.Err
		} else {
			s := m.chat.Session()
			s.AgentID = msg.Agent.ID
			s.AgentName = msg.Agent.Name
			m.blocks = append(m.blocks, NewSystemBlock("Talking to "+msg.Agent.Name+".", m.styles))
		}
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		return m, nil

	case HealthMsg:
		text := "Server is reachable."
		if msg.Err != nil {
			text = "Server is unreachable: " + msg.Err.Error()
		}
		m.blocks = append(m.blocks, NewSystemBlock(text, m.styles))
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		return m, nil
	}

	// Pass remaining messages to sub-components.
	// Viewport always receives messages for scrolling (keyboard and mouse).
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)

	if !m.running {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder

	b.WriteString(m.Viewport.View())
	b.WriteString("\n")

	b.WriteString(m.statusLine())
	b.WriteString("\n")

	b.WriteString(m.Input.View())

	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	inputH := 1
	statusHeight := 1
	borderHeight := 2 // newlines between sections
	vpHeight := msg.Height - inputH - statusHeight - borderHeight

	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m = m.renderWelcome()
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}

	m.Input.Width = msg.Width
	return m
}

// renderWelcome seeds the transcript with the session banner.
func (m Model) renderWelcome() Model {
	s := m.chat.Session()
	var text string
	switch {
	case !s.Available():
		text = "Server configuration is missing. Set LETTA_SERVER_URL and LETTA_API_TOKEN, then restart."
	case s.AgentName != "":
		text = fmt.Sprintf("Talking to %s. Type /help for commands.", s.AgentName)
	default:
		text = "No agent selected. Use /agents to list and /agent <name> to choose one."
	}
	m.blocks = append(m.blocks, NewSystemBlock(text, m.styles))
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.running {
			return m.cancelExchange()
		}
		return m, tea.Quit

	case tea.KeyEsc:
		if m.running {
			return m.cancelExchange()
		}
		return m, nil

	case tea.KeyEnter:
		if m.running {
			return m, nil
		}
		text := strings.TrimSpace(m.Input.Value())
		if text == "" {
			return m, nil
		}
		if strings.HasPrefix(text, "/") {
			return m.handleCommand(text)
		}
		return m.submitInput(text)

	case tea.KeyTab:
		if !m.running && m.blockFocus >= 0 {
			block, cmd := m.blocks[m.blockFocus].Update(ToggleMsg{})
			m.blocks[m.blockFocus] = block
			m.Viewport.SetContent(m.renderContent())
			return m, cmd
		}
		return m, nil

	case tea.KeyShiftTab:
		if !m.running {
			m = m.cycleFocusPrev()
			m.Viewport.SetContent(m.renderContent())
		}
		return m, nil
	}

	// When idle, pass keys to both input (for typing) and viewport
	// (for scrolling). Only forward non-character keys to viewport to avoid
	// conflicts (e.g. 'j'/'k' are viewport scroll AND text characters).
	if !m.running {
		var cmd tea.Cmd
		var cmds []tea.Cmd

		if msg.Type != tea.KeyRunes {
			m.Viewport, cmd = m.Viewport.Update(msg)
			cmds = append(cmds, cmd)
		}

		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)

		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m Model) submitInput(text string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.err = nil

	e, err := m.chat.Send(context.Background(), text)
	if err != nil {
		m.err = err
		return m, nil
	}

	label := m.chat.Session().DisplayName
	if label == "" {
		label = "You"
	}
	m.blocks = append(m.blocks, NewUserBlock(label, text, m.styles))

	m.blockBySeq = make(map[int]*AgentBlock)
	m.reasonSeq = make(map[int]*ReasoningBlock)
	m.exchange = e
	m.gen++
	m.running = true
	m.waiting = true

	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()
	m.Input.Blur()

	return m, tea.Batch(m.spin.Tick, listenForUpdate(m.gen, e))
}

func (m Model) cancelExchange() (tea.Model, tea.Cmd) {
	if m.exchange != nil {
		m.exchange.Cancel()
	}
	return m.finishExchange(nil)
}

func (m Model) finishExchange(err error) (tea.Model, tea.Cmd) {
	m.running = false
	m.waiting = false
	m.exchange = nil
	if err != nil && !errors.Is(err, context.Canceled) {
		m.err = err
	}
	m = m.updateBlockFocus()
	m.Viewport.SetContent(m.renderContent())
	cmd := m.Input.Focus()
	return m, cmd
}

// applyUpdate routes a turn update to its block, creating the block on the
// turn's first update. Content is a full replacement, not a delta.
func (m Model) applyUpdate(u anima.TurnUpdate) Model {
	if u.Seq < 0 {
		// Terminal update of an exchange that produced no turns.
		return m
	}

	if b, ok := m.blockBySeq[u.Seq]; ok {
		b.SetLabel(u.Label)
		b.SetContent(u.Content)
		return m
	}
	if b, ok := m.reasonSeq[u.Seq]; ok {
		b.SetContent(u.Content)
		return m
	}

	switch u.Role {
	case anima.RoleReasoning:
		b := NewReasoningBlock(m.styles)
		b.SetContent(u.Content)
		m.blocks = append(m.blocks, b)
		m.reasonSeq[u.Seq] = b
	case anima.RoleSystem:
		m.blocks = append(m.blocks, NewErrorBlock(u.Content, m.styles))
	default:
		b := NewAgentBlock(u.Label, m.theme, m.styles)
		b.SetContent(u.Content)
		m.blocks = append(m.blocks, b)
		m.blockBySeq[u.Seq] = b
	}
	return m.updateBlockFocus()
}

func (m Model) renderContent() string {
	var parts []string
	for _, block := range m.blocks {
		parts = append(parts, block.View(m.Viewport.Width))
	}
	if m.waiting {
		parts = append(parts, m.spin.View()+m.styles.Muted.Render("Thinking..."))
	}
	return strings.Join(parts, "\n")
}

// updateBlockFocus scans backwards to find the last collapsible block.
// Only the focused block responds to Tab. ShiftTab cycles to the previous
// collapsible block.
func (m Model) updateBlockFocus() Model {
	m.blockFocus = -1
	for i := len(m.blocks) - 1; i >= 0; i-- {
		if _, ok := m.blocks[i].(*ReasoningBlock); ok {
			m.blockFocus = i
			return m
		}
	}
	return m
}

// cycleFocusPrev moves blockFocus to the previous collapsible block, wrapping around.
func (m Model) cycleFocusPrev() Model {
	if len(m.blocks) == 0 {
		return m
	}
	start := m.blockFocus - 1
	if start < 0 {
		start = len(m.blocks) - 1
	}
	for i := range len(m.blocks) {
		idx := (start - i + len(m.blocks)) % len(m.blocks)
		if _, ok := m.blocks[idx].(*ReasoningBlock); ok {
			m.blockFocus = idx
			return m
		}
	}
	m.blockFocus = -1
	return m
}

func (m Model) statusLine() string {
	if m.err != nil {
		return m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.running {
		return m.styles.Muted.Render("Streaming... Esc to cancel")
	}
	s := m.chat.Session()
	agent := s.AgentName
	if agent == "" {
		agent = "no agent"
	}
	reasoning := "off"
	if s.ShowReasoning {
		reasoning = "on"
	}
	return m.styles.Muted.Render(fmt.Sprintf("%s · reasoning %s · Enter to send, /help for commands", agent, reasoning))
}
