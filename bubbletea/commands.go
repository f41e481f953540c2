package bubbletea

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/animus/anima"
	tea "github.com/charmbracelet/bubbletea"
)

const commandTimeout = 10 * time.Second

const helpText = `Commands:
  /help             show this help
  /status           show session state and check the server
  /agents           list agents on the server
  /agent <name>     switch to an agent by name or ID
  /reasoning        toggle reasoning display
  /theme [name]     list themes, or switch to one
  /clear            clear the transcript
  /quit             exit

Tab toggles the last reasoning block, Shift+Tab cycles backwards.`

// handleCommand dispatches a slash command typed into the input.
func (m Model) handleCommand(line string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.err = nil

	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]

	var cmd tea.Cmd
	switch name {
	case "/help":
		m.blocks = append(m.blocks, NewSystemBlock(helpText, m.styles))

	case "/status":
		m.blocks = append(m.blocks, NewSystemBlock(m.statusText(), m.styles))
		if m.chat.Session().Available() {
			cmd = checkHealth(m.chat.Transport())
		}

	case "/agents":
		if !m.chat.Session().Available() {
			m.err = anima.ErrUnavailable
			break
		}
		cmd = listAgents(m.chat.Transport())

	case "/agent":
		if len(args) == 0 {
			m.err = fmt.Errorf("usage: /agent <name or ID>")
			break
		}
		if !m.chat.Session().Available() {
			m.err = anima.ErrUnavailable
			break
		}
		cmd = selectAgent(m.chat.Transport(), strings.Join(args, " "))

	case "/reasoning":
		s := m.chat.Session()
		s.ShowReasoning = !s.ShowReasoning
		state := "off"
		if s.ShowReasoning {
			state = "on"
		}
		m.blocks = append(m.blocks, NewSystemBlock("Reasoning display is now "+state+".", m.styles))

	case "/theme":
		if len(args) == 0 {
			m.blocks = append(m.blocks, NewSystemBlock("Themes: "+strings.Join(anima.ThemeNames(), ", "), m.styles))
			break
		}
		theme, ok := anima.NamedTheme(args[0])
		if !ok {
			m.err = fmt.Errorf("unknown theme %q", args[0])
			break
		}
		m.theme = theme
		m.styles = NewStyles(theme)
		m.spin.Style = m.styles.Muted
		m.blocks = append(m.blocks, NewSystemBlock("Theme set to "+args[0]+". New messages use it.", m.styles))

	case "/clear":
		m.blocks = nil
		m.blockFocus = -1

	case "/quit":
		return m, tea.Quit

	default:
		m.err = fmt.Errorf("unknown command %s, try /help", name)
	}

	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()
	return m, cmd
}

func (m Model) statusText() string {
	s := m.chat.Session()
	agent := "none"
	if s.AgentID != "" {
		agent = fmt.Sprintf("%s (%s)", s.AgentName, s.AgentID)
	}
	reasoning := "off"
	if s.ShowReasoning {
		reasoning = "on"
	}
	availability := "available"
	if !s.Available() {
		availability = "unavailable (configuration missing)"
	}
	return fmt.Sprintf("Agent: %s\nReasoning: %s\nDisplay name: %s\nSession: %s",
		agent, reasoning, s.DisplayName, availability)
}

func formatAgentList(agents []anima.Agent) string {
	if len(agents) == 0 {
		return "No agents found on the server."
	}
	var b strings.Builder
	b.WriteString("Agents:\n")
	for _, a := range agents {
		fmt.Fprintf(&b, "  %-24s %s", a.Name, a.ID)
		if a.Model != "" {
			fmt.Fprintf(&b, "  [%s]", a.Model)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func listAgents(t anima.Transport) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		agents, err := t.ListAgents(ctx)
		return AgentListMsg{Agents: agents, Err: err}
	}
}

// selectAgent only resolves the agent over the transport. The session is
// owned by the model goroutine, so Update applies the switch when the
// AgentSelectedMsg arrives.
func selectAgent(t anima.Transport, idOrName string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		agent, err := anima.ResolveAgent(ctx, t, idOrName)
		return AgentSelectedMsg{Agent: agent, Err: err}
	}
}

func checkHealth(t anima.Transport) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		return HealthMsg{Err: t.Health(ctx)}
	}
}
