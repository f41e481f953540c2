// Package bubbletea provides the Bubble Tea TUI for the anima chat client.
package bubbletea

import (
	"context"
	"io"

	"github.com/animus/anima"
	tea "github.com/charmbracelet/bubbletea"
)

// Run creates and runs the Bubble Tea TUI program. It blocks until the
// program exits. The context is used for graceful shutdown — when
// cancelled, the program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// TurnUpdateMsg wraps a transcript update for delivery to the model. Gen
// identifies the exchange it belongs to; updates from a cancelled exchange
// carry a stale Gen and are dropped.
type TurnUpdateMsg struct {
	Gen    int
	Update anima.TurnUpdate
}

// ExchangeDoneMsg signals that the exchange's update stream has ended.
type ExchangeDoneMsg struct {
	Gen int
	Err error
}

// AgentListMsg carries the result of an asynchronous agent listing.
type AgentListMsg struct {
	Agents []anima.Agent
	Err    error
}

// AgentSelectedMsg carries the result of an asynchronous agent selection.
type AgentSelectedMsg struct {
	Agent anima.Agent
	Err   error
}

// HealthMsg carries the result of an asynchronous server health check.
type HealthMsg struct {
	Err error
}

// listenForUpdate waits for the exchange's next turn update. A nil error
// on io.EOF distinguishes normal stream end from a transport failure in
// the Bubble Tea runtime (Exchange.Next never returns transport errors —
// those arrive as updates).
func listenForUpdate(gen int, e *anima.Exchange) tea.Cmd {
	return func() tea.Msg {
		up, err := e.Next(context.Background())
		if err != nil {
			if err == io.EOF {
				err = nil
			}
			return ExchangeDoneMsg{Gen: gen, Err: err}
		}
		return TurnUpdateMsg{Gen: gen, Update: up}
	}
}
