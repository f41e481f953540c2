package anima

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
)

// Session is the explicit per-client state that the original design kept in
// globals: the selected agent, the user's display name, and reasoning
// visibility. It is mutated only from the consumer side (command handlers),
// never from a worker goroutine.
type Session struct {
	DisplayName   string
	AgentID       string
	AgentName     string
	ShowReasoning bool
	CreatedAt     time.Time

	available bool
}

// NewSession creates a usable session.
func NewSession(displayName string) *Session {
	return &Session{
		DisplayName: displayName,
		CreatedAt:   time.Now(),
		available:   true,
	}
}

// NewUnavailableSession creates a session in the Unavailable state. Every
// send through a [Chat] holding it fails with [ErrUnavailable]; this
// replaces the original's lazy client that silently no-ops when
// configuration is missing.
func NewUnavailableSession() *Session {
	return &Session{CreatedAt: time.Now()}
}

// Available reports whether server operations may be attempted.
func (s *Session) Available() bool { return s.available }

// ResolveAgent matches idOrName against the server's agent list, by
// exact ID first, then by exact name. It reads nothing but the
// transport, so it is safe to call from a worker goroutine; applying the
// result to a Session stays with the session's owner.
func ResolveAgent(ctx context.Context, t Transport, idOrName string) (Agent, error) {
	agents, err := t.ListAgents(ctx)
	if err != nil {
		return Agent{}, fmt.Errorf("select agent: %w", err)
	}
	agent, found := lo.Find(agents, func(a Agent) bool { return a.ID == idOrName })
	if !found {
		agent, found = lo.Find(agents, func(a Agent) bool { return a.Name == idOrName })
	}
	if !found {
		return Agent{}, fmt.Errorf("select agent: no agent matching %q", idOrName)
	}
	return agent, nil
}

// SelectAgent resolves idOrName via [ResolveAgent] and makes the result
// the session's active agent. Like every Session mutation it must only
// be called from the goroutine that owns the session.
func (s *Session) SelectAgent(ctx context.Context, t Transport, idOrName string) (Agent, error) {
	if !s.available {
		return Agent{}, ErrUnavailable
	}
	agent, err := ResolveAgent(ctx, t, idOrName)
	if err != nil {
		return Agent{}, err
	}
	s.AgentID = agent.ID
	s.AgentName = agent.Name
	return agent, nil
}
