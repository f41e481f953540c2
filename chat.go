package anima

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Chat coordinates exchanges against one transport and session. It
// enforces the single-active-exchange policy: starting a new send while
// one is in flight is rejected with [ErrExchangeInFlight]; the caller must
// wait for the terminal update or cancel the prior exchange first. This
// keeps the transcript single-writer without locking in the accumulator.
type Chat struct {
	transport Transport
	session   *Session
	log       *zap.Logger

	mu     sync.Mutex
	active *Exchange
}

// ChatOption configures a [Chat].
type ChatOption func(*Chat)

// WithLogger sets the structured logger. Defaults to a nop logger.
func WithLogger(l *zap.Logger) ChatOption {
	return func(c *Chat) { c.log = l }
}

// NewChat creates a chat coordinator over the given transport and session.
func NewChat(t Transport, s *Session, opts ...ChatOption) *Chat {
	c := &Chat{
		transport: t,
		session:   s,
		log:       zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Session returns the session this chat operates on.
func (c *Chat) Session() *Session { return c.session }

// Transport returns the underlying transport.
func (c *Chat) Transport() Transport { return c.transport }

// Send submits one user message and returns the resulting exchange. It
// fails with [ErrUnavailable] when the session is unavailable and with
// [ErrExchangeInFlight] while a previous exchange is still streaming. An
// empty selected agent is not an error here: the bridge reports it as the
// exchange's single terminal error item, matching the original client.
func (c *Chat) Send(ctx context.Context, text string) (*Exchange, error) {
	if !c.session.Available() {
		return nil, ErrUnavailable
	}

	c.mu.Lock()
	if c.active != nil {
		c.mu.Unlock()
		return nil, ErrExchangeInFlight
	}

	req := SendRequest{
		Text:          text,
		AgentID:       c.session.AgentID,
		ShowReasoning: c.session.ShowReasoning,
	}
	cl := Classifier{ShowReasoning: c.session.ShowReasoning}

	// Label is resolved from session state at first-chunk time, not now.
	agentName := func() string { return c.session.AgentName }

	e := &Exchange{
		bridge: StartBridge(ctx, c.transport, cl, req),
		acc:    NewAccumulator(agentName),
		chat:   c,
	}
	c.active = e
	c.mu.Unlock()

	c.log.Debug("exchange started",
		zap.String("agent_id", req.AgentID),
		zap.Bool("show_reasoning", req.ShowReasoning),
		zap.Int("text_len", len(text)),
	)
	return e, nil
}

// release clears the active exchange slot if e still holds it.
func (c *Chat) release(e *Exchange) {
	c.mu.Lock()
	if c.active == e {
		c.active = nil
	}
	c.mu.Unlock()
}
