package anima

import "context"

// RawItem is the duck-shaped unit produced by the transport before
// classification. Servers populate zero or more fields per item; the
// classifier decides what, if anything, each item means.
type RawItem struct {
	// MessageType is the server's explicit type tag, when present.
	MessageType string
	// Content is the generic answer payload field.
	Content string
	// Reasoning is the visible thinking payload field.
	Reasoning string
	// HiddenReasoning is the redacted/summarized thinking payload field.
	HiddenReasoning string
}

// ChunkSource is the blocking, synchronously-iterated reply stream for one
// submitted message. Next blocks until the server produces the next item
// and returns io.EOF when the stream is exhausted. It is driven only by the
// bridge's worker goroutine, never by UI-facing code.
type ChunkSource interface {
	Next() (RawItem, error)
	Close() error
}

// Agent describes one agent available on the server.
type Agent struct {
	ID          string
	Name        string
	Description string
	Model       string
}

// SendRequest carries one user message to the transport.
type SendRequest struct {
	Text          string
	AgentID       string
	ShowReasoning bool
}

// Transport is the remote agent server. Implementations must be safe for
// use from the bridge worker goroutine.
type Transport interface {
	// Stream submits the message and returns the blocking reply stream.
	Stream(ctx context.Context, req SendRequest) (ChunkSource, error)
	// ListAgents returns the agents available on the server.
	ListAgents(ctx context.Context) ([]Agent, error)
	// Health reports whether the server is reachable.
	Health(ctx context.Context) error
}
