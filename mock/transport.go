// Package mock provides test doubles for anima interfaces using function fields.
package mock

import (
	"context"

	"github.com/animus/anima"
)

// Interface compliance checks.
var (
	_ anima.Transport   = (*Transport)(nil)
	_ anima.ChunkSource = (*Source)(nil)
)

// Transport is a test double for anima.Transport.
// Set the function fields for the methods you need. StreamFn panics when
// nil to catch missing setup; ListAgentsFn and HealthFn are nil-safe (empty
// list, healthy) because most tests never touch them.
type Transport struct {
	StreamFn     func(ctx context.Context, req anima.SendRequest) (anima.ChunkSource, error)
	ListAgentsFn func(ctx context.Context) ([]anima.Agent, error)
	HealthFn     func(ctx context.Context) error
}

// Stream delegates to StreamFn.
func (t *Transport) Stream(ctx context.Context, req anima.SendRequest) (anima.ChunkSource, error) {
	return t.StreamFn(ctx, req)
}

// ListAgents delegates to ListAgentsFn. Returns an empty list when nil.
func (t *Transport) ListAgents(ctx context.Context) ([]anima.Agent, error) {
	if t.ListAgentsFn == nil {
		return nil, nil
	}
	return t.ListAgentsFn(ctx)
}

// Health delegates to HealthFn. Reports healthy when nil.
func (t *Transport) Health(ctx context.Context) error {
	if t.HealthFn == nil {
		return nil
	}
	return t.HealthFn(ctx)
}
