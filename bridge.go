package anima

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

// handoffBuffer bounds the single-producer/single-consumer hand-off queue
// between the transport worker and the consumer.
const handoffBuffer = 256

// Bridge converts a blocking [ChunkSource] into a cancellable, ordered
// sequence of [Item] values consumable without blocking the caller's
// control flow. Exactly one worker goroutine drives the source; the
// consumer pulls from the hand-off channel via [Bridge.Next] or
// [Bridge.Items].
type Bridge struct {
	items      chan Item
	cancel     context.CancelFunc
	cancelOnce sync.Once
}

// StartBridge starts the exchange described by req. If req.AgentID is
// empty the returned bridge yields a single ItemError wrapping
// [ErrNoAgentSelected] and no worker is spawned.
//
// The worker catches any panic and any error from obtaining or iterating
// the source, converting it to a single terminal ItemError; a fault never
// crosses the bridge boundary uncaught, and the sequence always ends with
// exactly one ItemDone or ItemError before the channel closes.
func StartBridge(ctx context.Context, t Transport, c Classifier, req SendRequest) *Bridge {
	if req.AgentID == "" {
		b := &Bridge{items: make(chan Item, 1)}
		b.items <- ItemError{Err: ErrNoAgentSelected}
		close(b.items)
		return b
	}

	ctx, cancel := context.WithCancel(ctx)
	b := &Bridge{
		items:  make(chan Item, handoffBuffer),
		cancel: cancel,
	}
	go b.work(ctx, t, c, req)
	return b
}

func (b *Bridge) work(ctx context.Context, t Transport, c Classifier, req SendRequest) {
	defer close(b.items)
	defer func() {
		if r := recover(); r != nil {
			b.push(ctx, ItemError{Err: fmt.Errorf("stream worker: %v", r)})
		}
	}()

	src, err := t.Stream(ctx, req)
	if err != nil {
		b.push(ctx, ItemError{Err: err})
		return
	}
	defer src.Close()

	for {
		raw, err := src.Next()
		if errors.Is(err, io.EOF) {
			b.push(ctx, ItemDone{})
			return
		}
		if err != nil {
			b.push(ctx, ItemError{Err: err})
			return
		}
		if !b.push(ctx, ItemChunk{Chunk: c.Classify(raw)}) {
			return
		}
	}
}

// push delivers an item unless the bridge has been cancelled. Returning
// false tells the worker to stop; the consumer has stopped observing.
func (b *Bridge) push(ctx context.Context, it Item) bool {
	select {
	case b.items <- it:
		return true
	case <-ctx.Done():
		return false
	}
}

// Items exposes the hand-off channel directly. The channel preserves
// transport order and is closed after the terminal item.
func (b *Bridge) Items() <-chan Item {
	return b.items
}

// Next returns the next item in transport order. It returns io.EOF once
// the sequence is exhausted and ctx.Err() if ctx is cancelled first, so a
// consumer polling with a deadline or cancellable context stays responsive
// even when the underlying transport stalls forever.
func (b *Bridge) Next(ctx context.Context) (Item, error) {
	select {
	case it, ok := <-b.items:
		if !ok {
			return nil, io.EOF
		}
		return it, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Cancel stops the exchange. The worker is released at its next hand-off
// or source call boundary; if the transport offers no interrupt primitive
// the blocking call is abandoned rather than killed. Cancel is idempotent
// and safe to call after the sequence has ended.
func (b *Bridge) Cancel() {
	b.cancelOnce.Do(func() {
		if b.cancel != nil {
			b.cancel()
		}
	})
}
