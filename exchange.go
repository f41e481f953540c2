package anima

import (
	"context"
	"io"
)

// Exchange is one request/response cycle: a bridge feeding an accumulator.
// It is exclusively owned by the caller that initiated the send; nothing
// is shared across exchanges except the transcript the caller renders to.
type Exchange struct {
	bridge *Bridge
	acc    *Accumulator
	chat   *Chat
}

// Next pulls items from the bridge and applies them until one produces a
// turn update, which it returns. Items that produce no update (empty or
// Unknown chunks) are consumed silently. After the terminal update has
// been returned, Next returns io.EOF; if ctx is cancelled first it returns
// ctx.Err() without waiting on the transport.
func (e *Exchange) Next(ctx context.Context) (TurnUpdate, error) {
	for {
		it, err := e.bridge.Next(ctx)
		if err != nil {
			if err == io.EOF || ctx.Err() != nil {
				e.chat.release(e)
			}
			return TurnUpdate{}, err
		}
		up, ok := e.acc.Apply(it)
		if !ok {
			continue
		}
		if up.Final {
			e.chat.release(e)
		}
		return up, nil
	}
}

// Apply feeds a single item through the accumulator. It is the low-level
// alternative to [Exchange.Next] for consumers that read the bridge
// channel themselves (the TUI's event loop does).
func (e *Exchange) Apply(it Item) (TurnUpdate, bool) {
	up, ok := e.acc.Apply(it)
	if ok && up.Final {
		e.chat.release(e)
	}
	return up, ok
}

// Items exposes the bridge's hand-off channel.
func (e *Exchange) Items() <-chan Item {
	return e.bridge.Items()
}

// Cancel abandons the exchange and frees the in-flight slot so a later
// send is possible immediately.
func (e *Exchange) Cancel() {
	e.bridge.Cancel()
	e.chat.release(e)
}

// Turns returns a snapshot of the turns accumulated so far.
func (e *Exchange) Turns() []Turn {
	return e.acc.Turns()
}

// State returns the exchange's lifecycle state.
func (e *Exchange) State() ExchangeState {
	return e.acc.State()
}
