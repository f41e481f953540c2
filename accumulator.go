package anima

import (
	"strings"
	"time"
)

// ExchangeState is the lifecycle state of one exchange's accumulator.
type ExchangeState int

const (
	StateIdle      ExchangeState = iota // No displayable chunk applied yet.
	StateStreaming                      // Chunks arriving.
	StateFinalized                      // Terminal signal applied; turns are immutable.
)

// FallbackAgentLabel is used when the agent's display name cannot be
// resolved. Label resolution failures never abort a stream.
const FallbackAgentLabel = "Assistant"

// ReasoningLabel is the fixed label for reasoning turns.
const ReasoningLabel = "Reasoning"

// ErrorLabel is the fixed label for error turns appended after partial
// content has already streamed.
const ErrorLabel = "Error"

// Accumulator owns the in-progress reply state for a single exchange. It
// merges content chunks into one growing agent turn and reasoning chunks
// into sibling reasoning segments, emitting a TurnUpdate per applied item.
//
// It is not safe for concurrent use; the bridge's consumer side is its only
// caller, so no locking is needed.
type Accumulator struct {
	agentLabel func() string

	state ExchangeState
	turns []*Turn

	resolvedLabel string
	resolved      bool

	agentIdx   int // open agent turn, -1 when none
	lastOpened int // most recently opened turn, -1 when none
	lastMoved  int // last turn an update was emitted for, -1 when none
}

// NewAccumulator creates an accumulator for one exchange. agentLabel is
// invoked lazily when the first agent turn opens and its result memoized;
// a nil func or an empty result falls back to [FallbackAgentLabel].
func NewAccumulator(agentLabel func() string) *Accumulator {
	return &Accumulator{
		agentLabel: agentLabel,
		agentIdx:   -1,
		lastOpened: -1,
		lastMoved:  -1,
	}
}

// State returns the accumulator's lifecycle state.
func (a *Accumulator) State() ExchangeState { return a.state }

// Turns returns a snapshot of the exchange's turns in emission order.
func (a *Accumulator) Turns() []Turn {
	out := make([]Turn, len(a.turns))
	for i, t := range a.turns {
		out[i] = *t
	}
	return out
}

// Apply folds one stream item into the exchange. The returned bool reports
// whether an update was produced; empty and Unknown chunks are dropped
// silently, and re-applying a terminal signal after finalization is a
// no-op to tolerate at-least-once terminal delivery.
func (a *Accumulator) Apply(it Item) (TurnUpdate, bool) {
	switch it := it.(type) {
	case ItemChunk:
		return a.applyChunk(it.Chunk)
	case ItemError:
		return a.applyError(it.Err)
	case ItemDone:
		return a.applyDone()
	default:
		return TurnUpdate{}, false
	}
}

func (a *Accumulator) applyChunk(ch Chunk) (TurnUpdate, bool) {
	if a.state == StateFinalized || ch.Empty() {
		return TurnUpdate{}, false
	}
	a.state = StateStreaming
	text := normalizeNewlines(ch.Text)

	switch ch.Kind {
	case KindContent:
		if a.agentIdx < 0 {
			a.agentIdx = a.open(RoleAgent, a.resolveAgentLabel())
		}
		return a.append(a.agentIdx, text), true

	case KindReasoning, KindHiddenReasoning:
		// Reasoning merges into the most recently opened turn only while
		// that turn is still the reasoning segment. Once content has opened
		// the agent turn, later reasoning starts a fresh segment instead of
		// reopening the earlier one.
		idx := a.lastOpened
		if idx < 0 || a.turns[idx].Role != RoleReasoning {
			idx = a.open(RoleReasoning, ReasoningLabel)
		}
		return a.append(idx, text), true

	default:
		return TurnUpdate{}, false
	}
}

func (a *Accumulator) applyError(err error) (TurnUpdate, bool) {
	if a.state == StateFinalized {
		return TurnUpdate{}, false
	}
	a.state = StateFinalized

	msg := "Error: " + err.Error()
	idx := a.agentIdx
	if idx < 0 {
		// Nothing streamed yet: the error becomes the reply.
		idx = a.open(RoleAgent, a.resolveAgentLabel())
		up := a.append(idx, msg)
		up.Final = true
		return up, true
	}
	// Partial content is preserved; the failure is appended as its own turn.
	idx = a.open(RoleSystem, ErrorLabel)
	up := a.append(idx, msg)
	up.Final = true
	return up, true
}

func (a *Accumulator) applyDone() (TurnUpdate, bool) {
	if a.state == StateFinalized {
		return TurnUpdate{}, false
	}
	a.state = StateFinalized
	if a.lastMoved < 0 {
		// Empty stream: terminal signal with no turn attached.
		return TurnUpdate{Seq: -1, Role: RoleAgent, Final: true}, true
	}
	t := a.turns[a.lastMoved]
	return TurnUpdate{
		Seq:     a.lastMoved,
		Role:    t.Role,
		Label:   t.Label,
		Content: t.Content,
		Final:   true,
	}, true
}

func (a *Accumulator) open(role Role, label string) int {
	a.turns = append(a.turns, &Turn{
		Role:      role,
		Label:     label,
		CreatedAt: time.Now(),
	})
	idx := len(a.turns) - 1
	a.lastOpened = idx
	return idx
}

func (a *Accumulator) append(idx int, text string) TurnUpdate {
	t := a.turns[idx]
	t.Content += text
	a.lastMoved = idx
	return TurnUpdate{
		Seq:     idx,
		Role:    t.Role,
		Label:   t.Label,
		Content: t.Content,
	}
}

func (a *Accumulator) resolveAgentLabel() string {
	if !a.resolved {
		a.resolved = true
		if a.agentLabel != nil {
			a.resolvedLabel = a.agentLabel()
		}
		if a.resolvedLabel == "" {
			a.resolvedLabel = FallbackAgentLabel
		}
	}
	return a.resolvedLabel
}

// normalizeNewlines converts literal backslash-n escape sequences, which
// some servers emit instead of real line breaks, into actual newlines.
func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
