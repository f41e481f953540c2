package anima_test

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/animus/anima"
	"github.com/animus/anima/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, b *anima.Bridge) []anima.Item {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var items []anima.Item
	for {
		it, err := b.Next(ctx)
		if err == io.EOF {
			return items
		}
		require.NoError(t, err)
		items = append(items, it)
	}
}

func TestBridge_PreservesTransportOrder(t *testing.T) {
	t.Parallel()
	tr := &mock.Transport{
		StreamFn: func(ctx context.Context, req anima.SendRequest) (anima.ChunkSource, error) {
			return mock.Script([]anima.RawItem{
				{MessageType: anima.TypeAssistantMessage, Content: "Hello"},
				{MessageType: anima.TypeAssistantMessage, Content: " world"},
			}, nil), nil
		},
	}

	b := anima.StartBridge(context.Background(), tr, anima.Classifier{}, anima.SendRequest{AgentID: "agent-1"})
	items := drain(t, b)

	require.Len(t, items, 3)
	assert.Equal(t, "Hello", items[0].(anima.ItemChunk).Chunk.Text)
	assert.Equal(t, " world", items[1].(anima.ItemChunk).Chunk.Text)
	assert.IsType(t, anima.ItemDone{}, items[2])
}

func TestBridge_EmptyAgentID(t *testing.T) {
	t.Parallel()
	var streams atomic.Int32
	tr := &mock.Transport{
		StreamFn: func(ctx context.Context, req anima.SendRequest) (anima.ChunkSource, error) {
			streams.Add(1)
			return mock.Script(nil, nil), nil
		},
	}

	b := anima.StartBridge(context.Background(), tr, anima.Classifier{}, anima.SendRequest{})

	it, err := b.Next(context.Background())
	require.NoError(t, err)
	itemErr, ok := it.(anima.ItemError)
	require.True(t, ok)
	assert.ErrorIs(t, itemErr.Err, anima.ErrNoAgentSelected)

	_, err = b.Next(context.Background())
	assert.Equal(t, io.EOF, err)
	// No worker is spawned for the precondition failure.
	assert.Zero(t, streams.Load())
}

func TestBridge_StreamSetupErrorIsTerminal(t *testing.T) {
	t.Parallel()
	tr := &mock.Transport{
		StreamFn: func(ctx context.Context, req anima.SendRequest) (anima.ChunkSource, error) {
			return nil, errors.New("connection refused")
		},
	}

	b := anima.StartBridge(context.Background(), tr, anima.Classifier{}, anima.SendRequest{AgentID: "a"})
	items := drain(t, b)

	require.Len(t, items, 1)
	itemErr, ok := items[0].(anima.ItemError)
	require.True(t, ok)
	assert.EqualError(t, itemErr.Err, "connection refused")
}

func TestBridge_MidStreamErrorAfterChunks(t *testing.T) {
	t.Parallel()
	tr := &mock.Transport{
		StreamFn: func(ctx context.Context, req anima.SendRequest) (anima.ChunkSource, error) {
			return mock.Script([]anima.RawItem{
				{MessageType: anima.TypeAssistantMessage, Content: "partial"},
			}, errors.New("stream reset")), nil
		},
	}

	b := anima.StartBridge(context.Background(), tr, anima.Classifier{}, anima.SendRequest{AgentID: "a"})
	items := drain(t, b)

	require.Len(t, items, 2)
	assert.Equal(t, "partial", items[0].(anima.ItemChunk).Chunk.Text)
	assert.IsType(t, anima.ItemError{}, items[1])
}

func TestBridge_WorkerPanicConvertedToError(t *testing.T) {
	t.Parallel()
	tr := &mock.Transport{
		StreamFn: func(ctx context.Context, req anima.SendRequest) (anima.ChunkSource, error) {
			return &mock.Source{
				NextFn: func() (anima.RawItem, error) { panic("bad decode") },
			}, nil
		},
	}

	b := anima.StartBridge(context.Background(), tr, anima.Classifier{}, anima.SendRequest{AgentID: "a"})
	items := drain(t, b)

	require.Len(t, items, 1)
	itemErr, ok := items[0].(anima.ItemError)
	require.True(t, ok)
	assert.Contains(t, itemErr.Err.Error(), "bad decode")
}

func TestBridge_SourceClosedAfterCompletion(t *testing.T) {
	t.Parallel()
	closed := make(chan struct{})
	src := mock.Script(nil, nil)
	src.CloseFn = func() error {
		close(closed)
		return nil
	}
	tr := &mock.Transport{
		StreamFn: func(ctx context.Context, req anima.SendRequest) (anima.ChunkSource, error) {
			return src, nil
		},
	}

	b := anima.StartBridge(context.Background(), tr, anima.Classifier{}, anima.SendRequest{AgentID: "a"})
	drain(t, b)

	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("source was not closed")
	}
}

func TestBridge_CancelStopsConsumerPromptly(t *testing.T) {
	t.Parallel()
	// A transport that never produces: the consumer must still be able to
	// recover via cancellation even though the worker stays blocked.
	block := make(chan struct{})
	t.Cleanup(func() { close(block) })
	tr := &mock.Transport{
		StreamFn: func(ctx context.Context, req anima.SendRequest) (anima.ChunkSource, error) {
			return &mock.Source{
				NextFn: func() (anima.RawItem, error) {
					<-block
					return anima.RawItem{}, io.EOF
				},
			}, nil
		},
	}

	b := anima.StartBridge(context.Background(), tr, anima.Classifier{}, anima.SendRequest{AgentID: "a"})
	b.Cancel()
	b.Cancel() // idempotent

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err := b.Next(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBridge_ShowReasoningFlagReachesClassifier(t *testing.T) {
	t.Parallel()
	items := []anima.RawItem{
		{MessageType: anima.TypeReasoningMessage, Reasoning: "thinking"},
		{MessageType: anima.TypeAssistantMessage, Content: "answer"},
	}
	tr := &mock.Transport{
		StreamFn: func(ctx context.Context, req anima.SendRequest) (anima.ChunkSource, error) {
			return mock.Script(items, nil), nil
		},
	}

	b := anima.StartBridge(context.Background(), tr, anima.Classifier{ShowReasoning: false}, anima.SendRequest{AgentID: "a"})
	var kinds []anima.ChunkKind
	for _, it := range drain(t, b) {
		if ch, ok := it.(anima.ItemChunk); ok {
			kinds = append(kinds, ch.Chunk.Kind)
		}
	}
	// Reasoning never surfaces when disabled, even if the transport emits it.
	assert.Equal(t, []anima.ChunkKind{anima.KindUnknown, anima.KindContent}, kinds)
}
