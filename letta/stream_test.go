package letta_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/animus/anima"
	"github.com/animus/anima/letta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sseResponse is a helper to build SSE responses for tests.
type sseResponse struct {
	payloads []string
}

func (s sseResponse) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		flusher, _ := w.(http.Flusher)
		for _, p := range s.payloads {
			fmt.Fprintf(w, "data: %s\n\n", p)
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}

func streamFromSSE(t *testing.T, resp sseResponse) anima.ChunkSource {
	t.Helper()
	srv := httptest.NewServer(resp.handler())
	t.Cleanup(srv.Close)
	client := letta.New(srv.URL, "test-token")
	src, err := client.Stream(context.Background(), anima.SendRequest{
		Text:    "hi",
		AgentID: "agent-1",
	})
	require.NoError(t, err)
	t.Cleanup(func() { src.Close() })
	return src
}

func TestStream_TokenStreaming(t *testing.T) {
	t.Parallel()
	src := streamFromSSE(t, sseResponse{payloads: []string{
		`{"message_type":"reasoning_message","reasoning":"thinking about it"}`,
		`{"message_type":"assistant_message","content":"Hello"}`,
		`{"message_type":"assistant_message","content":" world"}`,
		`{"message_type":"usage_statistics","total_tokens":12}`,
		`[DONE]`,
	}})

	item, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, "reasoning_message", item.MessageType)
	assert.Equal(t, "thinking about it", item.Reasoning)

	item, err = src.Next()
	require.NoError(t, err)
	assert.Equal(t, "Hello", item.Content)

	item, err = src.Next()
	require.NoError(t, err)
	assert.Equal(t, " world", item.Content)

	// Unknown message types pass through untouched; classification is not
	// the transport's job.
	item, err = src.Next()
	require.NoError(t, err)
	assert.Equal(t, "usage_statistics", item.MessageType)
	assert.Empty(t, item.Content)

	_, err = src.Next()
	assert.Equal(t, io.EOF, err)

	// EOF is sticky.
	_, err = src.Next()
	assert.Equal(t, io.EOF, err)
}

func TestStream_EndsWithoutDoneMarker(t *testing.T) {
	t.Parallel()
	src := streamFromSSE(t, sseResponse{payloads: []string{
		`{"message_type":"assistant_message","content":"bye"}`,
	}})

	item, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, "bye", item.Content)

	_, err = src.Next()
	assert.Equal(t, io.EOF, err)
}

func TestStream_StructuredContent(t *testing.T) {
	t.Parallel()
	src := streamFromSSE(t, sseResponse{payloads: []string{
		`{"message_type":"assistant_message","content":[{"type":"text","text":"part one"},{"type":"text","text":" part two"}]}`,
		`[DONE]`,
	}})

	item, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, "part one part two", item.Content)
}

func TestStream_MalformedPayloadIsTerminal(t *testing.T) {
	t.Parallel()
	src := streamFromSSE(t, sseResponse{payloads: []string{
		`{not json`,
	}})

	_, err := src.Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse stream message")

	// The error is sticky.
	_, err = src.Next()
	assert.Error(t, err)
	assert.NotEqual(t, io.EOF, err)
}

func TestStream_HiddenReasoning(t *testing.T) {
	t.Parallel()
	src := streamFromSSE(t, sseResponse{payloads: []string{
		`{"message_type":"hidden_reasoning_message","hidden_reasoning":"redacted"}`,
		`[DONE]`,
	}})

	item, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, "hidden_reasoning_message", item.MessageType)
	assert.Equal(t, "redacted", item.HiddenReasoning)
}
