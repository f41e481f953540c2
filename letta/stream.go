package letta

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/animus/anima"
)

// stream implements [anima.ChunkSource] by parsing SSE events from an HTTP
// response body. Next blocks on the body read, so it must only be driven
// from the bridge's worker goroutine.
type stream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	done    bool
	err     error
}

// Interface compliance check.
var _ anima.ChunkSource = (*stream)(nil)

func newStream(body io.ReadCloser) *stream {
	return &stream{
		body:    body,
		scanner: bufio.NewScanner(body),
	}
}

// Next reads SSE events until one carries a data payload, returning it as
// a raw item. It returns io.EOF after the server's terminal marker.
func (s *stream) Next() (anima.RawItem, error) {
	if s.done {
		if s.err != nil {
			return anima.RawItem{}, s.err
		}
		return anima.RawItem{}, io.EOF
	}

	data, err := s.readSSEData()
	if err != nil {
		s.done = true
		if err != io.EOF {
			s.err = err
		}
		return anima.RawItem{}, err
	}

	var msg streamMessage
	if err := json.Unmarshal([]byte(data), &msg); err != nil {
		s.done = true
		s.err = fmt.Errorf("letta: failed to parse stream message: %w", err)
		return anima.RawItem{}, s.err
	}

	return anima.RawItem{
		MessageType:     msg.MessageType,
		Content:         string(msg.Content),
		Reasoning:       string(msg.Reasoning),
		HiddenReasoning: string(msg.HiddenReasoning),
	}, nil
}

// readSSEData reads lines until a complete SSE event with a data payload is
// assembled. The terminal "[DONE]" marker maps to io.EOF; so does a clean
// end of the body, since some server versions close without the marker.
func (s *stream) readSSEData() (string, error) {
	var dataBuf strings.Builder

	for s.scanner.Scan() {
		line := s.scanner.Text()

		if line == "" {
			// Empty line signals end of event.
			if dataBuf.Len() > 0 {
				return s.finishEvent(dataBuf.String())
			}
			continue
		}

		if strings.HasPrefix(line, "data: ") {
			if dataBuf.Len() > 0 {
				dataBuf.WriteByte('\n')
			}
			dataBuf.WriteString(strings.TrimPrefix(line, "data: "))
		}
		// Ignore comments (lines starting with ':') and other fields.
	}

	if err := s.scanner.Err(); err != nil {
		return "", fmt.Errorf("letta: %w", err)
	}
	if dataBuf.Len() > 0 {
		return s.finishEvent(dataBuf.String())
	}
	return "", io.EOF
}

func (s *stream) finishEvent(data string) (string, error) {
	if strings.TrimSpace(data) == doneMarker {
		return "", io.EOF
	}
	return data, nil
}

// Close closes the underlying HTTP response body, releasing the
// connection. Safe to call at any point during iteration.
func (s *stream) Close() error {
	s.done = true
	return s.body.Close()
}
