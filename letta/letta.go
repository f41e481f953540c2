// Package letta implements [anima.Transport] for a Letta-compatible agent
// server.
//
// It talks to the server's REST API directly over net/http and parses the
// streaming endpoint's SSE responses into raw items one step at a time; the
// blocking [anima.ChunkSource] it returns is driven by the bridge's worker
// goroutine.
package letta

import "encoding/json"

const (
	agentsPath = "/v1/agents/"
	healthPath = "/v1/health/"
	doneMarker = "[DONE]"
)

// apiRequest is the JSON body sent to the message streaming endpoint.
type apiRequest struct {
	Messages     []apiMessage `json:"messages"`
	StreamTokens bool         `json:"stream_tokens"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// apiAgent is one agent as returned by the list endpoint.
type apiAgent struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Model       string        `json:"model"`
	LLMConfig   *apiLLMConfig `json:"llm_config"`
}

type apiLLMConfig struct {
	Model string `json:"model"`
}

// streamMessage is one SSE data payload from the streaming endpoint.
// Servers populate different fields per message_type; all are optional.
type streamMessage struct {
	MessageType     string      `json:"message_type"`
	Content         textContent `json:"content"`
	Reasoning       textContent `json:"reasoning"`
	HiddenReasoning textContent `json:"hidden_reasoning"`
}

// textContent tolerates both a plain string and the structured
// [{"type":"text","text":...}] form some server versions emit.
type textContent string

func (t *textContent) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = textContent(s)
		return nil
	}
	var parts []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &parts); err != nil {
		// Unrecognized shape: treat as absent rather than failing the stream.
		*t = ""
		return nil
	}
	var out string
	for _, p := range parts {
		out += p.Text
	}
	*t = textContent(out)
	return nil
}

// apiErrorResponse is the JSON body returned on non-200 HTTP responses.
type apiErrorResponse struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}
