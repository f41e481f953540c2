package letta

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/animus/anima"
	"go.uber.org/zap"
)

// Interface compliance check.
var _ anima.Transport = (*Client)(nil)

// Client implements [anima.Transport] for a Letta-compatible server.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *zap.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the structured logger. Defaults to a nop logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client for the server at baseURL. token may be empty for
// servers without authentication.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: http.DefaultClient,
		log:        zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Health checks that the server is reachable.
func (c *Client) Health(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, healthPath, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("letta: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return parseHTTPError(resp)
	}
	return nil
}

// ListAgents returns the agents available on the server.
func (c *Client) ListAgents(ctx context.Context) ([]anima.Agent, error) {
	req, err := c.newRequest(ctx, http.MethodGet, agentsPath, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("letta: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, parseHTTPError(resp)
	}

	var raw []apiAgent
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("letta: failed to parse agent list: %w", err)
	}

	agents := make([]anima.Agent, 0, len(raw))
	for _, a := range raw {
		model := a.Model
		if model == "" && a.LLMConfig != nil {
			model = a.LLMConfig.Model
		}
		// Strip the provider prefix ("openai/gpt-4.1" -> "gpt-4.1").
		if i := strings.LastIndex(model, "/"); i >= 0 {
			model = model[i+1:]
		}
		agents = append(agents, anima.Agent{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			Model:       model,
		})
	}
	return agents, nil
}

// Stream submits one user message with token streaming enabled and returns
// the blocking reply stream.
func (c *Client) Stream(ctx context.Context, req anima.SendRequest) (anima.ChunkSource, error) {
	if req.AgentID == "" {
		return nil, anima.ErrNoAgentSelected
	}

	body, err := json.Marshal(apiRequest{
		Messages:     []apiMessage{{Role: "user", Content: req.Text}},
		StreamTokens: true,
	})
	if err != nil {
		return nil, fmt.Errorf("letta: %w", err)
	}

	path := agentsPath + req.AgentID + "/messages/stream"
	httpReq, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("letta: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, parseHTTPError(resp)
	}

	c.log.Debug("stream opened", zap.String("agent_id", req.AgentID))
	return newStream(resp.Body), nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("letta: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("letta: HTTP %d (failed to read body: %w)", resp.StatusCode, err)
	}
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil {
		if apiErr.Detail != "" {
			return fmt.Errorf("letta: HTTP %d: %s", resp.StatusCode, apiErr.Detail)
		}
		if apiErr.Message != "" {
			return fmt.Errorf("letta: HTTP %d: %s", resp.StatusCode, apiErr.Message)
		}
	}
	return fmt.Errorf("letta: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
