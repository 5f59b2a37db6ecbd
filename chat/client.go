package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	// ErrService is returned when the chat service reports an error.
	ErrService = errors.New("chat service error")
	// ErrNoReply is returned for responses without any choice.
	ErrNoReply = errors.New("chat service sent no reply")
)

// Request defaults.
const (
	DefaultModel       = "gpt-4"
	DefaultMaxTokens   = 500
	DefaultTemperature = 0.7
)

// Client asks questions to a chat completion service.
type Client struct {
	endpoint    string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithModel selects the model to ask.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithMaxTokens limits the length of replies.
func WithMaxTokens(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxTokens = n
		}
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) ClientOption {
	return func(c *Client) { c.temperature = t }
}

// WithTimeout sets the timeout of a single request.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a client posting to endpoint.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:    endpoint,
		model:       DefaultModel,
		maxTokens:   DefaultMaxTokens,
		temperature: DefaultTemperature,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type response struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error json.RawMessage `json:"error"`
}

// Ask puts a question to the service and returns immediately. The question
// is added to conv right away, the reply once it has arrived; a failed
// request leaves the conversation usable for the next question.
func (c *Client) Ask(ctx context.Context, conv *Conversation, system, question string) *Pending {
	conv.Add(User, question)
	msgs := append([]Message{{Role: System, Content: system}}, conv.History()...)
	ctx, cancel := context.WithCancel(ctx)
	p := newPending(cancel)
	go func() {
		reply, err := c.complete(ctx, msgs)
		if err != nil {
			tracer().Errorf("chat request failed: %v", err)
			p.resolve(Result{Err: err})
			return
		}
		conv.Add(Assistant, reply)
		p.resolve(Result{Reply: reply})
	}()
	return p
}

func (c *Client) complete(ctx context.Context, msgs []Message) (string, error) {
	body, err := json.Marshal(request{
		Model:       c.model,
		Messages:    msgs,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	tracer().Debugf("asking %s with %d messages", c.model, len(msgs))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	var r response
	if err := json.Unmarshal(data, &r); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("%w: status %d", ErrService, resp.StatusCode)
		}
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(r.Error) > 0 && string(r.Error) != "null" {
		return "", fmt.Errorf("%w: %s", ErrService, r.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrService, resp.StatusCode)
	}
	if len(r.Choices) == 0 {
		return "", ErrNoReply
	}
	return r.Choices[0].Message.Content, nil
}
