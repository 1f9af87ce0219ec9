package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"llamachat-backend/internal/models"
)

// ErrUnrecognizedResponse is returned when the provider answers with a 2xx
// status but a body matching neither known response shape.
var ErrUnrecognizedResponse = errors.New("unrecognized completion response shape")

// UpstreamError reports a failed provider call. StatusCode is 0 for
// network-level failures (timeout, DNS, connection reset) where no HTTP
// response was received.
type UpstreamError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("completion provider returned status %d: %s", e.StatusCode, truncate(e.Body, 400))
	}
	return fmt.Sprintf("completion provider unreachable: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Client is a minimal chat-completions client for the configured provider.
// Each call is attempted exactly once; there is no retry or backoff.
type Client struct {
	apiKey     string
	url        string
	model      string
	httpClient *http.Client
}

// NewClient creates a completion client. The timeout bounds the whole
// request including body read.
func NewClient(apiKey, url, model string, timeout time.Duration) *Client {
	return &Client{
		apiKey: apiKey,
		url:    url,
		model:  model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []wireMessage `json:"messages"`
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse covers the two response shapes the provider is known to
// produce: the OpenAI-style choices array and Meta's completion_message
// envelope with a type-discriminated content object.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	CompletionMessage *struct {
		Content struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"completion_message"`
}

// Complete sends the assembled context (including the current user message)
// and returns the assistant's reply text.
func (c *Client) Complete(ctx context.Context, messages []models.Message) (string, error) {
	wire := make([]wireMessage, 0, len(messages))
	for _, m := range messages {
		wire = append(wire, wireMessage{Role: string(m.Role), Content: m.Content})
	}

	payload, err := json.Marshal(chatRequest{Model: c.model, Messages: wire})
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &UpstreamError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &UpstreamError{Err: fmt.Errorf("failed to parse completion response: %s", truncate(string(body), 400))}
	}

	// Decode by discriminant rather than silently falling back to an empty
	// reply: an unknown shape is an upstream contract violation.
	switch {
	case len(parsed.Choices) > 0:
		return parsed.Choices[0].Message.Content, nil
	case parsed.CompletionMessage != nil && parsed.CompletionMessage.Content.Type == "text":
		return parsed.CompletionMessage.Content.Text, nil
	default:
		return "", &UpstreamError{Err: ErrUnrecognizedResponse, Body: string(body)}
	}
}

func truncate(s string, maxChars int) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars])
}
