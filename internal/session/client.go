package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"llamachat-backend/internal/models"

	"github.com/google/uuid"
)

// Client is the HTTP client for the conversation service.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates an API client for the given server base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 90 * time.Second, // must outlast the server's upstream call
		},
	}
}

// Authenticate exchanges the shared passphrase for a session token, which
// is attached to all subsequent requests.
func (c *Client) Authenticate(ctx context.Context, passphrase string) error {
	var resp models.SessionResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/session",
		models.CreateSessionRequest{Passphrase: passphrase}, &resp)
	if err != nil {
		return err
	}
	c.token = resp.AccessToken
	return nil
}

// CreateConversation creates a new empty conversation on the server.
func (c *Client) CreateConversation(ctx context.Context) (uuid.UUID, error) {
	var resp models.CreateConversationResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/conversation", nil, &resp); err != nil {
		return uuid.Nil, err
	}
	return resp.ConversationID, nil
}

// PostMessage sends one user turn and returns the assistant reply.
func (c *Client) PostMessage(ctx context.Context, conversationID uuid.UUID, content string) (string, error) {
	var resp models.PostMessageResponse
	path := fmt.Sprintf("/api/conversation/%s/message", conversationID)
	if err := c.doJSON(ctx, http.MethodPost, path, models.PostMessageRequest{Content: content}, &resp); err != nil {
		return "", err
	}
	return resp.Reply, nil
}

// GetMessages fetches the full stored transcript of a conversation.
func (c *Client) GetMessages(ctx context.Context, conversationID uuid.UUID) ([]models.MessageResponse, error) {
	var resp []models.MessageResponse
	path := fmt.Sprintf("/api/conversation/%s/messages", conversationID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr models.ErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("server returned status %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
