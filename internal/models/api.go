package models

import (
	"time"

	"github.com/google/uuid"
)

// --- Request Structs ---

// CreateSessionRequest defines the expected body for the session endpoint.
// The passphrase is verified server-side; clients never embed it in
// shipped assets.
type CreateSessionRequest struct {
	Passphrase string `json:"passphrase"`
}

// PostMessageRequest defines the body for posting a user message to a
// conversation.
type PostMessageRequest struct {
	Content string `json:"content"`
}

// --- Response Structs ---

// SessionResponse defines the response body for a successful passphrase
// exchange.
type SessionResponse struct {
	AccessToken string `json:"access_token"`
}

// CreateConversationResponse returns the identifier of a freshly created
// (empty) conversation.
type CreateConversationResponse struct {
	ConversationID uuid.UUID `json:"conversationId"`
}

// MessageResponse is the wire form of a stored message.
type MessageResponse struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// PostMessageResponse carries the assistant's reply for one turn.
type PostMessageResponse struct {
	Reply string `json:"reply"`
}

// ErrorResponse defines the standard structure for API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}
