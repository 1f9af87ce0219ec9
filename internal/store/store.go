package store

import (
	"context"
	"errors"

	"llamachat-backend/internal/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a specific record is not found.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for conversation persistence.
// Conversations are treated as opaque documents: the whole message array is
// read and written as one unit. This allows for mocking in tests and
// potential DB backend switching.
type Store interface {
	// CreateConversation inserts a new conversation with an empty transcript.
	CreateConversation(ctx context.Context, id uuid.UUID) (*models.Conversation, error)

	// GetConversationByID retrieves a conversation with its full transcript.
	// Returns ErrNotFound if the conversation does not exist.
	GetConversationByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error)

	// UpdateConversationMessages replaces the stored transcript with the
	// given JSON-encoded message array. Last write wins; there is no
	// transactional isolation across concurrent turns on the same id.
	UpdateConversationMessages(ctx context.Context, id uuid.UUID, messages []byte) error
}
