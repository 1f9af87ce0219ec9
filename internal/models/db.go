package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Conversation represents a conversation record in the database.
// The full ordered transcript lives in the Messages JSONB column; the row is
// re-read and re-written whole on every turn (read-modify-write, no
// optimistic concurrency control).
type Conversation struct {
	ID        uuid.UUID       `db:"id"`
	Messages  json.RawMessage `db:"messages"` // JSON array of Message
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// DecodeMessages parses the stored JSONB transcript into a message slice.
func (c *Conversation) DecodeMessages() ([]Message, error) {
	if len(c.Messages) == 0 {
		return []Message{}, nil
	}
	var messages []Message
	if err := json.Unmarshal(c.Messages, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
