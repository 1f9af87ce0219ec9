package models

import (
	"time"
)

// Role identifies the author of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation.
// This structure is what's stored in the JSONB messages field of the
// 'conversations' table. Messages are immutable once stored; insertion
// order is the conversation order and defines recency for context windowing.
type Message struct {
	Role      Role      `json:"role"`      // "user", "assistant" or "system"
	Content   string    `json:"content"`   // The text content of the message
	Timestamp time.Time `json:"timestamp"` // Time the message was recorded
}
