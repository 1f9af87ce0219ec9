package prompt

import (
	"llamachat-backend/internal/models"
)

// Assembler builds the bounded context sent to the completion provider on
// each turn: one system message followed by a sliding window over the
// conversation's stored history.
type Assembler struct {
	SystemPrompt string
	WindowSize   int // number of history messages to include, must be > 0
}

func NewAssembler(systemPrompt string, windowSize int) *Assembler {
	return &Assembler{
		SystemPrompt: systemPrompt,
		WindowSize:   windowSize,
	}
}

// Assemble returns the system prompt followed by the last WindowSize
// messages of history, in original chronological order. If history is
// shorter than the window, all of it is included. Truncation silently drops
// the oldest messages; there is no summarization or token-budget awareness.
//
// History is the transcript as stored before the current user turn; the
// caller appends the in-flight user message afterwards.
func (a *Assembler) Assemble(history []models.Message) []models.Message {
	start := 0
	if len(history) > a.WindowSize {
		start = len(history) - a.WindowSize
	}
	window := history[start:]

	messages := make([]models.Message, 0, 1+len(window)+1)
	messages = append(messages, models.Message{Role: models.RoleSystem, Content: a.SystemPrompt})
	messages = append(messages, window...)
	return messages
}
