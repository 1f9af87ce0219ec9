package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"llamachat-backend/internal/clipboard"
	"llamachat-backend/internal/models"

	"github.com/google/uuid"
)

// State is the client session state.
type State int

const (
	// Uninitialized means no conversation exists yet; sends are refused.
	Uninitialized State = iota
	// Ready means a conversation exists and a send may be issued.
	Ready
	// Sending means a turn is in flight; duplicate sends are refused.
	Sending
)

// ErrorReply is the synthetic assistant line shown when a send fails.
const ErrorReply = "Sorry, something went wrong. Please try again."

// API is the server surface the session depends on. Implemented by Client;
// stubbed in tests.
type API interface {
	CreateConversation(ctx context.Context) (uuid.UUID, error)
	PostMessage(ctx context.Context, conversationID uuid.UUID, content string) (string, error)
}

// Session holds the client-side conversation state: the visible message
// list, the pending attachment, and the send state machine
// Uninitialized → Ready → (Sending → Ready)*.
type Session struct {
	mu             sync.Mutex
	api            API
	state          State
	conversationID uuid.UUID
	messages       []models.Message
	attachment     *Attachment
}

// NewSession creates a session in the Uninitialized state.
func NewSession(api API) *Session {
	return &Session{api: api}
}

// Start eagerly creates the conversation. On failure the session stays
// Uninitialized and every send is refused client-side.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.api.CreateConversation(ctx)
	if err != nil {
		return err
	}
	s.conversationID = id
	s.state = Ready
	return nil
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Messages returns a copy of the visible message list.
func (s *Session) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Attachment returns the pending attachment, or nil.
func (s *Session) Attachment() *Attachment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attachment
}

// AttachFile validates and holds a file in memory for the next send.
// Nothing is transmitted until Send is called.
func (s *Session) AttachFile(filename, mimeType string, data []byte) error {
	att, err := NewAttachment(filename, mimeType, data)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.attachment = att
	s.mu.Unlock()
	return nil
}

// Send transmits one user turn. It is a no-op when the trimmed text is
// empty and no file is attached, or when the session is not Ready. The
// attachment block (if any) is prepended to the transmitted content but the
// locally rendered user bubble shows only the free text. On failure a fixed
// fallback assistant line is appended instead of the reply. The attachment
// and pending input are cleared after the attempt regardless of outcome.
// Returns true if a send was actually attempted.
func (s *Session) Send(ctx context.Context, text string) bool {
	freeText := strings.TrimSpace(text)

	s.mu.Lock()
	if s.state != Ready {
		s.mu.Unlock()
		return false
	}
	att := s.attachment
	if freeText == "" && att == nil {
		s.mu.Unlock()
		return false
	}

	content := freeText
	if att != nil {
		content = att.InlineBlock() + "\n" + freeText
	}

	// Optimistic rendering: the user bubble appears before the reply, and
	// only the free-text portion is shown.
	s.state = Sending
	s.attachment = nil
	s.messages = append(s.messages, models.Message{
		Role:      models.RoleUser,
		Content:   freeText,
		Timestamp: time.Now(),
	})
	conversationID := s.conversationID
	s.mu.Unlock()

	reply, err := s.api.PostMessage(ctx, conversationID, content)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		reply = ErrorReply
	}
	s.messages = append(s.messages, models.Message{
		Role:      models.RoleAssistant,
		Content:   reply,
		Timestamp: time.Now(),
	})
	s.state = Ready
	return true
}

// Transcript serializes the visible message list to plain text:
// "Role: content" per message, blank-line separated.
func (s *Session) Transcript() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	parts := make([]string, 0, len(s.messages))
	for _, m := range s.messages {
		parts = append(parts, titleRole(m.Role)+": "+m.Content)
	}
	return strings.Join(parts, "\n\n")
}

// CopyTranscript pushes the transcript through the clipboard fallback
// chain. It never fails; the worst case is the chain's manual surface.
func (s *Session) CopyTranscript(chain *clipboard.Chain) clipboard.Method {
	return chain.Copy(s.Transcript())
}

func titleRole(r models.Role) string {
	str := string(r)
	if str == "" {
		return str
	}
	return strings.ToUpper(str[:1]) + str[1:]
}
