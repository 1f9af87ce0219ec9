package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"llamachat-backend/internal/models"
	"llamachat-backend/internal/prompt"
	"llamachat-backend/internal/store"

	"github.com/google/uuid"
)

// CompletionGateway is the upstream provider dependency of the conversation
// service. Implemented by completion.Client; stubbed in tests.
type CompletionGateway interface {
	Complete(ctx context.Context, messages []models.Message) (string, error)
}

// ConversationService orchestrates conversation turns: it owns the
// append-user → assemble-context → call-gateway → append-assistant →
// persist sequence.
type ConversationService struct {
	store     store.Store
	assembler *prompt.Assembler
	gateway   CompletionGateway
}

// NewConversationService creates a new ConversationService.
func NewConversationService(st store.Store, assembler *prompt.Assembler, gateway CompletionGateway) *ConversationService {
	return &ConversationService{
		store:     st,
		assembler: assembler,
		gateway:   gateway,
	}
}

// CreateConversation creates a new empty conversation and returns its ID.
func (s *ConversationService) CreateConversation(ctx context.Context) (uuid.UUID, error) {
	conv, err := s.store.CreateConversation(ctx, uuid.New())
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create conversation in store: %w", err)
	}
	return conv.ID, nil
}

// GetMessages returns the full stored transcript of a conversation, oldest
// first. Returns store.ErrNotFound for an unknown ID.
func (s *ConversationService) GetMessages(ctx context.Context, conversationID uuid.UUID) ([]models.Message, error) {
	conv, err := s.store.GetConversationByID(ctx, conversationID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, err // Propagate not found error
		}
		return nil, fmt.Errorf("failed to get conversation from store: %w", err)
	}

	messages, err := conv.DecodeMessages()
	if err != nil {
		return nil, fmt.Errorf("failed to parse conversation transcript: %w", err)
	}
	return messages, nil
}

// PostMessage processes one turn: validates the input, assembles the bounded
// context from history, calls the completion gateway, and on success
// persists the user and assistant messages together. If the gateway call
// fails, nothing is persisted, so a failed turn leaves no unanswered user
// message dangling in the transcript.
func (s *ConversationService) PostMessage(ctx context.Context, conversationID uuid.UUID, text string) (string, error) {
	content := strings.TrimSpace(text)
	if content == "" {
		return "", ErrEmptyContent
	}

	conv, err := s.store.GetConversationByID(ctx, conversationID)
	if err != nil {
		if err == store.ErrNotFound {
			return "", err
		}
		return "", fmt.Errorf("failed to get conversation: %w", err)
	}

	history, err := conv.DecodeMessages()
	if err != nil {
		return "", fmt.Errorf("failed to parse conversation transcript: %w", err)
	}

	userMessage := models.Message{
		Role:      models.RoleUser,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}

	// The window is computed over history as it stood before this turn; the
	// in-flight user message rides on top of it.
	assembled := append(s.assembler.Assemble(history), userMessage)

	reply, err := s.gateway.Complete(ctx, assembled)
	if err != nil {
		return "", err
	}

	assistantMessage := models.Message{
		Role:      models.RoleAssistant,
		Content:   reply,
		Timestamp: time.Now().UTC(),
	}

	updated := append(history, userMessage, assistantMessage)
	encoded, err := json.Marshal(updated)
	if err != nil {
		return "", fmt.Errorf("failed to marshal transcript: %w", err)
	}

	if err := s.store.UpdateConversationMessages(ctx, conversationID, encoded); err != nil {
		return "", fmt.Errorf("failed to persist turn: %w", err)
	}

	return reply, nil
}
