package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"llamachat-backend/internal/completion"
	"llamachat-backend/internal/models"
	"llamachat-backend/internal/services"
	"llamachat-backend/internal/store"
	"llamachat-backend/pkg/httputil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ConversationHandlers handles HTTP requests related to conversations.
type ConversationHandlers struct {
	conversationService *services.ConversationService
}

// NewConversationHandlers creates a new ConversationHandlers instance.
func NewConversationHandlers(conversationService *services.ConversationService) *ConversationHandlers {
	return &ConversationHandlers{
		conversationService: conversationService,
	}
}

// HandleCreateConversation handles requests to create a new empty
// conversation.
func (h *ConversationHandlers) HandleCreateConversation(w http.ResponseWriter, r *http.Request) {
	id, err := h.conversationService.CreateConversation(r.Context())
	if err != nil {
		log.Printf("ERROR [ConversationHandlers] HandleCreateConversation: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to create conversation")
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, models.CreateConversationResponse{ConversationID: id})
}

// HandleGetMessages returns the full transcript of a conversation.
func (h *ConversationHandlers) HandleGetMessages(w http.ResponseWriter, r *http.Request) {
	conversationID, ok := conversationIDFromURL(w, r)
	if !ok {
		return
	}

	messages, err := h.conversationService.GetMessages(r.Context(), conversationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Conversation not found")
			return
		}
		log.Printf("ERROR [ConversationHandlers] HandleGetMessages: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch messages")
		return
	}

	resp := make([]models.MessageResponse, 0, len(messages))
	for _, m := range messages {
		resp = append(resp, models.MessageResponse{
			Role:      m.Role,
			Content:   m.Content,
			Timestamp: m.Timestamp,
		})
	}
	httputil.RespondJSON(w, http.StatusOK, resp)
}

// HandlePostMessage processes one user turn and returns the assistant reply.
func (h *ConversationHandlers) HandlePostMessage(w http.ResponseWriter, r *http.Request) {
	conversationID, ok := conversationIDFromURL(w, r)
	if !ok {
		return
	}

	var req models.PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reply, err := h.conversationService.PostMessage(r.Context(), conversationID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyContent):
			httputil.RespondError(w, http.StatusBadRequest, "Missing message content")
		case errors.Is(err, store.ErrNotFound):
			httputil.RespondError(w, http.StatusNotFound, "Conversation not found")
		default:
			var upstreamErr *completion.UpstreamError
			if errors.As(err, &upstreamErr) {
				// Full provider detail goes to the log, not the client.
				log.Printf("ERROR [ConversationHandlers] HandlePostMessage: upstream failure: %v", upstreamErr)
			} else {
				log.Printf("ERROR [ConversationHandlers] HandlePostMessage: %v", err)
			}
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to process message")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.PostMessageResponse{Reply: reply})
}

// conversationIDFromURL parses the {conversationID} URL parameter. An
// unparseable ID is indistinguishable from an unknown one to the caller.
func conversationIDFromURL(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "conversationID")
	id, err := uuid.Parse(idStr)
	if err != nil {
		httputil.RespondError(w, http.StatusNotFound, "Conversation not found")
		return uuid.Nil, false
	}
	return id, true
}
