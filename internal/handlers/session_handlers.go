package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"llamachat-backend/internal/auth"
	"llamachat-backend/internal/config"
	"llamachat-backend/internal/models"
	"llamachat-backend/pkg/httputil"
)

// SessionHandlers handles the passphrase exchange that gates the chat API.
type SessionHandlers struct {
	cfg *config.Config
}

// NewSessionHandlers creates a new SessionHandlers instance.
func NewSessionHandlers(cfg *config.Config) *SessionHandlers {
	return &SessionHandlers{cfg: cfg}
}

// HandleCreateSession verifies the shared passphrase and issues a signed
// session token. The passphrase is checked server-side so the client never
// ships the secret in its assets.
func (h *SessionHandlers) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !auth.VerifyPassphrase(req.Passphrase, h.cfg.AccessPassphrase, h.cfg.AccessPassphraseHash) {
		httputil.RespondError(w, http.StatusUnauthorized, "Invalid passphrase")
		return
	}

	token, err := auth.NewSessionToken(h.cfg.JWTSecret, h.cfg.SessionTTL)
	if err != nil {
		log.Printf("ERROR [SessionHandlers] HandleCreateSession: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.SessionResponse{AccessToken: token})
}
