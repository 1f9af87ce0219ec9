package auth

import (
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// --- Context Keys ---

// contextKey is a custom type used for context keys to avoid collisions.
type contextKey string

// SessionIDKey carries the session ID injected by the auth middleware.
const SessionIDKey contextKey = "sessionID"

// --- JWT Claims ---

// SessionClaims includes standard JWT claims plus the session identifier.
// Match this with the claims parsing in api/middleware.go.
type SessionClaims struct {
	SessionID uuid.UUID `json:"session_id"`
	jwt.RegisteredClaims
}

// NewSessionToken generates a signed session token after a successful
// passphrase exchange. There are no per-user accounts; the token only
// proves the holder passed the gate.
func NewSessionToken(jwtSecret string, ttl time.Duration) (string, error) {
	sessionID := uuid.New()
	claims := SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "llamachat-backend",
			Subject:   sessionID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		log.Printf("Error signing session token %s: %v", sessionID, err)
		return "", err
	}

	return signedToken, nil
}
