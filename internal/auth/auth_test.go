package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestVerifyPassphrasePlaintext(t *testing.T) {
	if !VerifyPassphrase("open-sesame", "open-sesame", "") {
		t.Error("correct plaintext passphrase rejected")
	}
	if VerifyPassphrase("wrong", "open-sesame", "") {
		t.Error("wrong plaintext passphrase accepted")
	}
	if VerifyPassphrase("", "open-sesame", "") {
		t.Error("empty passphrase accepted")
	}
}

func TestVerifyPassphraseBcryptTakesPrecedence(t *testing.T) {
	hash, err := HashPassphrase("open-sesame")
	if err != nil {
		t.Fatalf("HashPassphrase: %v", err)
	}

	if !VerifyPassphrase("open-sesame", "", hash) {
		t.Error("correct hashed passphrase rejected")
	}
	if VerifyPassphrase("wrong", "", hash) {
		t.Error("wrong passphrase accepted against hash")
	}
	// When a hash is configured the plaintext setting is ignored.
	if VerifyPassphrase("plaintext-value", "plaintext-value", hash) {
		t.Error("plaintext compared although a hash is configured")
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	secret := "test-secret"
	tokenString, err := NewSessionToken(secret, time.Hour)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("ParseWithClaims: %v", err)
	}
	if !token.Valid {
		t.Fatal("token invalid")
	}
	if claims.SessionID == uuid.Nil {
		t.Error("session ID missing from claims")
	}
	if claims.Issuer != "llamachat-backend" {
		t.Errorf("issuer = %q, want llamachat-backend", claims.Issuer)
	}
}

func TestSessionTokenRejectsWrongSecret(t *testing.T) {
	tokenString, err := NewSessionToken("secret-a", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}

	_, err = jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret-b"), nil
	})
	if err == nil {
		t.Fatal("token parsed with wrong secret")
	}
}
