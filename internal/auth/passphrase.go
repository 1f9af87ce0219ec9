package auth

import (
	"crypto/subtle"
	"log"

	"golang.org/x/crypto/bcrypt"
)

// VerifyPassphrase checks a submitted passphrase against the configured
// gate. When a bcrypt hash is configured it takes precedence; otherwise the
// plaintext passphrase is compared in constant time.
func VerifyPassphrase(submitted, plaintext, bcryptHash string) bool {
	if bcryptHash != "" {
		return checkPassphraseHash(submitted, bcryptHash)
	}
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(plaintext)) == 1
}

// checkPassphraseHash compares a plaintext passphrase with a stored bcrypt hash.
func checkPassphraseHash(passphrase, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(passphrase))
	if err != nil {
		if err != bcrypt.ErrMismatchedHashAndPassword {
			// Log unexpected errors, but still return false for security
			log.Printf("Error comparing passphrase hash: %v", err)
		}
		return false
	}
	return true
}

// HashPassphrase generates a bcrypt hash for the given passphrase, suitable
// for the ACCESS_PASSPHRASE_HASH setting.
func HashPassphrase(passphrase string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error generating bcrypt hash: %v", err)
		return "", err
	}
	return string(bytes), nil
}
