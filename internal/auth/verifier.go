package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// Verifier checks a presented password against a credential's stored secret.
// The credential set and the role/capability model are identical across
// implementations; only the secret comparison differs.
type Verifier interface {
	// Verify reports whether password matches the stored secret.
	Verify(secret, password string) bool
}

// PlainVerifier compares plaintext secrets in constant time. It backs the
// compiled-in demo credential set.
type PlainVerifier struct{}

// Verify reports whether password equals the plaintext secret.
func (PlainVerifier) Verify(secret, password string) bool {
	return subtle.ConstantTimeCompare([]byte(secret), []byte(password)) == 1
}

// BcryptVerifier compares passwords against bcrypt-hashed secrets, for
// credential sets that do not carry plaintext.
type BcryptVerifier struct{}

// Verify reports whether password matches the bcrypt hash in secret.
func (BcryptVerifier) Verify(secret, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(secret), []byte(password)) == nil
}
