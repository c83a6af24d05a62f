// Package security provides password hashing and the minting of the opaque
// bearer credentials used by anonymous guests: the long-lived per-wishlist
// guest token and the short-lived single-use recovery token.
package security

import (
	"crypto/rand"
	"encoding/hex"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword takes a plaintext password and returns its bcrypt hash.
// If an error occurs during hashing, it logs the error and returns the
// resulting hash as a string.
func HashPassword(password string) string {
	passwordBytes := []byte(password)
	hash, err := bcrypt.GenerateFromPassword(passwordBytes, bcrypt.DefaultCost)
	if err != nil {
		log.Print(err.Error())
	}
	return string(hash)
}

// CheckPassword compares a bcrypt hashed password with its possible
// plaintext equivalent. It returns nil on success, or an error on failure
// indicating that the passwords do not match.
func CheckPassword(hashedPassword, userPassword string) error {
	hashedPasswordBytes := []byte(hashedPassword)
	userPasswordBytes := []byte(userPassword)

	err := bcrypt.CompareHashAndPassword(hashedPasswordBytes, userPasswordBytes)
	return err
}

// NewGuestToken mints an unguessable guest bearer token. Tokens are scoped
// per wishlist by the caller; the same visitor gets a different token for
// each wishlist they act on.
func NewGuestToken() string {
	return uuid.NewString()
}

// NewRecoveryToken mints a 256-bit random token for guest identity
// recovery links.
func NewRecoveryToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		log.Print(err.Error())
	}
	return hex.EncodeToString(buf)
}
