// Package auth supplies the real password hashing the domain's
// HashedPassword carrier deliberately does not do itself.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"expensemanager/internal/core"
)

const (
	saltBytes  = 16
	keyBytes   = 32
	iterations = 100_000
)

// PBKDF2Hasher derives password hashes with PBKDF2-SHA256 and a random
// per-password salt. Hash and salt are base64-encoded separately so the
// domain can carry them as the pair it models.
type PBKDF2Hasher struct{}

// NewPBKDF2Hasher returns a hasher with the package's fixed parameters.
func NewPBKDF2Hasher() *PBKDF2Hasher {
	return &PBKDF2Hasher{}
}

// Hash derives a HashedPassword from a plaintext password.
func (h *PBKDF2Hasher) Hash(password string) (core.HashedPassword, error) {
	if password == "" {
		return core.HashedPassword{}, fmt.Errorf("password is empty")
	}

	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return core.HashedPassword{}, fmt.Errorf("generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, iterations, keyBytes, sha256.New)

	return core.NewHashedPassword(
		base64.RawStdEncoding.EncodeToString(key),
		base64.RawStdEncoding.EncodeToString(salt),
	)
}

// Verify reports whether password matches the stored hash+salt pair, using a
// constant-time comparison.
func (h *PBKDF2Hasher) Verify(password string, stored core.HashedPassword) bool {
	if password == "" || stored.IsZero() {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(stored.Salt())
	if err != nil {
		return false
	}
	expected, err := base64.RawStdEncoding.DecodeString(stored.Hash())
	if err != nil {
		return false
	}

	key := pbkdf2.Key([]byte(password), salt, iterations, len(expected), sha256.New)
	return subtle.ConstantTimeCompare(key, expected) == 1
}
