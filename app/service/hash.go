package service

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPassword returns the sha256 hex digest of plaintext concatenated with
// the process-wide password secret. It is deliberately deterministic: login
// and password change resolve the user by (email, digest) equality.
func HashPassword(plaintext, secret string) string {
	sum := sha256.Sum256([]byte(plaintext + secret))
	return hex.EncodeToString(sum[:])
}
