package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

// NewUpdateToken returns 32 random bytes, hex encoded.
func NewUpdateToken() (string, error) {
	return randomHex(32)
}

// HashToken returns the hex SHA-256 digest stored in place of a raw token.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
