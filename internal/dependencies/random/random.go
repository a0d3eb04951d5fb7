package random

import (
	"crypto/rand"
	"encoding/hex"
)

// tokenBytes is the entropy of a session token
const tokenBytes = 32

// Random provides random values that can be mocked for testing
type Random interface {
	// Token returns an unguessable hex-encoded token
	Token() string
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Token returns 32 random bytes, hex encoded
func (r *CryptoRandom) Token() string {
	b := make([]byte, tokenBytes)
	// crypto/rand.Read never returns an error on supported platforms
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
