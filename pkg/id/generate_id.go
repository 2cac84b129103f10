// Package id generates opaque public tokens. Entity identifiers come from
// the sequence allocator; these tokens only name requests (idempotency keys)
// and actors at the HTTP boundary.
package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID32 returns exactly 32 lowercase hex characters, no separators.
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
