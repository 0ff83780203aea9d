// Package id generates the 32-hex request ids used for echo's X-Request-ID
// and accepted as Ax-Request-Id by the idempotency middleware.
package id

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

// NewID32 returns exactly 32 lowercase hex characters (16 random bytes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// IsID32 reports whether s has the NewID32 format.
func IsID32(s string) bool { return reHex32.MatchString(s) }
