package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateRequestID returns a new random request id
func GenerateRequestID() string {
	return uuid.NewString()
}

// ValidRequestID reports whether a client supplied id is safe to echo back
// and log: printable ASCII without spaces, at most 128 bytes.
func ValidRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	return strings.IndexFunc(id, func(r rune) bool {
		return r <= ' ' || r > '~'
	}) < 0
}
