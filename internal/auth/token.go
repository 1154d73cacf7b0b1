package auth

import (
	"strings"

	"github.com/google/uuid"
)

// NewTokenKey generates an opaque bearer token key.
func NewTokenKey() string {
	return uuid.New().String() + uuid.New().String()
}

// ParseAuthorizationHeader extracts the token key from an
// "Authorization: Token <key>" header value. Returns "" when the header is
// absent or uses a different scheme.
func ParseAuthorizationHeader(header string) string {
	const prefix = "Token "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
