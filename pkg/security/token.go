package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
)

const (
	accessTokenBytes = 16
	shareTokenBytes  = 32
)

var (
	accessTokenRe = regexp.MustCompile(`^[a-f0-9]{32}$`)
	shareTokenRe  = regexp.MustCompile(`^[a-f0-9]{64}$`)
)

// GenerateAccessToken returns a fresh per-shoot access token: 32 lowercase
// hex characters from a cryptographically secure source.
func GenerateAccessToken() (string, error) {
	buf := make([]byte, accessTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// ValidAccessTokenFormat reports whether the value is exactly 32 lowercase
// hex characters. Anything else is rejected before any storage lookup.
func ValidAccessTokenFormat(value string) bool {
	return accessTokenRe.MatchString(value)
}

// GenerateShareToken returns a 256-bit share-link token as 64 lowercase hex
// characters. The plaintext is never persisted; only its hash is stored.
func GenerateShareToken() (string, error) {
	buf := make([]byte, shareTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate share token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// ValidShareTokenFormat reports whether the value is exactly 64 lowercase
// hex characters.
func ValidShareTokenFormat(value string) bool {
	return shareTokenRe.MatchString(value)
}

// HashShareToken returns the SHA-256 hex digest stored and compared
// server-side in place of the plaintext token.
func HashShareToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
