package security

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PinHashCost is the bcrypt work factor applied to producer PINs.
const PinHashCost = 10

var legacyHexDigestRe = regexp.MustCompile(`^[a-f0-9]{32}$`)

// HashPin returns a bcrypt hash of the PIN at the standard cost.
func HashPin(pin string) (string, error) {
	if pin == "" {
		return "", fmt.Errorf("pin cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), PinHashCost)
	if err != nil {
		return "", fmt.Errorf("hash pin: %w", err)
	}
	return string(hash), nil
}

// VerifyPin compares the PIN against a bcrypt hash. Raw strings are never
// compared; bcrypt's own comparison is used.
func VerifyPin(pin, hash string) (bool, error) {
	if hash == "" {
		return false, fmt.Errorf("pin hash is empty")
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin))
	switch {
	case err == nil:
		return true, nil
	case err == bcrypt.ErrMismatchedHashAndPassword:
		return false, nil
	default:
		return false, fmt.Errorf("verify pin: %w", err)
	}
}

// IsLegacyPinHash reports whether the stored hash is a bare 32-hex MD5
// digest from the pre-bcrypt deployment. Delete together with
// VerifyLegacyPin once all configured hashes have been re-issued.
func IsLegacyPinHash(hash string) bool {
	return legacyHexDigestRe.MatchString(strings.ToLower(hash))
}

// VerifyLegacyPin checks a PIN against a legacy MD5 hex digest using a
// constant-time comparison. Deprecated migration path only.
func VerifyLegacyPin(pin, hash string) bool {
	sum := md5.Sum([]byte(pin))
	digest := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(digest), []byte(strings.ToLower(hash))) == 1
}
