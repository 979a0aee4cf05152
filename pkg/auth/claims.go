package auth

import "github.com/golang-jwt/jwt/v5"

// SessionTokenPayload is the input for minting a producer session token.
type SessionTokenPayload struct {
	ProducerEmail string
	JTI           string
}

// SessionTokenClaims are the typed claims carried by a producer session JWT.
type SessionTokenClaims struct {
	ProducerEmail string `json:"producer_email,omitempty"`
	jwt.RegisteredClaims
}
