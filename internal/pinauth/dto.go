package pinauth

import "time"

// VerifyRequest carries one PIN attempt.
type VerifyRequest struct {
	ClientID      string `json:"-"`
	ProducerEmail string `json:"email" validate:"required,email"`
	Pin           string `json:"pin" validate:"required,min=4,max=12"`
}

// VerifyResponse is returned after a successful PIN check.
type VerifyResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// RetryDetails reports how long a locked-out client must wait.
type RetryDetails struct {
	RetryAfterSeconds int `json:"retryAfterSeconds"`
}
