package sharelinks

import (
	"time"

	"github.com/google/uuid"

	"github.com/mayaserrano/framelight-backend/pkg/db/models"
)

// CreateShareLinkRequest is the producer request for a new share link.
type CreateShareLinkRequest struct {
	TTLHours int `json:"ttlHours" validate:"omitempty,min=1"`
}

// CreateShareLinkResponse returns the one-time plaintext share URL. The
// token inside it is never recoverable afterwards.
type CreateShareLinkResponse struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ShareLinkSummary is the producer view of an issued link.
type ShareLinkSummary struct {
	ID             uuid.UUID `json:"id"`
	ExpiresAt      time.Time `json:"expiresAt"`
	Revoked        bool      `json:"revoked"`
	Active         bool      `json:"active"`
	CreatedByEmail string    `json:"createdByEmail"`
	CreatedAt      time.Time `json:"createdAt"`
}

func summaryFromModel(link *models.ShareLink, now time.Time) ShareLinkSummary {
	return ShareLinkSummary{
		ID:             link.ID,
		ExpiresAt:      link.ExpiresAt,
		Revoked:        link.Revoked,
		Active:         !link.Revoked && link.ExpiresAt.After(now),
		CreatedByEmail: link.CreatedByEmail,
		CreatedAt:      link.CreatedAt,
	}
}
