package models

import (
	"time"

	"github.com/google/uuid"
)

// ShareLink is a time-boxed, revocable read grant for one shoot. Only the
// SHA-256 hash of the token is ever stored; rows are write-once apart from
// the revoked flag.
type ShareLink struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ShootID        uuid.UUID `gorm:"column:shoot_id;type:uuid;not null;index"`
	TokenHash      string    `gorm:"column:token_hash;not null;uniqueIndex"`
	ExpiresAt      time.Time `gorm:"column:expires_at;not null"`
	Revoked        bool      `gorm:"column:revoked;not null;default:false"`
	CreatedByEmail string    `gorm:"column:created_by_email;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
