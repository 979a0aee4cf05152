package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/mayaserrano/framelight-backend/pkg/db/types"
	"github.com/mayaserrano/framelight-backend/pkg/enums"
)

// Shoot is the central project entity. AccessToken is generated once at
// creation and never rotates; PhotoStatus/VideoStatus hold raw stored
// strings and are normalized at the repository boundary.
type Shoot struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	AccessToken string            `gorm:"column:access_token;not null;uniqueIndex"`
	Title       string            `gorm:"column:title;not null"`
	ClientName  string            `gorm:"column:client_name;not null"`
	ClientEmail string            `gorm:"column:client_email;not null"`
	ProjectType enums.ProjectType `gorm:"column:project_type;not null"`
	Status      enums.ShootStatus `gorm:"column:status;not null;default:'pending'"`
	PhotoStatus *string           `gorm:"column:photo_status"`
	VideoStatus *string           `gorm:"column:video_status"`

	ClientAcceptedTerms bool       `gorm:"column:client_accepted_terms;not null;default:false"`
	TermsAcceptedAt     *time.Time `gorm:"column:terms_accepted_at"`
	TermsAcceptedIP     *string    `gorm:"column:terms_accepted_ip"`

	Team            dbtypes.TeamMembers     `gorm:"column:team;type:jsonb;not null;default:'[]'"`
	Talent          dbtypes.TalentMembers   `gorm:"column:talent;type:jsonb;not null;default:'[]'"`
	Timeline        dbtypes.TimelineEvents  `gorm:"column:timeline;type:jsonb;not null;default:'[]'"`
	Documents       dbtypes.Documents       `gorm:"column:documents;type:jsonb;not null;default:'[]'"`
	MoodboardImages dbtypes.MoodboardImages `gorm:"column:moodboard_images;type:jsonb;not null;default:'[]'"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// PhotoStatusValue returns the raw stored photo status or "".
func (s *Shoot) PhotoStatusValue() string {
	if s == nil || s.PhotoStatus == nil {
		return ""
	}
	return *s.PhotoStatus
}

// VideoStatusValue returns the raw stored video status or "".
func (s *Shoot) VideoStatusValue() string {
	if s == nil || s.VideoStatus == nil {
		return ""
	}
	return *s.VideoStatus
}
