package shoots

import (
	"time"

	"github.com/google/uuid"

	"github.com/mayaserrano/framelight-backend/pkg/db/models"
	dbtypes "github.com/mayaserrano/framelight-backend/pkg/db/types"
	"github.com/mayaserrano/framelight-backend/pkg/enums"
)

// CreateShootRequest carries the fields a producer submits for a new shoot.
type CreateShootRequest struct {
	Title       string                  `json:"title" validate:"required,min=1,max=200"`
	ClientName  string                  `json:"clientName" validate:"required,min=1,max=200"`
	ClientEmail string                  `json:"clientEmail" validate:"required,email"`
	ProjectType string                  `json:"projectType" validate:"required"`
	Status      string                  `json:"status" validate:"omitempty"`
	Team        dbtypes.TeamMembers     `json:"team" validate:"omitempty,dive"`
	Talent      dbtypes.TalentMembers   `json:"talent" validate:"omitempty,dive"`
	Timeline    dbtypes.TimelineEvents  `json:"timeline" validate:"omitempty,dive"`
	Documents   dbtypes.Documents       `json:"documents" validate:"omitempty,dive"`
	Moodboard   dbtypes.MoodboardImages `json:"moodboardImages" validate:"omitempty,dive"`
}

// UpdateShootRequest carries producer edits. The access token and status
// fields are never updated through this path.
type UpdateShootRequest struct {
	Title       string                  `json:"title" validate:"required,min=1,max=200"`
	ClientName  string                  `json:"clientName" validate:"required,min=1,max=200"`
	ClientEmail string                  `json:"clientEmail" validate:"required,email"`
	ProjectType string                  `json:"projectType" validate:"required"`
	Team        dbtypes.TeamMembers     `json:"team" validate:"omitempty,dive"`
	Talent      dbtypes.TalentMembers   `json:"talent" validate:"omitempty,dive"`
	Timeline    dbtypes.TimelineEvents  `json:"timeline" validate:"omitempty,dive"`
	Documents   dbtypes.Documents       `json:"documents" validate:"omitempty,dive"`
	Moodboard   dbtypes.MoodboardImages `json:"moodboardImages" validate:"omitempty,dive"`
}

// UpdateStatusRequest moves the shoot and its deliverable tracks forward.
// Nil fields are left untouched.
type UpdateStatusRequest struct {
	Status      *string `json:"status" validate:"omitempty"`
	PhotoStatus *string `json:"photoStatus" validate:"omitempty"`
	VideoStatus *string `json:"videoStatus" validate:"omitempty"`
}

// ListParams selects a page of shoots for the producer dashboard.
type ListParams struct {
	Limit  int
	Cursor string
}

// ListResult is one page of shoots plus the cursor for the next page.
type ListResult struct {
	Items  []ShootResponse `json:"items"`
	Cursor string          `json:"cursor,omitempty"`
}

// ShootResponse is the producer view of a shoot, access token included.
type ShootResponse struct {
	ID          uuid.UUID               `json:"id"`
	AccessToken string                  `json:"accessToken"`
	Title       string                  `json:"title"`
	ClientName  string                  `json:"clientName"`
	ClientEmail string                  `json:"clientEmail"`
	ProjectType enums.ProjectType       `json:"projectType"`
	Status      enums.ShootStatus       `json:"status"`
	PhotoStatus string                  `json:"photoStatus,omitempty"`
	VideoStatus string                  `json:"videoStatus,omitempty"`
	Team        dbtypes.TeamMembers     `json:"team"`
	Talent      dbtypes.TalentMembers   `json:"talent"`
	Timeline    dbtypes.TimelineEvents  `json:"timeline"`
	Documents   dbtypes.Documents       `json:"documents"`
	Moodboard   dbtypes.MoodboardImages `json:"moodboardImages"`
	Terms       TermsState              `json:"terms"`
	CreatedAt   time.Time               `json:"createdAt"`
	UpdatedAt   time.Time               `json:"updatedAt"`
}

// ClientShootResponse is the portal payload. It never includes the access
// token and adds the derived workflow phases.
type ClientShootResponse struct {
	ID           uuid.UUID               `json:"id"`
	Title        string                  `json:"title"`
	ClientName   string                  `json:"clientName"`
	ProjectType  enums.ProjectType       `json:"projectType"`
	Status       enums.ShootStatus       `json:"status"`
	PhotoStatus  string                  `json:"photoStatus,omitempty"`
	VideoStatus  string                  `json:"videoStatus,omitempty"`
	Phases       []enums.Phase           `json:"phases"`
	DefaultPhase enums.Phase             `json:"defaultPhase"`
	Team         dbtypes.TeamMembers     `json:"team"`
	Talent       dbtypes.TalentMembers   `json:"talent"`
	Timeline     dbtypes.TimelineEvents  `json:"timeline"`
	Documents    dbtypes.Documents       `json:"documents"`
	Moodboard    dbtypes.MoodboardImages `json:"moodboardImages"`
	Terms        TermsState              `json:"terms"`
}

// TermsState reports client terms acceptance.
type TermsState struct {
	Accepted   bool       `json:"accepted"`
	AcceptedAt *time.Time `json:"acceptedAt,omitempty"`
}

// FromModel maps a stored shoot onto the producer response.
func FromModel(shoot *models.Shoot) ShootResponse {
	return ShootResponse{
		ID:          shoot.ID,
		AccessToken: shoot.AccessToken,
		Title:       shoot.Title,
		ClientName:  shoot.ClientName,
		ClientEmail: shoot.ClientEmail,
		ProjectType: shoot.ProjectType,
		Status:      shoot.Status,
		PhotoStatus: shoot.PhotoStatusValue(),
		VideoStatus: shoot.VideoStatusValue(),
		Team:        emptyIfNil(shoot.Team),
		Talent:      emptyIfNilTalent(shoot.Talent),
		Timeline:    emptyIfNilTimeline(shoot.Timeline),
		Documents:   emptyIfNilDocuments(shoot.Documents),
		Moodboard:   emptyIfNilMoodboard(shoot.MoodboardImages),
		Terms:       termsState(shoot),
		CreatedAt:   shoot.CreatedAt,
		UpdatedAt:   shoot.UpdatedAt,
	}
}

func clientFromModel(shoot *models.Shoot, visible []enums.Phase, defaultPhase enums.Phase) ClientShootResponse {
	return ClientShootResponse{
		ID:           shoot.ID,
		Title:        shoot.Title,
		ClientName:   shoot.ClientName,
		ProjectType:  shoot.ProjectType,
		Status:       shoot.Status,
		PhotoStatus:  shoot.PhotoStatusValue(),
		VideoStatus:  shoot.VideoStatusValue(),
		Phases:       visible,
		DefaultPhase: defaultPhase,
		Team:         emptyIfNil(shoot.Team),
		Talent:       emptyIfNilTalent(shoot.Talent),
		Timeline:     emptyIfNilTimeline(shoot.Timeline),
		Documents:    emptyIfNilDocuments(shoot.Documents),
		Moodboard:    emptyIfNilMoodboard(shoot.MoodboardImages),
		Terms:        termsState(shoot),
	}
}

func termsState(shoot *models.Shoot) TermsState {
	return TermsState{
		Accepted:   shoot.ClientAcceptedTerms,
		AcceptedAt: shoot.TermsAcceptedAt,
	}
}

func emptyIfNil(v dbtypes.TeamMembers) dbtypes.TeamMembers {
	if v == nil {
		return dbtypes.TeamMembers{}
	}
	return v
}

func emptyIfNilTalent(v dbtypes.TalentMembers) dbtypes.TalentMembers {
	if v == nil {
		return dbtypes.TalentMembers{}
	}
	return v
}

func emptyIfNilTimeline(v dbtypes.TimelineEvents) dbtypes.TimelineEvents {
	if v == nil {
		return dbtypes.TimelineEvents{}
	}
	return v
}

func emptyIfNilDocuments(v dbtypes.Documents) dbtypes.Documents {
	if v == nil {
		return dbtypes.Documents{}
	}
	return v
}

func emptyIfNilMoodboard(v dbtypes.MoodboardImages) dbtypes.MoodboardImages {
	if v == nil {
		return dbtypes.MoodboardImages{}
	}
	return v
}
