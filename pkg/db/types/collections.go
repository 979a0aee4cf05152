package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TeamMember is a crew entry on a shoot. Collections are position-ordered
// and owned entirely by the parent shoot; members carry no identity of
// their own.
type TeamMember struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// TalentMember is a model/subject entry on a shoot.
type TalentMember struct {
	Name   string `json:"name"`
	Agency string `json:"agency,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

// TimelineEvent is one scheduled slot on the shoot day.
type TimelineEvent struct {
	Time        string `json:"time"`
	Description string `json:"description"`
	Location    string `json:"location,omitempty"`
}

// Document is an attached reference file (call sheet, contract, ...).
type Document struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Kind string `json:"kind,omitempty"`
}

// MoodboardImage is one reference image on the shoot moodboard.
type MoodboardImage struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

type (
	TeamMembers     []TeamMember
	TalentMembers   []TalentMember
	TimelineEvents  []TimelineEvent
	Documents       []Document
	MoodboardImages []MoodboardImage
)

func scanJSON(dest any, src any) error {
	if src == nil {
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("jsonb: unsupported Scan type %T", src)
	}
}

func valueJSON(src any) (driver.Value, error) {
	raw, err := json.Marshal(src)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func (t *TeamMembers) Scan(src any) error {
	*t = TeamMembers{}
	return scanJSON(t, src)
}

func (t TeamMembers) Value() (driver.Value, error) {
	if t == nil {
		t = TeamMembers{}
	}
	return valueJSON(t)
}

func (t *TalentMembers) Scan(src any) error {
	*t = TalentMembers{}
	return scanJSON(t, src)
}

func (t TalentMembers) Value() (driver.Value, error) {
	if t == nil {
		t = TalentMembers{}
	}
	return valueJSON(t)
}

func (t *TimelineEvents) Scan(src any) error {
	*t = TimelineEvents{}
	return scanJSON(t, src)
}

func (t TimelineEvents) Value() (driver.Value, error) {
	if t == nil {
		t = TimelineEvents{}
	}
	return valueJSON(t)
}

func (d *Documents) Scan(src any) error {
	*d = Documents{}
	return scanJSON(d, src)
}

func (d Documents) Value() (driver.Value, error) {
	if d == nil {
		d = Documents{}
	}
	return valueJSON(d)
}

func (m *MoodboardImages) Scan(src any) error {
	*m = MoodboardImages{}
	return scanJSON(m, src)
}

func (m MoodboardImages) Value() (driver.Value, error) {
	if m == nil {
		m = MoodboardImages{}
	}
	return valueJSON(m)
}
