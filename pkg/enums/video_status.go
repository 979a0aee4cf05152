package enums

import "fmt"

// VideoStatus is the canonical video deliverable workflow state.
type VideoStatus string

const (
	VideoStatusPending VideoStatus = "pending"
	VideoStatusDraft   VideoStatus = "draft"
	VideoStatusEditing VideoStatus = "editing"
	VideoStatusReview  VideoStatus = "review"
	VideoStatusFinal   VideoStatus = "final"
)

var validVideoStatuses = []VideoStatus{
	VideoStatusPending,
	VideoStatusDraft,
	VideoStatusEditing,
	VideoStatusReview,
	VideoStatusFinal,
}

// String returns the literal string for the status.
func (v VideoStatus) String() string {
	return string(v)
}

// IsValid reports whether the status is canonical.
func (v VideoStatus) IsValid() bool {
	for _, candidate := range validVideoStatuses {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseVideoStatus converts canonical input into a VideoStatus.
func ParseVideoStatus(value string) (VideoStatus, error) {
	for _, candidate := range validVideoStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid video status %q", value)
}

// NormalizeVideoStatus maps raw or legacy status vocabulary onto the
// canonical set. Unknown or empty input degrades to pending. Total and pure.
func NormalizeVideoStatus(raw string) VideoStatus {
	if status := VideoStatus(raw); status.IsValid() {
		return status
	}
	switch raw {
	case "in_progress":
		return VideoStatusEditing
	case "in_review", "revision_requested":
		return VideoStatusReview
	case "approved", "delivered":
		return VideoStatusFinal
	default:
		return VideoStatusPending
	}
}
