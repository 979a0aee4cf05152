package enums

import "fmt"

// PhotoStatus is the canonical photo deliverable workflow state.
type PhotoStatus string

const (
	PhotoStatusPending             PhotoStatus = "pending"
	PhotoStatusSelectionReady      PhotoStatus = "selection_ready"
	PhotoStatusSelectionInProgress PhotoStatus = "selection_in_progress"
	PhotoStatusSelected            PhotoStatus = "selected"
	PhotoStatusEditing             PhotoStatus = "editing"
	PhotoStatusDelivered           PhotoStatus = "delivered"
)

var validPhotoStatuses = []PhotoStatus{
	PhotoStatusPending,
	PhotoStatusSelectionReady,
	PhotoStatusSelectionInProgress,
	PhotoStatusSelected,
	PhotoStatusEditing,
	PhotoStatusDelivered,
}

// String returns the literal string for the status.
func (p PhotoStatus) String() string {
	return string(p)
}

// IsValid reports whether the status is canonical.
func (p PhotoStatus) IsValid() bool {
	for _, candidate := range validPhotoStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePhotoStatus converts canonical input into a PhotoStatus.
func ParsePhotoStatus(value string) (PhotoStatus, error) {
	for _, candidate := range validPhotoStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid photo status %q", value)
}

// NormalizePhotoStatus maps raw or legacy status vocabulary onto the
// canonical set. Unknown or empty input degrades to pending so no
// out-of-enum value ever reaches downstream logic. Total and pure.
func NormalizePhotoStatus(raw string) PhotoStatus {
	if status := PhotoStatus(raw); status.IsValid() {
		return status
	}
	switch raw {
	case "editing_in_progress":
		return PhotoStatusEditing
	case "completed":
		return PhotoStatusDelivered
	default:
		return PhotoStatusPending
	}
}
