package enums

import "fmt"

// ShootStatus is the producer-controlled overall shoot lifecycle.
type ShootStatus string

const (
	ShootStatusPending    ShootStatus = "pending"
	ShootStatusInProgress ShootStatus = "in_progress"
	ShootStatusCompleted  ShootStatus = "completed"
	ShootStatusDelivered  ShootStatus = "delivered"
)

var validShootStatuses = []ShootStatus{
	ShootStatusPending,
	ShootStatusInProgress,
	ShootStatusCompleted,
	ShootStatusDelivered,
}

// String returns the literal string for the status.
func (s ShootStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is known.
func (s ShootStatus) IsValid() bool {
	for _, candidate := range validShootStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseShootStatus converts raw input into a ShootStatus.
func ParseShootStatus(value string) (ShootStatus, error) {
	for _, candidate := range validShootStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shoot status %q", value)
}
