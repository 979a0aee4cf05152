package phases

import (
	"strings"

	"github.com/mayaserrano/framelight-backend/pkg/enums"
)

// Input carries the normalized status fields a visibility decision needs.
// PhotoStatus/VideoStatus are the raw stored strings; an empty string means
// the deliverable track has not been entered yet.
type Input struct {
	Status      enums.ShootStatus
	PhotoStatus string
	VideoStatus string
}

// Visible returns the ordered workflow phases a shoot currently exposes.
// Phases are cumulative: pre-production is always present, production is
// appended once the shoot has started, and post-production once the shoot
// finished or a deliverable status has been entered early.
func Visible(input Input) []enums.Phase {
	visible := []enums.Phase{enums.PhasePreProduction}

	started := input.Status == enums.ShootStatusInProgress ||
		input.Status == enums.ShootStatusCompleted ||
		input.Status == enums.ShootStatusDelivered
	if !started {
		return visible
	}
	visible = append(visible, enums.PhaseProduction)

	finished := input.Status == enums.ShootStatusCompleted ||
		input.Status == enums.ShootStatusDelivered
	// Producers may expose post-production deliverables before the shoot is
	// formally completed, as soon as either deliverable track has a status.
	earlyDeliverables := input.Status == enums.ShootStatusInProgress &&
		(hasStatus(input.PhotoStatus) || hasStatus(input.VideoStatus))

	if finished || earlyDeliverables {
		visible = append(visible, enums.PhasePostProduction)
	}
	return visible
}

// Default returns the phase a viewer should land on: the furthest-along
// visible phase, never the first by convention.
func Default(visible []enums.Phase) enums.Phase {
	if len(visible) == 0 {
		return enums.PhasePreProduction
	}
	return visible[len(visible)-1]
}

func hasStatus(value string) bool {
	return strings.TrimSpace(value) != ""
}
