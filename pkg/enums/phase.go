package enums

import "fmt"

// Phase is one of the three ordered workflow stages shown on the shoot
// detail page.
type Phase string

const (
	PhasePreProduction  Phase = "pre-production"
	PhaseProduction     Phase = "production"
	PhasePostProduction Phase = "post-production"
)

var validPhases = []Phase{
	PhasePreProduction,
	PhaseProduction,
	PhasePostProduction,
}

// String returns the literal string for the phase.
func (p Phase) String() string {
	return string(p)
}

// IsValid reports whether the phase is known.
func (p Phase) IsValid() bool {
	for _, candidate := range validPhases {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePhase converts raw input into a Phase.
func ParsePhase(value string) (Phase, error) {
	for _, candidate := range validPhases {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid phase %q", value)
}
