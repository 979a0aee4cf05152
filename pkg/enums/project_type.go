package enums

import "fmt"

// ProjectType describes which deliverable tracks a shoot carries.
type ProjectType string

const (
	ProjectTypePhotoShoot   ProjectType = "photo_shoot"
	ProjectTypeVideoProject ProjectType = "video_project"
	ProjectTypeHybrid       ProjectType = "hybrid"
)

var validProjectTypes = []ProjectType{
	ProjectTypePhotoShoot,
	ProjectTypeVideoProject,
	ProjectTypeHybrid,
}

// String returns the literal string for the project type.
func (p ProjectType) String() string {
	return string(p)
}

// IsValid reports whether the project type is known.
func (p ProjectType) IsValid() bool {
	for _, candidate := range validProjectTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// HasPhoto reports whether photo deliverables apply to this project type.
func (p ProjectType) HasPhoto() bool {
	return p == ProjectTypePhotoShoot || p == ProjectTypeHybrid
}

// HasVideo reports whether video deliverables apply to this project type.
func (p ProjectType) HasVideo() bool {
	return p == ProjectTypeVideoProject || p == ProjectTypeHybrid
}

// ParseProjectType converts raw input into a ProjectType.
func ParseProjectType(value string) (ProjectType, error) {
	for _, candidate := range validProjectTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid project type %q", value)
}
