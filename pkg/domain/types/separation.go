package types

import "fmt"

// SeparationType represents the kind of employment separation behind an
// exit case.
type SeparationType string

const (
	SeparationResignation SeparationType = "resignation"
	SeparationTermination SeparationType = "termination"
	SeparationRetirement  SeparationType = "retirement"
	SeparationOther       SeparationType = "other"
)

// AllSeparationTypes returns all valid separation types
func AllSeparationTypes() []SeparationType {
	return []SeparationType{
		SeparationResignation,
		SeparationTermination,
		SeparationRetirement,
		SeparationOther,
	}
}

// IsValid checks if the separation type is valid
func (s SeparationType) IsValid() bool {
	switch s {
	case SeparationResignation,
		SeparationTermination,
		SeparationRetirement,
		SeparationOther:
		return true
	default:
		return false
	}
}

// String returns the string representation of the separation type
func (s SeparationType) String() string {
	return string(s)
}

// ParseSeparationType parses a string into a SeparationType
func ParseSeparationType(s string) (SeparationType, error) {
	sep := SeparationType(s)
	if !sep.IsValid() {
		return "", fmt.Errorf("invalid separation type: %s", s)
	}
	return sep, nil
}
