package types

import "fmt"

// ClearanceStatus represents the derived status of one department's
// checklist for one exit case. It is never persisted; see the status
// derivation in the model package.
type ClearanceStatus string

const (
	ClearancePending ClearanceStatus = "pending"
	ClearanceDone    ClearanceStatus = "done"
)

// AllClearanceStatuses returns all valid clearance statuses
func AllClearanceStatuses() []ClearanceStatus {
	return []ClearanceStatus{
		ClearancePending,
		ClearanceDone,
	}
}

// IsValid checks if the clearance status is valid
func (s ClearanceStatus) IsValid() bool {
	switch s {
	case ClearancePending, ClearanceDone:
		return true
	default:
		return false
	}
}

// String returns the string representation of the clearance status
func (s ClearanceStatus) String() string {
	return string(s)
}

// ParseClearanceStatus parses a string into a ClearanceStatus
func ParseClearanceStatus(s string) (ClearanceStatus, error) {
	status := ClearanceStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid clearance status: %s", s)
	}
	return status, nil
}
