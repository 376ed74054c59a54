package types

import "fmt"

// CaseBucket represents the derived case-level completion bucket of an
// exit case across all of its assigned departments.
type CaseBucket string

const (
	CasePending    CaseBucket = "pending"
	CaseInProgress CaseBucket = "inprogress"
	CaseDone       CaseBucket = "done"
)

// AllCaseBuckets returns all valid case buckets
func AllCaseBuckets() []CaseBucket {
	return []CaseBucket{
		CasePending,
		CaseInProgress,
		CaseDone,
	}
}

// IsValid checks if the case bucket is valid
func (b CaseBucket) IsValid() bool {
	switch b {
	case CasePending, CaseInProgress, CaseDone:
		return true
	default:
		return false
	}
}

// String returns the string representation of the case bucket
func (b CaseBucket) String() string {
	return string(b)
}

// ParseCaseBucket parses a string into a CaseBucket
func ParseCaseBucket(s string) (CaseBucket, error) {
	bucket := CaseBucket(s)
	if !bucket.IsValid() {
		return "", fmt.Errorf("invalid case bucket: %s", s)
	}
	return bucket, nil
}
