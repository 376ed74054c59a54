package model

import (
	"github.com/hrops-lab/exitclear/pkg/domain/types"
)

// The clearance state engine is a pure derivation layer: department and
// case status are always recomputed from Response/Annotation rows and
// never stored. Concurrent writers to different departments therefore
// cannot corrupt a shared status field, because there is none.

// DepartmentProgress is the derived state of one department's checklist
// for one case.
type DepartmentProgress struct {
	DepartmentID int64
	Status       types.ClearanceStatus
	// Started reports whether the department has touched the case at
	// all: any checked response, or an annotation on file.
	Started bool
}

// DeriveDepartmentStatus classifies one department's checklist from its
// response counts. Done requires every materialized response checked;
// a checklist with no responses has not been started and is pending.
func DeriveDepartmentStatus(total, checked int64) types.ClearanceStatus {
	if total > 0 && checked == total {
		return types.ClearanceDone
	}
	return types.ClearancePending
}

// DeriveCaseBucket folds per-department progress into the case-level
// bucket: all departments done means done, nothing started anywhere
// means pending, anything in between is inprogress.
func DeriveCaseBucket(progress []DepartmentProgress) types.CaseBucket {
	if len(progress) == 0 {
		return types.CasePending
	}

	allDone := true
	anyStarted := false
	for _, p := range progress {
		if p.Status != types.ClearanceDone {
			allDone = false
		}
		if p.Started || p.Status == types.ClearanceDone {
			anyStarted = true
		}
	}

	switch {
	case allDone:
		return types.CaseDone
	case anyStarted:
		return types.CaseInProgress
	default:
		return types.CasePending
	}
}

// CaseSummary is the per-case aggregate over assigned departments.
type CaseSummary struct {
	CaseID  int64
	Total   int
	Pending int
	Done    int
	Bucket  types.CaseBucket
}

// SummarizeCase counts per-department statuses and derives the bucket
func SummarizeCase(caseID int64, progress []DepartmentProgress) *CaseSummary {
	summary := &CaseSummary{
		CaseID: caseID,
		Total:  len(progress),
		Bucket: DeriveCaseBucket(progress),
	}
	for _, p := range progress {
		if p.Status == types.ClearanceDone {
			summary.Done++
		} else {
			summary.Pending++
		}
	}
	return summary
}

// FleetSummary is the aggregate over all exit cases, counted by
// case-level bucket.
type FleetSummary struct {
	Total      int
	Pending    int
	InProgress int
	Done       int
}

// Add counts one case bucket into the fleet summary
func (s *FleetSummary) Add(bucket types.CaseBucket) {
	s.Total++
	switch bucket {
	case types.CaseDone:
		s.Done++
	case types.CaseInProgress:
		s.InProgress++
	default:
		s.Pending++
	}
}

// DepartmentSummary is one department's workload across the cases it is
// assigned to.
type DepartmentSummary struct {
	DepartmentID int64
	Total        int
	Pending      int
	Done         int
}
