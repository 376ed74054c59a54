package usecase

import (
	"context"
	"fmt"

	"github.com/hrops-lab/exitclear/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// ValidationIssue represents a single issue found during DB consistency check
type ValidationIssue struct {
	CaseID       int64
	DepartmentID int64
	Message      string
	Expected     string
	Actual       string
}

// ValidationResult holds the results of DB validation
type ValidationResult struct {
	Issues []ValidationIssue
}

// HasIssues returns true if there are any validation issues
func (r *ValidationResult) HasIssues() bool {
	return len(r.Issues) > 0
}

// AddIssue adds a validation issue to the result
func (r *ValidationResult) AddIssue(issue ValidationIssue) {
	r.Issues = append(r.Issues, issue)
}

// ValidateDB checks stored data for consistency problems that the
// write paths are supposed to prevent: duplicate department names,
// cases assigned to departments that no longer resolve, and response
// rows in excess of a department's question template. It uses
// count-based detection and does NOT modify any data.
func (uc *UseCases) ValidateDB(ctx context.Context) (*ValidationResult, error) {
	result := &ValidationResult{}

	depts, err := uc.repo.Catalog().ListDepartments(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list departments")
	}

	seen := make(map[string]int64, len(depts))
	known := make(map[int64]bool, len(depts))
	questionCounts := make(map[int64]int, len(depts))
	for _, dept := range depts {
		known[dept.ID] = true

		normalized := model.NormalizeDepartmentName(dept.Name)
		if firstID, ok := seen[normalized]; ok {
			result.AddIssue(ValidationIssue{
				DepartmentID: dept.ID,
				Message:      "duplicate department name",
				Expected:     "unique name ignoring case",
				Actual:       fmt.Sprintf("%q collides with department %d", dept.Name, firstID),
			})
		} else {
			seen[normalized] = dept.ID
		}

		questions, err := uc.repo.Catalog().ListQuestions(ctx, dept.ID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list questions", goerr.V(DepartmentIDKey, dept.ID))
		}
		questionCounts[dept.ID] = len(questions)
	}

	cases, err := uc.repo.Cases().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list exit cases")
	}

	for _, c := range cases {
		for _, deptID := range c.AssignedDepartmentIDs {
			if !known[deptID] {
				result.AddIssue(ValidationIssue{
					CaseID:       c.ID,
					DepartmentID: deptID,
					Message:      "case assigned to unknown department",
					Expected:     "existing department",
					Actual:       fmt.Sprintf("department %d not found", deptID),
				})
				continue
			}

			total, checked, err := uc.repo.Checklist().CountResponses(ctx, c.ID, deptID)
			if err != nil {
				return nil, goerr.Wrap(err, "failed to count responses",
					goerr.V(CaseIDKey, c.ID),
					goerr.V(DepartmentIDKey, deptID))
			}

			if int(total) > questionCounts[deptID] {
				result.AddIssue(ValidationIssue{
					CaseID:       c.ID,
					DepartmentID: deptID,
					Message:      "more responses than questions",
					Expected:     fmt.Sprintf("at most %d responses", questionCounts[deptID]),
					Actual:       fmt.Sprintf("%d responses", total),
				})
			}
			if checked > total {
				result.AddIssue(ValidationIssue{
					CaseID:       c.ID,
					DepartmentID: deptID,
					Message:      "checked count exceeds total",
					Expected:     fmt.Sprintf("at most %d checked", total),
					Actual:       fmt.Sprintf("%d checked", checked),
				})
			}
		}
	}

	return result, nil
}
