package interfaces

import (
	"context"

	"github.com/hrops-lab/exitclear/pkg/domain/model"
)

// ChecklistRepository defines data access for per-case responses and
// department annotations.
type ChecklistRepository interface {
	// MaterializeResponses creates a Checked=false response for every
	// question ID that has no response yet for (case, department).
	// Idempotent: existing responses are left untouched and calling it
	// twice creates no duplicates.
	MaterializeResponses(ctx context.Context, caseID, departmentID int64, questionIDs []int64) error

	// ListResponses retrieves the materialized responses for one
	// (case, department) checklist
	ListResponses(ctx context.Context, caseID, departmentID int64) ([]*model.Response, error)

	// WriteResponses applies a batch of checked updates as a single
	// atomic unit: either every referenced response row is updated or
	// none is. A missing (unmaterialized or foreign) response row fails
	// the whole batch with ErrNotFound.
	WriteResponses(ctx context.Context, caseID, departmentID int64, updates map[int64]bool) error

	// CountResponses counts total and checked responses for one
	// (case, department) checklist. Backed by aggregation queries where
	// the store supports them, so it is cheap enough for every listing
	// refresh.
	CountResponses(ctx context.Context, caseID, departmentID int64) (total, checked int64, err error)

	// GetAnnotation retrieves the department's annotation for a case.
	// Returns nil, nil if none exists yet.
	GetAnnotation(ctx context.Context, caseID, departmentID int64) (*model.Annotation, error)

	// UpsertAnnotation creates or replaces the single annotation row
	// keyed on (case, department), preserving CreatedAt on update
	UpsertAnnotation(ctx context.Context, ann *model.Annotation) (*model.Annotation, error)
}
