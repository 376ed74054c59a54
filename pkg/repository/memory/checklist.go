package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hrops-lab/exitclear/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// responseKey is a composite key for response rows (case + question)
type responseKey struct {
	caseID     int64
	questionID int64
}

// annotationKey is a composite key for annotations (case + department)
type annotationKey struct {
	caseID       int64
	departmentID int64
}

type checklistRepository struct {
	mu          sync.RWMutex
	responses   map[responseKey]*model.Response
	annotations map[annotationKey]*model.Annotation
}

func newChecklistRepository() *checklistRepository {
	return &checklistRepository{
		responses:   make(map[responseKey]*model.Response),
		annotations: make(map[annotationKey]*model.Annotation),
	}
}

func copyResponse(r *model.Response) *model.Response {
	copied := *r
	return &copied
}

func copyAnnotation(a *model.Annotation) *model.Annotation {
	copied := *a
	return &copied
}

func annotationID(caseID, departmentID int64) string {
	return fmt.Sprintf("%d_%d", caseID, departmentID)
}

func (r *checklistRepository) MaterializeResponses(ctx context.Context, caseID, departmentID int64, questionIDs []int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	for _, qid := range questionIDs {
		key := responseKey{caseID: caseID, questionID: qid}
		if _, exists := r.responses[key]; exists {
			continue
		}
		r.responses[key] = &model.Response{
			CaseID:       caseID,
			QuestionID:   qid,
			DepartmentID: departmentID,
			Checked:      false,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}

	return nil
}

func (r *checklistRepository) ListResponses(ctx context.Context, caseID, departmentID int64) ([]*model.Response, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	responses := make([]*model.Response, 0)
	for _, resp := range r.responses {
		if resp.CaseID == caseID && resp.DepartmentID == departmentID {
			responses = append(responses, copyResponse(resp))
		}
	}

	sort.Slice(responses, func(i, j int) bool {
		return responses[i].QuestionID < responses[j].QuestionID
	})

	return responses, nil
}

func (r *checklistRepository) WriteResponses(ctx context.Context, caseID, departmentID int64, updates map[int64]bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Validate the whole batch before touching anything so a failed
	// submission never mixes old and new answers.
	for qid := range updates {
		key := responseKey{caseID: caseID, questionID: qid}
		resp, exists := r.responses[key]
		if !exists || resp.DepartmentID != departmentID {
			return goerr.Wrap(ErrNotFound, "response not materialized for checklist",
				goerr.V("case_id", caseID),
				goerr.V("department_id", departmentID),
				goerr.V("question_id", qid))
		}
	}

	now := time.Now().UTC()
	for qid, checked := range updates {
		key := responseKey{caseID: caseID, questionID: qid}
		resp := r.responses[key]
		resp.Checked = checked
		resp.UpdatedAt = now
	}

	return nil
}

func (r *checklistRepository) CountResponses(ctx context.Context, caseID, departmentID int64) (int64, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total, checked int64
	for _, resp := range r.responses {
		if resp.CaseID != caseID || resp.DepartmentID != departmentID {
			continue
		}
		total++
		if resp.Checked {
			checked++
		}
	}

	return total, checked, nil
}

func (r *checklistRepository) GetAnnotation(ctx context.Context, caseID, departmentID int64) (*model.Annotation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ann, exists := r.annotations[annotationKey{caseID: caseID, departmentID: departmentID}]
	if !exists {
		return nil, nil
	}

	return copyAnnotation(ann), nil
}

func (r *checklistRepository) UpsertAnnotation(ctx context.Context, ann *model.Annotation) (*model.Annotation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := annotationKey{caseID: ann.CaseID, departmentID: ann.DepartmentID}
	now := time.Now().UTC()

	stored := copyAnnotation(ann)
	stored.ID = annotationID(ann.CaseID, ann.DepartmentID)
	stored.UpdatedAt = now

	if existing, exists := r.annotations[key]; exists {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}

	r.annotations[key] = stored
	return copyAnnotation(stored), nil
}
