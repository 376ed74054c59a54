package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hrops-lab/exitclear/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type caseRepository struct {
	mu     sync.RWMutex
	cases  map[int64]*model.ExitCase
	nextID int64
}

func newCaseRepository() *caseRepository {
	return &caseRepository{
		cases:  make(map[int64]*model.ExitCase),
		nextID: 1,
	}
}

// copyCase creates a deep copy of an exit case
func copyCase(c *model.ExitCase) *model.ExitCase {
	copied := *c
	copied.AssignedDepartmentIDs = make([]int64, len(c.AssignedDepartmentIDs))
	copy(copied.AssignedDepartmentIDs, c.AssignedDepartmentIDs)
	return &copied
}

func (r *caseRepository) Create(ctx context.Context, c *model.ExitCase) (*model.ExitCase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyCase(c)
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.cases[created.ID] = created
	return copyCase(created), nil
}

func (r *caseRepository) Get(ctx context.Context, id int64) (*model.ExitCase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.cases[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "exit case not found", goerr.V("id", id))
	}

	return copyCase(c), nil
}

func (r *caseRepository) List(ctx context.Context) ([]*model.ExitCase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cases := make([]*model.ExitCase, 0, len(r.cases))
	for _, c := range r.cases {
		cases = append(cases, copyCase(c))
	}

	sort.Slice(cases, func(i, j int) bool {
		return cases[i].ID < cases[j].ID
	})

	return cases, nil
}

func (r *caseRepository) ListByDepartment(ctx context.Context, departmentID int64) ([]*model.ExitCase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cases := make([]*model.ExitCase, 0)
	for _, c := range r.cases {
		if c.IsAssigned(departmentID) {
			cases = append(cases, copyCase(c))
		}
	}

	sort.Slice(cases, func(i, j int) bool {
		return cases[i].ID < cases[j].ID
	})

	return cases, nil
}
