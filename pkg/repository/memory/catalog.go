package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hrops-lab/exitclear/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type catalogRepository struct {
	mu             sync.RWMutex
	departments    map[int64]*model.Department
	questions      map[int64]*model.Question
	nextDeptID     int64
	nextQuestionID int64
}

func newCatalogRepository() *catalogRepository {
	return &catalogRepository{
		departments:    make(map[int64]*model.Department),
		questions:      make(map[int64]*model.Question),
		nextDeptID:     1,
		nextQuestionID: 1,
	}
}

func copyDepartment(d *model.Department) *model.Department {
	copied := *d
	return &copied
}

func copyQuestion(q *model.Question) *model.Question {
	copied := *q
	return &copied
}

func (r *catalogRepository) CreateDepartment(ctx context.Context, dept *model.Department) (*model.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyDepartment(dept)
	created.ID = r.nextDeptID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextDeptID++

	r.departments[created.ID] = created
	return copyDepartment(created), nil
}

func (r *catalogRepository) GetDepartment(ctx context.Context, id int64) (*model.Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dept, exists := r.departments[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "department not found", goerr.V("id", id))
	}

	return copyDepartment(dept), nil
}

func (r *catalogRepository) GetDepartmentByName(ctx context.Context, name string) (*model.Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	normalized := model.NormalizeDepartmentName(name)
	for _, dept := range r.departments {
		if model.NormalizeDepartmentName(dept.Name) == normalized {
			return copyDepartment(dept), nil
		}
	}

	return nil, nil
}

func (r *catalogRepository) ListDepartments(ctx context.Context) ([]*model.Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	depts := make([]*model.Department, 0, len(r.departments))
	for _, dept := range r.departments {
		depts = append(depts, copyDepartment(dept))
	}

	sort.Slice(depts, func(i, j int) bool {
		return depts[i].ID < depts[j].ID
	})

	return depts, nil
}

func (r *catalogRepository) CreateQuestion(ctx context.Context, q *model.Question) (*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.departments[q.DepartmentID]; !exists {
		return nil, goerr.Wrap(ErrNotFound, "department not found", goerr.V("department_id", q.DepartmentID))
	}

	created := copyQuestion(q)
	created.ID = r.nextQuestionID
	created.CreatedAt = time.Now().UTC()
	r.nextQuestionID++

	r.questions[created.ID] = created
	return copyQuestion(created), nil
}

func (r *catalogRepository) ListQuestions(ctx context.Context, departmentID int64) ([]*model.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	questions := make([]*model.Question, 0)
	for _, q := range r.questions {
		if q.DepartmentID == departmentID {
			questions = append(questions, copyQuestion(q))
		}
	}

	sort.Slice(questions, func(i, j int) bool {
		return questions[i].ID < questions[j].ID
	})

	return questions, nil
}
