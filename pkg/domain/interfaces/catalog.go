package interfaces

import (
	"context"

	"github.com/hrops-lab/exitclear/pkg/domain/model"
)

// CatalogRepository defines data access for the static reference data
// exit cases are built against: departments and their questions.
type CatalogRepository interface {
	// CreateDepartment creates a new department with auto-generated ID
	CreateDepartment(ctx context.Context, dept *model.Department) (*model.Department, error)

	// GetDepartment retrieves a department by ID
	GetDepartment(ctx context.Context, id int64) (*model.Department, error)

	// GetDepartmentByName retrieves a department by its normalized
	// (case-insensitive) name. Returns nil, nil if no department matches.
	GetDepartmentByName(ctx context.Context, name string) (*model.Department, error)

	// ListDepartments retrieves all departments ordered by ID
	ListDepartments(ctx context.Context) ([]*model.Department, error)

	// CreateQuestion creates a new question with auto-generated ID.
	// Questions are append-only; there is no update or delete.
	CreateQuestion(ctx context.Context, q *model.Question) (*model.Question, error)

	// ListQuestions retrieves all questions owned by a department,
	// ordered by ID
	ListQuestions(ctx context.Context, departmentID int64) ([]*model.Question, error)
}
