package interfaces

import (
	"context"

	"github.com/hrops-lab/exitclear/pkg/domain/model"
)

// CaseRepository defines data access for exit cases. Cases are an
// append-only audit trail: there is no delete.
type CaseRepository interface {
	// Create creates a new exit case with auto-generated ID
	Create(ctx context.Context, c *model.ExitCase) (*model.ExitCase, error)

	// Get retrieves an exit case by ID
	Get(ctx context.Context, id int64) (*model.ExitCase, error)

	// List retrieves all exit cases ordered by ID
	List(ctx context.Context) ([]*model.ExitCase, error)

	// ListByDepartment retrieves the exit cases that have the given
	// department in their assigned set
	ListByDepartment(ctx context.Context, departmentID int64) ([]*model.ExitCase, error)
}
