package model

import (
	"slices"
	"strings"
	"time"

	"github.com/hrops-lab/exitclear/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// ExitCase is one departing employee's offboarding record. Cases are
// never deleted and carry no stored completion status; the case-level
// bucket is always derived from checklist responses.
type ExitCase struct {
	ID           int64
	EmployeeName string `masq:"secret"`
	// EmployeeCode is the external employee identifier (badge / HRIS ID).
	EmployeeCode string `masq:"secret"`
	// EmployeeDepartment is the employee's home department, free text.
	EmployeeDepartment    string
	Designation           string
	LastWorkDate          time.Time
	Separation            types.SeparationType
	AssignedDepartmentIDs []int64
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Validate checks required fields of an exit case
func (c *ExitCase) Validate() error {
	if strings.TrimSpace(c.EmployeeName) == "" {
		return goerr.New("employee name is required")
	}
	if strings.TrimSpace(c.EmployeeCode) == "" {
		return goerr.New("employee identifier is required")
	}
	if !c.Separation.IsValid() {
		return goerr.New("invalid separation type", goerr.V("separation", c.Separation))
	}
	if len(c.AssignedDepartmentIDs) == 0 {
		return goerr.New("at least one assigned department is required")
	}
	seen := make(map[int64]bool, len(c.AssignedDepartmentIDs))
	for _, id := range c.AssignedDepartmentIDs {
		if seen[id] {
			return goerr.New("duplicate assigned department", goerr.V("department_id", id))
		}
		seen[id] = true
	}
	return nil
}

// IsAssigned reports whether the department is required to clear this case
func (c *ExitCase) IsAssigned(departmentID int64) bool {
	return slices.Contains(c.AssignedDepartmentIDs, departmentID)
}
