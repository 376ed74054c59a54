package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Department is a clearing unit that maintains its own checklist of
// questions for each exit case it is assigned to. Identity is immutable
// once a case references it.
type Department struct {
	ID         int64
	Name       string
	Email      string
	Assignable bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NormalizeDepartmentName returns the canonical form used for the
// case-insensitive uniqueness check on department names.
func NormalizeDepartmentName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Validate checks required fields of a department
func (d *Department) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return goerr.New("department name is required")
	}
	if d.Email != "" && !strings.Contains(d.Email, "@") {
		return goerr.New("invalid department contact email", goerr.V("email", d.Email))
	}
	return nil
}

// Question is a single checklist item owned by a department. Questions
// are append-only; a question added after a checklist was materialized
// appears on that checklist's next fetch.
type Question struct {
	ID           int64
	DepartmentID int64
	Text         string
	// Concerned marks a heightened-importance item. Display-only: it
	// does not change how clearance status aggregates.
	Concerned bool
	CreatedAt time.Time
}

// Validate checks required fields of a question
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return goerr.New("question text is required")
	}
	if q.DepartmentID == 0 {
		return goerr.New("question owning department is required")
	}
	return nil
}
