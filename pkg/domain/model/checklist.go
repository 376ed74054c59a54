package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Response is one (case, question) checklist answer. Responses are
// materialized lazily with Checked=false the first time a department
// fetches its checklist for a case, and are never deleted.
type Response struct {
	CaseID       int64
	QuestionID   int64
	DepartmentID int64
	Checked      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Annotation is a department's free-text comment plus authorizing
// signatory for one case. At most one exists per (case, department);
// writes go through an upsert keyed on that pair.
type Annotation struct {
	// ID is derived from the natural key (case, department); callers may
	// cache it but the storage layer never depends on a client-held ID.
	ID           string
	CaseID       int64
	DepartmentID int64
	Comment      string
	AuthorizedBy string `masq:"secret"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate enforces the signatory gate: an annotation may only be
// stored with a non-empty authorizing signatory.
func (a *Annotation) Validate() error {
	if strings.TrimSpace(a.AuthorizedBy) == "" {
		return goerr.New("authorizing signatory is required")
	}
	return nil
}

// ChecklistItem joins a question with its current response state for
// one case.
type ChecklistItem struct {
	QuestionID int64
	Text       string
	Concerned  bool
	Checked    bool
}

// Checklist is the full view a department actor edits for one case:
// all of the department's questions joined with response booleans, plus
// the department's annotation if one exists.
type Checklist struct {
	CaseID       int64
	DepartmentID int64
	Items        []ChecklistItem
	Annotation   *Annotation
}

// CheckedCount returns the number of checked items
func (c *Checklist) CheckedCount() int {
	var n int
	for _, item := range c.Items {
		if item.Checked {
			n++
		}
	}
	return n
}
