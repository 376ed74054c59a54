package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrCaseNotFound       = errors.New("exit case not found")
	ErrDepartmentNotFound = errors.New("department not found")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")

	// Access control errors
	ErrAccessDenied = errors.New("access denied")
)

// Context keys for error values
const (
	CaseIDKey       = "case_id"
	DepartmentIDKey = "department_id"
	QuestionIDKey   = "question_id"
)
