package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/hrops-lab/exitclear/pkg/domain/interfaces"
	"github.com/hrops-lab/exitclear/pkg/domain/model"
	"github.com/hrops-lab/exitclear/pkg/domain/model/auth"
	"github.com/hrops-lab/exitclear/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type CaseUseCase struct {
	repo   interfaces.Repository
	status *StatusUseCase
}

func NewCaseUseCase(repo interfaces.Repository, status *StatusUseCase) *CaseUseCase {
	return &CaseUseCase{repo: repo, status: status}
}

// CreateCaseInput carries the fields of a new exit case
type CreateCaseInput struct {
	EmployeeName          string
	EmployeeCode          string
	EmployeeDepartment    string
	Designation           string
	LastWorkDate          time.Time
	Separation            types.SeparationType
	AssignedDepartmentIDs []int64
}

// CreateCase opens a new exit case. Every assigned department must
// exist and be assignable; the case itself carries no status field, so
// a freshly created case reads as pending until a department acts.
func (uc *CaseUseCase) CreateCase(ctx context.Context, input *CreateCaseInput) (*model.ExitCase, error) {
	c := &model.ExitCase{
		EmployeeName:          strings.TrimSpace(input.EmployeeName),
		EmployeeCode:          strings.TrimSpace(input.EmployeeCode),
		EmployeeDepartment:    strings.TrimSpace(input.EmployeeDepartment),
		Designation:           strings.TrimSpace(input.Designation),
		LastWorkDate:          input.LastWorkDate,
		Separation:            input.Separation,
		AssignedDepartmentIDs: input.AssignedDepartmentIDs,
	}
	if err := c.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, err.Error())
	}

	for _, deptID := range c.AssignedDepartmentIDs {
		dept, err := uc.repo.Catalog().GetDepartment(ctx, deptID)
		if err != nil {
			return nil, goerr.Wrap(ErrInvalidInput, "assigned department does not exist",
				goerr.V(DepartmentIDKey, deptID))
		}
		if !dept.Assignable {
			return nil, goerr.Wrap(ErrInvalidInput, "department cannot be assigned to exit cases",
				goerr.V(DepartmentIDKey, deptID),
				goerr.V("name", dept.Name))
		}
	}

	created, err := uc.repo.Cases().Create(ctx, c)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create exit case",
			goerr.V("employee_code", c.EmployeeCode))
	}

	return created, nil
}

// GetCase retrieves one exit case
func (uc *CaseUseCase) GetCase(ctx context.Context, id int64) (*model.ExitCase, error) {
	c, err := uc.repo.Cases().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrCaseNotFound, "exit case not found", goerr.V(CaseIDKey, id))
	}
	return c, nil
}

// CaseWithSummary pairs an exit case with its derived summary for
// listing endpoints.
type CaseWithSummary struct {
	Case    *model.ExitCase
	Summary *model.CaseSummary
}

// ListCases retrieves all exit cases with derived summaries. HR only.
func (uc *CaseUseCase) ListCases(ctx context.Context) ([]*CaseWithSummary, error) {
	actor := auth.ActorFromContext(ctx)
	if !actor.IsHR() {
		return nil, goerr.Wrap(ErrAccessDenied, "listing all cases requires the HR role")
	}

	cases, err := uc.repo.Cases().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list exit cases")
	}

	return uc.withSummaries(ctx, cases)
}

// ListCasesByDepartment retrieves the exit cases assigned to one
// department. A department actor can only read its own queue.
func (uc *CaseUseCase) ListCasesByDepartment(ctx context.Context, departmentID int64) ([]*CaseWithSummary, error) {
	actor := auth.ActorFromContext(ctx)
	if !actor.CanActFor(departmentID) {
		return nil, goerr.Wrap(ErrAccessDenied, "actor is scoped to another department",
			goerr.V(DepartmentIDKey, departmentID))
	}

	if _, err := uc.repo.Catalog().GetDepartment(ctx, departmentID); err != nil {
		return nil, goerr.Wrap(ErrDepartmentNotFound, "department not found", goerr.V(DepartmentIDKey, departmentID))
	}

	cases, err := uc.repo.Cases().ListByDepartment(ctx, departmentID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list cases by department", goerr.V(DepartmentIDKey, departmentID))
	}

	return uc.withSummaries(ctx, cases)
}

func (uc *CaseUseCase) withSummaries(ctx context.Context, cases []*model.ExitCase) ([]*CaseWithSummary, error) {
	result := make([]*CaseWithSummary, 0, len(cases))
	for _, c := range cases {
		summary, err := uc.status.CaseSummary(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, &CaseWithSummary{Case: c, Summary: summary})
	}
	return result, nil
}
