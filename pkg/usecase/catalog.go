package usecase

import (
	"context"
	"strings"

	"github.com/hrops-lab/exitclear/pkg/domain/interfaces"
	"github.com/hrops-lab/exitclear/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type CatalogUseCase struct {
	repo interfaces.Repository
}

func NewCatalogUseCase(repo interfaces.Repository) *CatalogUseCase {
	return &CatalogUseCase{repo: repo}
}

// CreateDepartment registers a new clearance department. Department
// names are unique ignoring case and surrounding whitespace.
func (uc *CatalogUseCase) CreateDepartment(ctx context.Context, name, email string, assignable bool) (*model.Department, error) {
	dept := &model.Department{
		Name:       strings.TrimSpace(name),
		Email:      strings.TrimSpace(email),
		Assignable: assignable,
	}
	if err := dept.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, err.Error())
	}

	existing, err := uc.repo.Catalog().GetDepartmentByName(ctx, dept.Name)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to check department name", goerr.V("name", dept.Name))
	}
	if existing != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "department name already exists",
			goerr.V("name", dept.Name),
			goerr.V(DepartmentIDKey, existing.ID))
	}

	created, err := uc.repo.Catalog().CreateDepartment(ctx, dept)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create department", goerr.V("name", dept.Name))
	}

	return created, nil
}

// GetDepartment retrieves a department by ID
func (uc *CatalogUseCase) GetDepartment(ctx context.Context, id int64) (*model.Department, error) {
	dept, err := uc.repo.Catalog().GetDepartment(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrDepartmentNotFound, "department not found", goerr.V(DepartmentIDKey, id))
	}
	return dept, nil
}

// ListDepartments retrieves all departments
func (uc *CatalogUseCase) ListDepartments(ctx context.Context) ([]*model.Department, error) {
	depts, err := uc.repo.Catalog().ListDepartments(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list departments")
	}
	return depts, nil
}

// QuestionInput is one question to add to a department's checklist template
type QuestionInput struct {
	Text      string
	Concerned bool
}

// AddQuestions appends questions to a department's checklist template.
// The whole batch is validated before the first question is written.
func (uc *CatalogUseCase) AddQuestions(ctx context.Context, departmentID int64, inputs []QuestionInput) ([]*model.Question, error) {
	if len(inputs) == 0 {
		return nil, goerr.Wrap(ErrInvalidInput, "no questions given", goerr.V(DepartmentIDKey, departmentID))
	}

	if _, err := uc.repo.Catalog().GetDepartment(ctx, departmentID); err != nil {
		return nil, goerr.Wrap(ErrDepartmentNotFound, "department not found", goerr.V(DepartmentIDKey, departmentID))
	}

	questions := make([]*model.Question, 0, len(inputs))
	for _, in := range inputs {
		q := &model.Question{
			DepartmentID: departmentID,
			Text:         strings.TrimSpace(in.Text),
			Concerned:    in.Concerned,
		}
		if err := q.Validate(); err != nil {
			return nil, goerr.Wrap(ErrInvalidInput, err.Error(), goerr.V(DepartmentIDKey, departmentID))
		}
		questions = append(questions, q)
	}

	created := make([]*model.Question, 0, len(questions))
	for _, q := range questions {
		c, err := uc.repo.Catalog().CreateQuestion(ctx, q)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create question",
				goerr.V(DepartmentIDKey, departmentID),
				goerr.V("text", q.Text))
		}
		created = append(created, c)
	}

	return created, nil
}

// ListQuestions retrieves the checklist template of a department
func (uc *CatalogUseCase) ListQuestions(ctx context.Context, departmentID int64) ([]*model.Question, error) {
	if _, err := uc.repo.Catalog().GetDepartment(ctx, departmentID); err != nil {
		return nil, goerr.Wrap(ErrDepartmentNotFound, "department not found", goerr.V(DepartmentIDKey, departmentID))
	}

	questions, err := uc.repo.Catalog().ListQuestions(ctx, departmentID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list questions", goerr.V(DepartmentIDKey, departmentID))
	}
	return questions, nil
}
