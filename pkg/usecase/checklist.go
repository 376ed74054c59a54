package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/hrops-lab/exitclear/pkg/domain/interfaces"
	"github.com/hrops-lab/exitclear/pkg/domain/model"
	"github.com/hrops-lab/exitclear/pkg/domain/model/auth"
	"github.com/hrops-lab/exitclear/pkg/utils/async"
	"github.com/m-mizutani/goerr/v2"
)

type ChecklistUseCase struct {
	repo   interfaces.Repository
	status *StatusUseCase
}

func NewChecklistUseCase(repo interfaces.Repository, status *StatusUseCase) *ChecklistUseCase {
	return &ChecklistUseCase{repo: repo, status: status}
}

// GetChecklist assembles the editable checklist of one department for
// one case. Response rows are materialized on first access, so a
// department always sees a full row set even before its first
// submission.
func (uc *ChecklistUseCase) GetChecklist(ctx context.Context, caseID, departmentID int64) (*model.Checklist, error) {
	c, dept, err := uc.loadScope(ctx, caseID, departmentID)
	if err != nil {
		return nil, err
	}

	questions, err := uc.repo.Catalog().ListQuestions(ctx, dept.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list questions", goerr.V(DepartmentIDKey, dept.ID))
	}

	questionIDs := make([]int64, len(questions))
	for i, q := range questions {
		questionIDs[i] = q.ID
	}
	if err := uc.repo.Checklist().MaterializeResponses(ctx, c.ID, dept.ID, questionIDs); err != nil {
		return nil, goerr.Wrap(err, "failed to materialize responses",
			goerr.V(CaseIDKey, c.ID),
			goerr.V(DepartmentIDKey, dept.ID))
	}

	return uc.assemble(ctx, c.ID, dept.ID, questions)
}

// SubmitInput is one department's submission for one case: the full or
// partial response batch plus the annotation.
type SubmitInput struct {
	Responses    map[int64]bool
	Comment      string
	AuthorizedBy string
}

// SubmitResult reports what one submission recorded, with the derived
// state after the write.
type SubmitResult struct {
	SubmissionID     string
	Checklist        *model.Checklist
	DepartmentStatus *model.DepartmentProgress
	CaseSummary      *model.CaseSummary
}

// Submit records a department's responses and annotation for a case as
// one unit. All validation runs before the first write: a rejected
// submission leaves both responses and annotation untouched. The
// response batch itself is applied atomically by the storage layer.
func (uc *ChecklistUseCase) Submit(ctx context.Context, caseID, departmentID int64, input *SubmitInput) (*SubmitResult, error) {
	ann := &model.Annotation{
		CaseID:       caseID,
		DepartmentID: departmentID,
		Comment:      strings.TrimSpace(input.Comment),
		AuthorizedBy: strings.TrimSpace(input.AuthorizedBy),
	}
	if err := ann.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, err.Error(),
			goerr.V(CaseIDKey, caseID),
			goerr.V(DepartmentIDKey, departmentID))
	}

	c, dept, err := uc.loadScope(ctx, caseID, departmentID)
	if err != nil {
		return nil, err
	}

	questions, err := uc.repo.Catalog().ListQuestions(ctx, dept.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list questions", goerr.V(DepartmentIDKey, dept.ID))
	}

	owned := make(map[int64]bool, len(questions))
	questionIDs := make([]int64, len(questions))
	for i, q := range questions {
		owned[q.ID] = true
		questionIDs[i] = q.ID
	}
	for qid := range input.Responses {
		if !owned[qid] {
			return nil, goerr.Wrap(ErrInvalidInput, "question does not belong to this department's checklist",
				goerr.V(CaseIDKey, caseID),
				goerr.V(DepartmentIDKey, departmentID),
				goerr.V(QuestionIDKey, qid))
		}
	}

	// A direct submission may arrive before the checklist was ever
	// fetched, so make sure the rows exist first.
	if err := uc.repo.Checklist().MaterializeResponses(ctx, c.ID, dept.ID, questionIDs); err != nil {
		return nil, goerr.Wrap(err, "failed to materialize responses",
			goerr.V(CaseIDKey, c.ID),
			goerr.V(DepartmentIDKey, dept.ID))
	}

	if len(input.Responses) > 0 {
		if err := uc.repo.Checklist().WriteResponses(ctx, c.ID, dept.ID, input.Responses); err != nil {
			return nil, goerr.Wrap(err, "failed to write responses",
				goerr.V(CaseIDKey, c.ID),
				goerr.V(DepartmentIDKey, dept.ID))
		}
	}

	if _, err := uc.repo.Checklist().UpsertAnnotation(ctx, ann); err != nil {
		return nil, goerr.Wrap(err, "failed to upsert annotation",
			goerr.V(CaseIDKey, c.ID),
			goerr.V(DepartmentIDKey, dept.ID))
	}

	uc.status.Invalidate(c.ID)

	checklist, err := uc.assemble(ctx, c.ID, dept.ID, questions)
	if err != nil {
		return nil, err
	}

	progress, err := uc.status.DepartmentProgress(ctx, c.ID, dept.ID)
	if err != nil {
		return nil, err
	}

	summary, err := uc.status.CaseSummary(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	// Prewarm the fleet summary so the HR dashboard refresh after a
	// submission does not pay the full recount.
	async.Dispatch(ctx, func(ctx context.Context) error {
		_, err := uc.status.FleetSummary(ctx)
		return err
	})

	return &SubmitResult{
		SubmissionID:     uuid.NewString(),
		Checklist:        checklist,
		DepartmentStatus: progress,
		CaseSummary:      summary,
	}, nil
}

// CaseOverview is the HR-facing read of one case: every assigned
// department's checklist joined with its derived progress.
type CaseOverview struct {
	Case        *model.ExitCase
	Summary     *model.CaseSummary
	Departments []*DepartmentOverview
}

type DepartmentOverview struct {
	Department *model.Department
	Checklist  *model.Checklist
	Progress   *model.DepartmentProgress
}

// Overview assembles the HR view of one case without materializing any
// response rows: departments that never opened their checklist show
// unchecked items derived from the question template alone.
func (uc *ChecklistUseCase) Overview(ctx context.Context, caseID int64) (*CaseOverview, error) {
	actor := auth.ActorFromContext(ctx)
	if !actor.IsHR() {
		return nil, goerr.Wrap(ErrAccessDenied, "case overview requires the HR role", goerr.V(CaseIDKey, caseID))
	}

	c, err := uc.repo.Cases().Get(ctx, caseID)
	if err != nil {
		return nil, goerr.Wrap(ErrCaseNotFound, "exit case not found", goerr.V(CaseIDKey, caseID))
	}

	overview := &CaseOverview{Case: c}
	progress := make([]model.DepartmentProgress, 0, len(c.AssignedDepartmentIDs))

	for _, deptID := range c.AssignedDepartmentIDs {
		dept, err := uc.repo.Catalog().GetDepartment(ctx, deptID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to get assigned department",
				goerr.V(CaseIDKey, caseID),
				goerr.V(DepartmentIDKey, deptID))
		}

		questions, err := uc.repo.Catalog().ListQuestions(ctx, deptID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list questions", goerr.V(DepartmentIDKey, deptID))
		}

		checklist, err := uc.assemble(ctx, caseID, deptID, questions)
		if err != nil {
			return nil, err
		}

		p, err := uc.status.DepartmentProgress(ctx, caseID, deptID)
		if err != nil {
			return nil, err
		}
		progress = append(progress, *p)

		overview.Departments = append(overview.Departments, &DepartmentOverview{
			Department: dept,
			Checklist:  checklist,
			Progress:   p,
		})
	}

	overview.Summary = model.SummarizeCase(caseID, progress)
	return overview, nil
}

// loadScope resolves and authorizes the (case, department) pair every
// checklist operation works on.
func (uc *ChecklistUseCase) loadScope(ctx context.Context, caseID, departmentID int64) (*model.ExitCase, *model.Department, error) {
	actor := auth.ActorFromContext(ctx)
	if !actor.CanActFor(departmentID) {
		return nil, nil, goerr.Wrap(ErrAccessDenied, "actor is scoped to another department",
			goerr.V(CaseIDKey, caseID),
			goerr.V(DepartmentIDKey, departmentID))
	}

	c, err := uc.repo.Cases().Get(ctx, caseID)
	if err != nil {
		return nil, nil, goerr.Wrap(ErrCaseNotFound, "exit case not found", goerr.V(CaseIDKey, caseID))
	}

	dept, err := uc.repo.Catalog().GetDepartment(ctx, departmentID)
	if err != nil {
		return nil, nil, goerr.Wrap(ErrDepartmentNotFound, "department not found", goerr.V(DepartmentIDKey, departmentID))
	}

	if !c.IsAssigned(dept.ID) {
		return nil, nil, goerr.Wrap(ErrAccessDenied, "department is not assigned to this case",
			goerr.V(CaseIDKey, c.ID),
			goerr.V(DepartmentIDKey, dept.ID))
	}

	return c, dept, nil
}

// assemble joins the question template with whatever response rows
// exist. Questions without a row read as unchecked.
func (uc *ChecklistUseCase) assemble(ctx context.Context, caseID, departmentID int64, questions []*model.Question) (*model.Checklist, error) {
	responses, err := uc.repo.Checklist().ListResponses(ctx, caseID, departmentID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list responses",
			goerr.V(CaseIDKey, caseID),
			goerr.V(DepartmentIDKey, departmentID))
	}

	checked := make(map[int64]bool, len(responses))
	for _, resp := range responses {
		checked[resp.QuestionID] = resp.Checked
	}

	items := make([]model.ChecklistItem, len(questions))
	for i, q := range questions {
		items[i] = model.ChecklistItem{
			QuestionID: q.ID,
			Text:       q.Text,
			Concerned:  q.Concerned,
			Checked:    checked[q.ID],
		}
	}

	ann, err := uc.repo.Checklist().GetAnnotation(ctx, caseID, departmentID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get annotation",
			goerr.V(CaseIDKey, caseID),
			goerr.V(DepartmentIDKey, departmentID))
	}

	return &model.Checklist{
		CaseID:       caseID,
		DepartmentID: departmentID,
		Items:        items,
		Annotation:   ann,
	}, nil
}
