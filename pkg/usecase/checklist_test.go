package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hrops-lab/exitclear/pkg/domain/model/auth"
	"github.com/hrops-lab/exitclear/pkg/domain/types"
	"github.com/hrops-lab/exitclear/pkg/repository/memory"
	"github.com/hrops-lab/exitclear/pkg/usecase"
	"github.com/m-mizutani/gt"
)

type clearanceFixture struct {
	uc          *usecase.UseCases
	repo        *memory.Memory
	itID        int64
	financeID   int64
	caseID      int64
	itQuestions []int64
	finQuestion int64
}

// newClearanceFixture builds one exit case assigned to IT (two
// questions) and Finance (one question).
func newClearanceFixture(t *testing.T) *clearanceFixture {
	t.Helper()
	repo := memory.New()
	uc := usecase.New(repo)
	ctx := context.Background()

	it, err := uc.Catalog.CreateDepartment(ctx, "IT", "it@example.com", true)
	gt.NoError(t, err).Required()
	finance, err := uc.Catalog.CreateDepartment(ctx, "Finance", "finance@example.com", true)
	gt.NoError(t, err).Required()

	itQs, err := uc.Catalog.AddQuestions(ctx, it.ID, []usecase.QuestionInput{
		{Text: "Laptop returned?", Concerned: true},
		{Text: "Accounts disabled?"},
	})
	gt.NoError(t, err).Required()

	finQs, err := uc.Catalog.AddQuestions(ctx, finance.ID, []usecase.QuestionInput{
		{Text: "Final settlement cleared?"},
	})
	gt.NoError(t, err).Required()

	c, err := uc.Case.CreateCase(ctx, &usecase.CreateCaseInput{
		EmployeeName:          "Asha Verma",
		EmployeeCode:          "E-1042",
		EmployeeDepartment:    "Engineering",
		Designation:           "Senior Engineer",
		LastWorkDate:          time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
		Separation:            types.SeparationResignation,
		AssignedDepartmentIDs: []int64{it.ID, finance.ID},
	})
	gt.NoError(t, err).Required()

	return &clearanceFixture{
		uc:          uc,
		repo:        repo,
		itID:        it.ID,
		financeID:   finance.ID,
		caseID:      c.ID,
		itQuestions: []int64{itQs[0].ID, itQs[1].ID},
		finQuestion: finQs[0].ID,
	}
}

func newSubmit(responses map[int64]bool) *usecase.SubmitInput {
	return &usecase.SubmitInput{
		Responses:    responses,
		Comment:      "reviewed",
		AuthorizedBy: "J. Menon",
	}
}

func TestGetChecklist(t *testing.T) {
	t.Run("materializes unchecked rows on first access", func(t *testing.T) {
		fx := newClearanceFixture(t)
		ctx := context.Background()

		checklist, err := fx.uc.Checklist.GetChecklist(ctx, fx.caseID, fx.itID)
		gt.NoError(t, err).Required()

		gt.Array(t, checklist.Items).Length(2)
		gt.Number(t, checklist.CheckedCount()).Equal(0)
		gt.Value(t, checklist.Annotation).Nil()
	})

	t.Run("rejects department not assigned to the case", func(t *testing.T) {
		fx := newClearanceFixture(t)
		ctx := context.Background()

		library, err := fx.uc.Catalog.CreateDepartment(ctx, "Library", "library@example.com", true)
		gt.NoError(t, err).Required()

		_, err = fx.uc.Checklist.GetChecklist(ctx, fx.caseID, library.ID)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrAccessDenied)).True()
	})

	t.Run("rejects actor scoped to another department", func(t *testing.T) {
		fx := newClearanceFixture(t)
		ctx := auth.ContextWithActor(context.Background(),
			auth.NewDepartmentActor("U1", "finance@example.com", "Finance Desk", fx.financeID))

		_, err := fx.uc.Checklist.GetChecklist(ctx, fx.caseID, fx.itID)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrAccessDenied)).True()
	})

	t.Run("rejects unknown case", func(t *testing.T) {
		fx := newClearanceFixture(t)
		ctx := context.Background()

		_, err := fx.uc.Checklist.GetChecklist(ctx, 99999, fx.itID)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrCaseNotFound)).True()
	})
}

func TestSubmit(t *testing.T) {
	t.Run("records responses and annotation as one unit", func(t *testing.T) {
		fx := newClearanceFixture(t)
		ctx := context.Background()

		result, err := fx.uc.Checklist.Submit(ctx, fx.caseID, fx.itID, &usecase.SubmitInput{
			Responses: map[int64]bool{
				fx.itQuestions[0]: true,
				fx.itQuestions[1]: true,
			},
			Comment:      "All hardware recovered",
			AuthorizedBy: "J. Menon",
		})
		gt.NoError(t, err).Required()

		gt.Value(t, result.SubmissionID).NotEqual("")
		gt.Number(t, result.Checklist.CheckedCount()).Equal(2)
		gt.Value(t, result.DepartmentStatus.Status).Equal(types.ClearanceDone)
		gt.Value(t, result.CaseSummary.Bucket).Equal(types.CaseInProgress)
		gt.Number(t, result.CaseSummary.Done).Equal(1)
		gt.Number(t, result.CaseSummary.Pending).Equal(1)
	})

	t.Run("rejects submission without signatory before any write", func(t *testing.T) {
		fx := newClearanceFixture(t)
		ctx := context.Background()

		_, err := fx.uc.Checklist.Submit(ctx, fx.caseID, fx.itID, &usecase.SubmitInput{
			Responses:    map[int64]bool{fx.itQuestions[0]: true},
			Comment:      "Partial",
			AuthorizedBy: "   ",
		})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidInput)).True()

		checklist, err := fx.uc.Checklist.GetChecklist(ctx, fx.caseID, fx.itID)
		gt.NoError(t, err).Required()
		gt.Number(t, checklist.CheckedCount()).Equal(0)
		gt.Value(t, checklist.Annotation).Nil()
	})

	t.Run("rejects foreign question before any write", func(t *testing.T) {
		fx := newClearanceFixture(t)
		ctx := context.Background()

		_, err := fx.uc.Checklist.Submit(ctx, fx.caseID, fx.itID, &usecase.SubmitInput{
			Responses: map[int64]bool{
				fx.itQuestions[0]: true,
				fx.finQuestion:    true,
			},
			AuthorizedBy: "J. Menon",
		})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidInput)).True()

		checklist, err := fx.uc.Checklist.GetChecklist(ctx, fx.caseID, fx.itID)
		gt.NoError(t, err).Required()
		gt.Number(t, checklist.CheckedCount()).Equal(0)
	})

	t.Run("resubmission replaces annotation in place", func(t *testing.T) {
		fx := newClearanceFixture(t)
		ctx := context.Background()

		first, err := fx.uc.Checklist.Submit(ctx, fx.caseID, fx.itID, &usecase.SubmitInput{
			Responses:    map[int64]bool{fx.itQuestions[0]: true},
			Comment:      "Laptop pending courier",
			AuthorizedBy: "J. Menon",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, first.Checklist.Annotation).NotNil()

		second, err := fx.uc.Checklist.Submit(ctx, fx.caseID, fx.itID, &usecase.SubmitInput{
			Responses:    map[int64]bool{fx.itQuestions[1]: true},
			Comment:      "All clear now",
			AuthorizedBy: "J. Menon",
		})
		gt.NoError(t, err).Required()

		gt.Value(t, second.Checklist.Annotation).NotNil()
		gt.Value(t, second.Checklist.Annotation.ID).Equal(first.Checklist.Annotation.ID)
		gt.Value(t, second.Checklist.Annotation.Comment).Equal("All clear now")

		// Earlier answers survive partial resubmission
		gt.Number(t, second.Checklist.CheckedCount()).Equal(2)
		gt.Value(t, second.DepartmentStatus.Status).Equal(types.ClearanceDone)
	})

	t.Run("submission works before checklist was ever fetched", func(t *testing.T) {
		fx := newClearanceFixture(t)
		ctx := context.Background()

		result, err := fx.uc.Checklist.Submit(ctx, fx.caseID, fx.financeID, &usecase.SubmitInput{
			Responses:    map[int64]bool{fx.finQuestion: true},
			AuthorizedBy: "R. Pillai",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, result.DepartmentStatus.Status).Equal(types.ClearanceDone)
	})

	t.Run("full clearance closes the case bucket", func(t *testing.T) {
		fx := newClearanceFixture(t)
		ctx := context.Background()

		_, err := fx.uc.Checklist.Submit(ctx, fx.caseID, fx.itID, &usecase.SubmitInput{
			Responses: map[int64]bool{
				fx.itQuestions[0]: true,
				fx.itQuestions[1]: true,
			},
			AuthorizedBy: "J. Menon",
		})
		gt.NoError(t, err).Required()

		result, err := fx.uc.Checklist.Submit(ctx, fx.caseID, fx.financeID, &usecase.SubmitInput{
			Responses:    map[int64]bool{fx.finQuestion: true},
			AuthorizedBy: "R. Pillai",
		})
		gt.NoError(t, err).Required()

		gt.Value(t, result.CaseSummary.Bucket).Equal(types.CaseDone)
		gt.Number(t, result.CaseSummary.Done).Equal(2)
		gt.Number(t, result.CaseSummary.Pending).Equal(0)
	})
}

func TestOverview(t *testing.T) {
	t.Run("shows every assigned department without materializing", func(t *testing.T) {
		fx := newClearanceFixture(t)
		ctx := context.Background()

		_, err := fx.uc.Checklist.Submit(ctx, fx.caseID, fx.itID, &usecase.SubmitInput{
			Responses:    map[int64]bool{fx.itQuestions[0]: true},
			Comment:      "One item outstanding",
			AuthorizedBy: "J. Menon",
		})
		gt.NoError(t, err).Required()

		overview, err := fx.uc.Checklist.Overview(ctx, fx.caseID)
		gt.NoError(t, err).Required()

		gt.Array(t, overview.Departments).Length(2)
		gt.Value(t, overview.Summary.Bucket).Equal(types.CaseInProgress)

		// Finance never opened its checklist; the overview still renders
		// its full question template unchecked.
		var finance *usecase.DepartmentOverview
		for _, d := range overview.Departments {
			if d.Department.ID == fx.financeID {
				finance = d
			}
		}
		gt.Value(t, finance).NotNil()
		gt.Array(t, finance.Checklist.Items).Length(1)
		gt.Number(t, finance.Checklist.CheckedCount()).Equal(0)
		gt.Bool(t, finance.Progress.Started).False()

		// The overview read must not have created response rows
		total, _, err := fx.repo.Checklist().CountResponses(ctx, fx.caseID, fx.financeID)
		gt.NoError(t, err).Required()
		gt.Value(t, total).Equal(int64(0))
	})

	t.Run("requires the HR role", func(t *testing.T) {
		fx := newClearanceFixture(t)
		ctx := auth.ContextWithActor(context.Background(),
			auth.NewDepartmentActor("U1", "it@example.com", "IT Desk", fx.itID))

		_, err := fx.uc.Checklist.Overview(ctx, fx.caseID)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrAccessDenied)).True()
	})
}
