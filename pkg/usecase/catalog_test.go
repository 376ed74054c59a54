package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hrops-lab/exitclear/pkg/repository/memory"
	"github.com/hrops-lab/exitclear/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestCreateDepartment(t *testing.T) {
	t.Run("creates department with trimmed name", func(t *testing.T) {
		uc := usecase.New(memory.New())
		ctx := context.Background()

		dept, err := uc.Catalog.CreateDepartment(ctx, "  IT ", "it@example.com", true)
		gt.NoError(t, err).Required()
		gt.Value(t, dept.Name).Equal("IT")
		gt.Bool(t, dept.Assignable).True()
	})

	t.Run("rejects duplicate name ignoring case", func(t *testing.T) {
		uc := usecase.New(memory.New())
		ctx := context.Background()

		_, err := uc.Catalog.CreateDepartment(ctx, "Finance", "finance@example.com", true)
		gt.NoError(t, err).Required()

		_, err = uc.Catalog.CreateDepartment(ctx, "FINANCE", "other@example.com", true)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidInput)).True()
	})

	t.Run("rejects empty name", func(t *testing.T) {
		uc := usecase.New(memory.New())
		ctx := context.Background()

		_, err := uc.Catalog.CreateDepartment(ctx, "  ", "x@example.com", true)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidInput)).True()
	})
}

func TestAddQuestions(t *testing.T) {
	t.Run("appends questions to department template", func(t *testing.T) {
		uc := usecase.New(memory.New())
		ctx := context.Background()

		dept, err := uc.Catalog.CreateDepartment(ctx, "IT", "it@example.com", true)
		gt.NoError(t, err).Required()

		created, err := uc.Catalog.AddQuestions(ctx, dept.ID, []usecase.QuestionInput{
			{Text: "Laptop returned?", Concerned: true},
			{Text: "Accounts disabled?"},
		})
		gt.NoError(t, err).Required()
		gt.Array(t, created).Length(2)

		questions, err := uc.Catalog.ListQuestions(ctx, dept.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, questions).Length(2)
		gt.Bool(t, questions[0].Concerned).True()
	})

	t.Run("rejects unknown department", func(t *testing.T) {
		uc := usecase.New(memory.New())
		ctx := context.Background()

		_, err := uc.Catalog.AddQuestions(ctx, 99999, []usecase.QuestionInput{{Text: "Orphan?"}})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrDepartmentNotFound)).True()
	})

	t.Run("rejects batch containing an empty question before writing", func(t *testing.T) {
		uc := usecase.New(memory.New())
		ctx := context.Background()

		dept, err := uc.Catalog.CreateDepartment(ctx, "IT", "it@example.com", true)
		gt.NoError(t, err).Required()

		_, err = uc.Catalog.AddQuestions(ctx, dept.ID, []usecase.QuestionInput{
			{Text: "Laptop returned?"},
			{Text: "   "},
		})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidInput)).True()

		// The valid question in the batch must not have landed
		questions, err := uc.Catalog.ListQuestions(ctx, dept.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, questions).Length(0)
	})
}
