package usecase_test

import (
	"context"
	"testing"

	"github.com/hrops-lab/exitclear/pkg/repository/memory"
	"github.com/hrops-lab/exitclear/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestValidateDB(t *testing.T) {
	t.Run("clean database has no issues", func(t *testing.T) {
		fx := newClearanceFixture(t)
		ctx := context.Background()

		_, err := fx.uc.Checklist.Submit(ctx, fx.caseID, fx.itID, newSubmit(map[int64]bool{
			fx.itQuestions[0]: true,
		}))
		gt.NoError(t, err).Required()

		result, err := fx.uc.ValidateDB(ctx)
		gt.NoError(t, err).Required()
		gt.Bool(t, result.HasIssues()).False()
	})

	t.Run("empty database has no issues", func(t *testing.T) {
		uc := usecase.New(memory.New())

		result, err := uc.ValidateDB(context.Background())
		gt.NoError(t, err).Required()
		gt.Bool(t, result.HasIssues()).False()
		gt.Array(t, result.Issues).Length(0)
	})
}

func TestNoAuthn(t *testing.T) {
	t.Run("hands out an anonymous HR actor", func(t *testing.T) {
		authn := usecase.NewNoAuthnUseCase()

		actor, err := authn.Authenticate(context.Background(), "")
		gt.NoError(t, err).Required()
		gt.Bool(t, actor.IsHR()).True()
		gt.Value(t, actor.Sub).NotEqual("")
		gt.Bool(t, authn.IsNoAuthn()).True()
	})
}
