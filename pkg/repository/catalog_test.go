package repository_test

import (
	"context"
	"os"
	"testing"

	"github.com/hrops-lab/exitclear/pkg/domain/interfaces"
	"github.com/hrops-lab/exitclear/pkg/domain/model"
	"github.com/hrops-lab/exitclear/pkg/repository/firestore"
	"github.com/hrops-lab/exitclear/pkg/repository/memory"
	"github.com/m-mizutani/gt"
)

func runCatalogRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("CreateDepartment assigns auto-increment ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Catalog().CreateDepartment(ctx, &model.Department{
			Name:       "IT",
			Email:      "it@example.com",
			Assignable: true,
		})
		gt.NoError(t, err).Required()

		gt.Value(t, created.ID).NotEqual(int64(0))
		gt.Value(t, created.Name).Equal("IT")
		gt.Value(t, created.Email).Equal("it@example.com")
		gt.Bool(t, created.Assignable).True()
		gt.Bool(t, created.CreatedAt.IsZero()).False()

		second, err := repo.Catalog().CreateDepartment(ctx, &model.Department{
			Name:       "Finance",
			Email:      "finance@example.com",
			Assignable: true,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, second.ID).NotEqual(created.ID)
	})

	t.Run("GetDepartment retrieves existing department", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Catalog().CreateDepartment(ctx, &model.Department{
			Name:       "Admin",
			Email:      "admin@example.com",
			Assignable: true,
		})
		gt.NoError(t, err).Required()

		retrieved, err := repo.Catalog().GetDepartment(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.ID).Equal(created.ID)
		gt.Value(t, retrieved.Name).Equal("Admin")
	})

	t.Run("GetDepartment returns error for missing department", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Catalog().GetDepartment(ctx, 99999)
		gt.Error(t, err)
	})

	t.Run("GetDepartmentByName is case-insensitive", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Catalog().CreateDepartment(ctx, &model.Department{
			Name:       "Human Resources",
			Email:      "hr@example.com",
			Assignable: false,
		})
		gt.NoError(t, err).Required()

		found, err := repo.Catalog().GetDepartmentByName(ctx, "HUMAN RESOURCES")
		gt.NoError(t, err).Required()
		gt.Value(t, found).NotNil()
		gt.Value(t, found.ID).Equal(created.ID)

		found, err = repo.Catalog().GetDepartmentByName(ctx, "  human resources ")
		gt.NoError(t, err).Required()
		gt.Value(t, found).NotNil()
		gt.Value(t, found.ID).Equal(created.ID)
	})

	t.Run("GetDepartmentByName returns nil for missing name", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		found, err := repo.Catalog().GetDepartmentByName(ctx, "no-such-department")
		gt.NoError(t, err).Required()
		gt.Value(t, found).Nil()
	})

	t.Run("ListDepartments returns departments ordered by ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		names := []string{"IT", "Finance", "Library"}
		for _, name := range names {
			_, err := repo.Catalog().CreateDepartment(ctx, &model.Department{
				Name:       name,
				Email:      "x@example.com",
				Assignable: true,
			})
			gt.NoError(t, err).Required()
		}

		depts, err := repo.Catalog().ListDepartments(ctx)
		gt.NoError(t, err).Required()
		gt.Number(t, len(depts)).GreaterOrEqual(3)

		for i := 1; i < len(depts); i++ {
			gt.Number(t, depts[i].ID).Greater(depts[i-1].ID)
		}
	})

	t.Run("CreateQuestion attaches question to department", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		dept, err := repo.Catalog().CreateDepartment(ctx, &model.Department{
			Name:       "IT",
			Email:      "it@example.com",
			Assignable: true,
		})
		gt.NoError(t, err).Required()

		created, err := repo.Catalog().CreateQuestion(ctx, &model.Question{
			DepartmentID: dept.ID,
			Text:         "Laptop returned?",
			Concerned:    true,
		})
		gt.NoError(t, err).Required()

		gt.Value(t, created.ID).NotEqual(int64(0))
		gt.Value(t, created.DepartmentID).Equal(dept.ID)
		gt.Value(t, created.Text).Equal("Laptop returned?")
		gt.Bool(t, created.Concerned).True()
	})

	t.Run("CreateQuestion fails for missing department", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Catalog().CreateQuestion(ctx, &model.Question{
			DepartmentID: 99999,
			Text:         "Orphan question",
		})
		gt.Error(t, err)
	})

	t.Run("ListQuestions returns only the department's questions", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		it, err := repo.Catalog().CreateDepartment(ctx, &model.Department{
			Name: "IT", Email: "it@example.com", Assignable: true,
		})
		gt.NoError(t, err).Required()
		finance, err := repo.Catalog().CreateDepartment(ctx, &model.Department{
			Name: "Finance", Email: "finance@example.com", Assignable: true,
		})
		gt.NoError(t, err).Required()

		for _, text := range []string{"Laptop returned?", "Accounts disabled?"} {
			_, err := repo.Catalog().CreateQuestion(ctx, &model.Question{
				DepartmentID: it.ID,
				Text:         text,
			})
			gt.NoError(t, err).Required()
		}
		_, err = repo.Catalog().CreateQuestion(ctx, &model.Question{
			DepartmentID: finance.ID,
			Text:         "Final settlement cleared?",
		})
		gt.NoError(t, err).Required()

		questions, err := repo.Catalog().ListQuestions(ctx, it.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, questions).Length(2)
		for _, q := range questions {
			gt.Value(t, q.DepartmentID).Equal(it.ID)
		}
	})
}

func TestCatalogRepository_Memory(t *testing.T) {
	runCatalogRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestCatalogRepository_Firestore(t *testing.T) {
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}

	runCatalogRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := firestore.New(context.Background(), projectID, "")
		gt.NoError(t, err).Required()
		return repo
	})
}
