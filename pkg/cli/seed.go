package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hrops-lab/exitclear/pkg/cli/config"
	"github.com/hrops-lab/exitclear/pkg/usecase"
	"github.com/hrops-lab/exitclear/pkg/utils/logging"
	"github.com/hrops-lab/exitclear/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdSeed() *cli.Command {
	var catalogPath string
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog",
			Usage:       "Path to the catalog seed file (TOML)",
			Required:    true,
			Sources:     cli.EnvVars("EXITCLEAR_CATALOG"),
			Destination: &catalogPath,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "seed",
		Usage: "Load departments and questions from a catalog file",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			catalog, err := config.LoadCatalogFile(catalogPath)
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			uc := usecase.New(repo)
			logger := logging.Default()

			for _, dept := range catalog.Departments {
				// Seeding is idempotent on department name: an existing
				// department keeps its ID and only gains missing questions.
				existing, err := repo.Catalog().GetDepartmentByName(ctx, dept.Name)
				if err != nil {
					return goerr.Wrap(err, "failed to look up department", goerr.V("name", dept.Name))
				}

				var departmentID int64
				if existing != nil {
					departmentID = existing.ID
					logger.Info("Department already exists", "name", dept.Name, "id", departmentID)
				} else {
					created, err := uc.Catalog.CreateDepartment(ctx, dept.Name, dept.Email, dept.Assignable)
					if err != nil {
						return goerr.Wrap(err, "failed to create department", goerr.V("name", dept.Name))
					}
					departmentID = created.ID
					logger.Info("Created department", "name", dept.Name, "id", departmentID)
				}

				current, err := repo.Catalog().ListQuestions(ctx, departmentID)
				if err != nil {
					return goerr.Wrap(err, "failed to list questions", goerr.V("name", dept.Name))
				}
				known := make(map[string]bool, len(current))
				for _, q := range current {
					known[q.Text] = true
				}

				var inputs []usecase.QuestionInput
				for _, q := range dept.Questions {
					if known[q.Text] {
						continue
					}
					inputs = append(inputs, usecase.QuestionInput{Text: q.Text, Concerned: q.Concerned})
				}

				if len(inputs) == 0 {
					continue
				}
				if _, err := uc.Catalog.AddQuestions(ctx, departmentID, inputs); err != nil {
					return goerr.Wrap(err, "failed to add questions", goerr.V("name", dept.Name))
				}
				logger.Info("Added questions", "name", dept.Name, "count", len(inputs))
			}

			logger.Info("Catalog seed completed", "departments", len(catalog.Departments))
			return nil
		},
	}
}
