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

func cmdValidate() *cli.Command {
	var catalogPath string
	var checkDB bool
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog",
			Usage:       "Path to the catalog seed file (TOML) to validate",
			Sources:     cli.EnvVars("EXITCLEAR_CATALOG"),
			Destination: &catalogPath,
		},
		&cli.BoolFlag{
			Name:        "check-db",
			Usage:       "Also check stored data for consistency issues",
			Destination: &checkDB,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "validate",
		Usage: "Validate the catalog file and optionally the stored data",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			if catalogPath != "" {
				catalog, err := config.LoadCatalogFile(catalogPath)
				if err != nil {
					return err
				}
				logger.Info("Catalog file is valid",
					"path", catalogPath,
					"departments", len(catalog.Departments))
			}

			if !checkDB {
				return nil
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			uc := usecase.New(repo)
			result, err := uc.ValidateDB(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to validate database")
			}

			if !result.HasIssues() {
				logger.Info("No consistency issues found")
				return nil
			}

			for _, issue := range result.Issues {
				logger.Warn("Consistency issue",
					"case_id", issue.CaseID,
					"department_id", issue.DepartmentID,
					"message", issue.Message,
					"expected", issue.Expected,
					"actual", issue.Actual)
			}

			return goerr.New("database validation found issues", goerr.V("count", len(result.Issues)))
		},
	}
}
