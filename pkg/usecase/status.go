package usecase

import (
	"context"

	"github.com/hrops-lab/exitclear/pkg/domain/interfaces"
	"github.com/hrops-lab/exitclear/pkg/domain/model"
	"github.com/hrops-lab/exitclear/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// StatusUseCase derives clearance status on demand. Status is never
// stored: every answer is recomputed from response and annotation rows,
// with a short-lived per-case cache in front for listing endpoints.
type StatusUseCase struct {
	repo  interfaces.Repository
	cache *statusCache
}

func NewStatusUseCase(repo interfaces.Repository) *StatusUseCase {
	return &StatusUseCase{
		repo:  repo,
		cache: newStatusCache(),
	}
}

// DepartmentProgress derives one department's progress on one case from
// its response counts and annotation.
func (uc *StatusUseCase) DepartmentProgress(ctx context.Context, caseID, departmentID int64) (*model.DepartmentProgress, error) {
	total, checked, err := uc.repo.Checklist().CountResponses(ctx, caseID, departmentID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to count responses",
			goerr.V(CaseIDKey, caseID),
			goerr.V(DepartmentIDKey, departmentID))
	}

	started := checked > 0
	if !started {
		// An annotation without any checked box still counts as activity
		ann, err := uc.repo.Checklist().GetAnnotation(ctx, caseID, departmentID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to get annotation",
				goerr.V(CaseIDKey, caseID),
				goerr.V(DepartmentIDKey, departmentID))
		}
		started = ann != nil
	}

	return &model.DepartmentProgress{
		DepartmentID: departmentID,
		Status:       model.DeriveDepartmentStatus(total, checked),
		Started:      started,
	}, nil
}

// CaseSummary derives the case-level summary over every assigned
// department, fanning out the per-department counts concurrently.
func (uc *StatusUseCase) CaseSummary(ctx context.Context, caseID int64) (*model.CaseSummary, error) {
	if summary, ok := uc.cache.get(caseID); ok {
		return summary, nil
	}

	c, err := uc.repo.Cases().Get(ctx, caseID)
	if err != nil {
		return nil, goerr.Wrap(ErrCaseNotFound, "exit case not found", goerr.V(CaseIDKey, caseID))
	}

	summary, err := uc.summarize(ctx, c)
	if err != nil {
		return nil, err
	}

	uc.cache.set(summary)
	return summary, nil
}

func (uc *StatusUseCase) summarize(ctx context.Context, c *model.ExitCase) (*model.CaseSummary, error) {
	progress := make([]model.DepartmentProgress, len(c.AssignedDepartmentIDs))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, deptID := range c.AssignedDepartmentIDs {
		eg.Go(func() error {
			p, err := uc.DepartmentProgress(egCtx, c.ID, deptID)
			if err != nil {
				return err
			}
			progress[i] = *p
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "failed to derive case summary", goerr.V(CaseIDKey, c.ID))
	}

	return model.SummarizeCase(c.ID, progress), nil
}

// FleetSummary derives the bucket counts over every exit case
func (uc *StatusUseCase) FleetSummary(ctx context.Context) (*model.FleetSummary, error) {
	cases, err := uc.repo.Cases().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list exit cases")
	}

	buckets := make([]types.CaseBucket, len(cases))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(8)
	for i, c := range cases {
		eg.Go(func() error {
			summary, err := uc.CaseSummary(egCtx, c.ID)
			if err != nil {
				return err
			}
			buckets[i] = summary.Bucket
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	fleet := &model.FleetSummary{}
	for _, bucket := range buckets {
		fleet.Add(bucket)
	}

	return fleet, nil
}

// DepartmentSummary derives one department's workload over the cases
// assigned to it.
func (uc *StatusUseCase) DepartmentSummary(ctx context.Context, departmentID int64) (*model.DepartmentSummary, error) {
	if _, err := uc.repo.Catalog().GetDepartment(ctx, departmentID); err != nil {
		return nil, goerr.Wrap(ErrDepartmentNotFound, "department not found", goerr.V(DepartmentIDKey, departmentID))
	}

	cases, err := uc.repo.Cases().ListByDepartment(ctx, departmentID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list cases by department", goerr.V(DepartmentIDKey, departmentID))
	}

	statuses := make([]types.ClearanceStatus, len(cases))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(8)
	for i, c := range cases {
		eg.Go(func() error {
			p, err := uc.DepartmentProgress(egCtx, c.ID, departmentID)
			if err != nil {
				return err
			}
			statuses[i] = p.Status
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	summary := &model.DepartmentSummary{
		DepartmentID: departmentID,
		Total:        len(cases),
	}
	for _, st := range statuses {
		if st == types.ClearanceDone {
			summary.Done++
		} else {
			summary.Pending++
		}
	}

	return summary, nil
}

// Invalidate drops the cached summary of one case. Called after every
// submission so the next listing reflects the new answers.
func (uc *StatusUseCase) Invalidate(caseID int64) {
	uc.cache.remove(caseID)
}
