package memory

import (
	"github.com/hrops-lab/exitclear/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = goerr.New("record not found")

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is an in-memory repository for development and tests
type Memory struct {
	catalog   *catalogRepository
	cases     *caseRepository
	checklist *checklistRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		catalog:   newCatalogRepository(),
		cases:     newCaseRepository(),
		checklist: newChecklistRepository(),
	}
}

func (m *Memory) Catalog() interfaces.CatalogRepository {
	return m.catalog
}

func (m *Memory) Cases() interfaces.CaseRepository {
	return m.cases
}

func (m *Memory) Checklist() interfaces.ChecklistRepository {
	return m.checklist
}

func (m *Memory) Close() error {
	return nil
}
