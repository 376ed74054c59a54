package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/hrops-lab/exitclear/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

// ErrNotFound is returned when a requested document does not exist
var ErrNotFound = goerr.New("record not found")

// Collection names. The migrate command keeps the composite indexes for
// these in sync.
const (
	collectionDepartments = "departments"
	collectionQuestions   = "questions"
	collectionCases       = "cases"
	collectionResponses   = "responses"
	collectionAnnotations = "annotations"
	collectionCounters    = "counters"
)

type Firestore struct {
	client    *firestore.Client
	catalog   *catalogRepository
	cases     *caseRepository
	checklist *checklistRepository
}

var _ interfaces.Repository = &Firestore{}

func New(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID))
	}

	counters := newCounterStore(client)

	return &Firestore{
		client:    client,
		catalog:   newCatalogRepository(client, counters),
		cases:     newCaseRepository(client, counters),
		checklist: newChecklistRepository(client),
	}, nil
}

func (f *Firestore) Catalog() interfaces.CatalogRepository {
	return f.catalog
}

func (f *Firestore) Cases() interfaces.CaseRepository {
	return f.cases
}

func (f *Firestore) Checklist() interfaces.ChecklistRepository {
	return f.checklist
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
