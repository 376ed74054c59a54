package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/hrops-lab/exitclear/pkg/domain/model"
	"github.com/hrops-lab/exitclear/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type caseDoc struct {
	ID                    int64     `firestore:"ID"`
	EmployeeName          string    `firestore:"EmployeeName"`
	EmployeeCode          string    `firestore:"EmployeeCode"`
	EmployeeDepartment    string    `firestore:"EmployeeDepartment"`
	Designation           string    `firestore:"Designation"`
	LastWorkDate          time.Time `firestore:"LastWorkDate"`
	Separation            string    `firestore:"Separation"`
	AssignedDepartmentIDs []int64   `firestore:"AssignedDepartmentIDs"`
	CreatedAt             time.Time `firestore:"CreatedAt"`
	UpdatedAt             time.Time `firestore:"UpdatedAt"`
}

func (d *caseDoc) toModel() *model.ExitCase {
	return &model.ExitCase{
		ID:                    d.ID,
		EmployeeName:          d.EmployeeName,
		EmployeeCode:          d.EmployeeCode,
		EmployeeDepartment:    d.EmployeeDepartment,
		Designation:           d.Designation,
		LastWorkDate:          d.LastWorkDate,
		Separation:            types.SeparationType(d.Separation),
		AssignedDepartmentIDs: d.AssignedDepartmentIDs,
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
	}
}

type caseRepository struct {
	client   *firestore.Client
	counters *counterStore
}

func newCaseRepository(client *firestore.Client, counters *counterStore) *caseRepository {
	return &caseRepository{client: client, counters: counters}
}

func (r *caseRepository) Create(ctx context.Context, c *model.ExitCase) (*model.ExitCase, error) {
	nextID, err := r.counters.nextID(ctx, "case_counter")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := &caseDoc{
		ID:                    nextID,
		EmployeeName:          c.EmployeeName,
		EmployeeCode:          c.EmployeeCode,
		EmployeeDepartment:    c.EmployeeDepartment,
		Designation:           c.Designation,
		LastWorkDate:          c.LastWorkDate,
		Separation:            c.Separation.String(),
		AssignedDepartmentIDs: c.AssignedDepartmentIDs,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	docID := fmt.Sprintf("%d", doc.ID)
	if _, err := r.client.Collection(collectionCases).Doc(docID).Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create exit case", goerr.V("id", doc.ID))
	}

	return doc.toModel(), nil
}

func (r *caseRepository) Get(ctx context.Context, id int64) (*model.ExitCase, error) {
	docID := fmt.Sprintf("%d", id)
	docSnap, err := r.client.Collection(collectionCases).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "exit case not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get exit case", goerr.V("id", id))
	}

	var doc caseDoc
	if err := docSnap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode exit case", goerr.V("id", id))
	}

	return doc.toModel(), nil
}

func (r *caseRepository) List(ctx context.Context) ([]*model.ExitCase, error) {
	iter := r.client.Collection(collectionCases).OrderBy("ID", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	return r.collect(iter)
}

func (r *caseRepository) ListByDepartment(ctx context.Context, departmentID int64) ([]*model.ExitCase, error) {
	iter := r.client.Collection(collectionCases).
		Where("AssignedDepartmentIDs", "array-contains", departmentID).
		Documents(ctx)
	defer iter.Stop()

	return r.collect(iter)
}

func (r *caseRepository) collect(iter *firestore.DocumentIterator) ([]*model.ExitCase, error) {
	var cases []*model.ExitCase
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate exit cases")
		}

		var doc caseDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode exit case", goerr.V("doc_id", docSnap.Ref.ID))
		}

		cases = append(cases, doc.toModel())
	}

	return cases, nil
}
