package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/hrops-lab/exitclear/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type departmentDoc struct {
	ID   int64  `firestore:"ID"`
	Name string `firestore:"Name"`
	// NameLower backs the case-insensitive uniqueness lookup
	NameLower  string    `firestore:"NameLower"`
	Email      string    `firestore:"Email"`
	Assignable bool      `firestore:"Assignable"`
	CreatedAt  time.Time `firestore:"CreatedAt"`
	UpdatedAt  time.Time `firestore:"UpdatedAt"`
}

func (d *departmentDoc) toModel() *model.Department {
	return &model.Department{
		ID:         d.ID,
		Name:       d.Name,
		Email:      d.Email,
		Assignable: d.Assignable,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type questionDoc struct {
	ID           int64     `firestore:"ID"`
	DepartmentID int64     `firestore:"DepartmentID"`
	Text         string    `firestore:"Text"`
	Concerned    bool      `firestore:"Concerned"`
	CreatedAt    time.Time `firestore:"CreatedAt"`
}

func (q *questionDoc) toModel() *model.Question {
	return &model.Question{
		ID:           q.ID,
		DepartmentID: q.DepartmentID,
		Text:         q.Text,
		Concerned:    q.Concerned,
		CreatedAt:    q.CreatedAt,
	}
}

type catalogRepository struct {
	client   *firestore.Client
	counters *counterStore
}

func newCatalogRepository(client *firestore.Client, counters *counterStore) *catalogRepository {
	return &catalogRepository{client: client, counters: counters}
}

func (r *catalogRepository) CreateDepartment(ctx context.Context, dept *model.Department) (*model.Department, error) {
	nextID, err := r.counters.nextID(ctx, "department_counter")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := &departmentDoc{
		ID:         nextID,
		Name:       dept.Name,
		NameLower:  model.NormalizeDepartmentName(dept.Name),
		Email:      dept.Email,
		Assignable: dept.Assignable,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	docID := fmt.Sprintf("%d", doc.ID)
	if _, err := r.client.Collection(collectionDepartments).Doc(docID).Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create department", goerr.V("id", doc.ID))
	}

	return doc.toModel(), nil
}

func (r *catalogRepository) GetDepartment(ctx context.Context, id int64) (*model.Department, error) {
	docID := fmt.Sprintf("%d", id)
	docSnap, err := r.client.Collection(collectionDepartments).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "department not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get department", goerr.V("id", id))
	}

	var doc departmentDoc
	if err := docSnap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode department", goerr.V("id", id))
	}

	return doc.toModel(), nil
}

func (r *catalogRepository) GetDepartmentByName(ctx context.Context, name string) (*model.Department, error) {
	iter := r.client.Collection(collectionDepartments).
		Where("NameLower", "==", model.NormalizeDepartmentName(name)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query department by name", goerr.V("name", name))
	}

	var doc departmentDoc
	if err := docSnap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode department", goerr.V("doc_id", docSnap.Ref.ID))
	}

	return doc.toModel(), nil
}

func (r *catalogRepository) ListDepartments(ctx context.Context) ([]*model.Department, error) {
	iter := r.client.Collection(collectionDepartments).OrderBy("ID", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var depts []*model.Department
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate departments")
		}

		var doc departmentDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode department", goerr.V("doc_id", docSnap.Ref.ID))
		}

		depts = append(depts, doc.toModel())
	}

	return depts, nil
}

func (r *catalogRepository) CreateQuestion(ctx context.Context, q *model.Question) (*model.Question, error) {
	// Question creation references the owning department; surface a
	// NotFound instead of writing an orphan.
	if _, err := r.GetDepartment(ctx, q.DepartmentID); err != nil {
		return nil, err
	}

	nextID, err := r.counters.nextID(ctx, "question_counter")
	if err != nil {
		return nil, err
	}

	doc := &questionDoc{
		ID:           nextID,
		DepartmentID: q.DepartmentID,
		Text:         q.Text,
		Concerned:    q.Concerned,
		CreatedAt:    time.Now().UTC(),
	}

	docID := fmt.Sprintf("%d", doc.ID)
	if _, err := r.client.Collection(collectionQuestions).Doc(docID).Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create question", goerr.V("id", doc.ID))
	}

	return doc.toModel(), nil
}

func (r *catalogRepository) ListQuestions(ctx context.Context, departmentID int64) ([]*model.Question, error) {
	iter := r.client.Collection(collectionQuestions).
		Where("DepartmentID", "==", departmentID).
		OrderBy("ID", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var questions []*model.Question
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate questions", goerr.V("department_id", departmentID))
		}

		var doc questionDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode question", goerr.V("doc_id", docSnap.Ref.ID))
		}

		questions = append(questions, doc.toModel())
	}

	return questions, nil
}
