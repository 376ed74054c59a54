package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"github.com/hrops-lab/exitclear/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type responseDoc struct {
	CaseID       int64     `firestore:"CaseID"`
	QuestionID   int64     `firestore:"QuestionID"`
	DepartmentID int64     `firestore:"DepartmentID"`
	Checked      bool      `firestore:"Checked"`
	CreatedAt    time.Time `firestore:"CreatedAt"`
	UpdatedAt    time.Time `firestore:"UpdatedAt"`
}

func (d *responseDoc) toModel() *model.Response {
	return &model.Response{
		CaseID:       d.CaseID,
		QuestionID:   d.QuestionID,
		DepartmentID: d.DepartmentID,
		Checked:      d.Checked,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type annotationDoc struct {
	ID           string    `firestore:"ID"`
	CaseID       int64     `firestore:"CaseID"`
	DepartmentID int64     `firestore:"DepartmentID"`
	Comment      string    `firestore:"Comment"`
	AuthorizedBy string    `firestore:"AuthorizedBy"`
	CreatedAt    time.Time `firestore:"CreatedAt"`
	UpdatedAt    time.Time `firestore:"UpdatedAt"`
}

func (d *annotationDoc) toModel() *model.Annotation {
	return &model.Annotation{
		ID:           d.ID,
		CaseID:       d.CaseID,
		DepartmentID: d.DepartmentID,
		Comment:      d.Comment,
		AuthorizedBy: d.AuthorizedBy,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func responseDocID(caseID, questionID int64) string {
	return fmt.Sprintf("%d_%d", caseID, questionID)
}

func annotationDocID(caseID, departmentID int64) string {
	return fmt.Sprintf("%d_%d", caseID, departmentID)
}

type checklistRepository struct {
	client *firestore.Client
}

func newChecklistRepository(client *firestore.Client) *checklistRepository {
	return &checklistRepository{client: client}
}

func (r *checklistRepository) MaterializeResponses(ctx context.Context, caseID, departmentID int64, questionIDs []int64) error {
	now := time.Now().UTC()
	for _, qid := range questionIDs {
		doc := &responseDoc{
			CaseID:       caseID,
			QuestionID:   qid,
			DepartmentID: departmentID,
			Checked:      false,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		docRef := r.client.Collection(collectionResponses).Doc(responseDocID(caseID, qid))
		if _, err := docRef.Create(ctx, doc); err != nil {
			// Already materialized rows keep their recorded answers.
			if status.Code(err) == codes.AlreadyExists {
				continue
			}
			return goerr.Wrap(err, "failed to materialize response",
				goerr.V("case_id", caseID),
				goerr.V("question_id", qid))
		}
	}

	return nil
}

func (r *checklistRepository) ListResponses(ctx context.Context, caseID, departmentID int64) ([]*model.Response, error) {
	iter := r.client.Collection(collectionResponses).
		Where("CaseID", "==", caseID).
		Where("DepartmentID", "==", departmentID).
		OrderBy("QuestionID", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var responses []*model.Response
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate responses",
				goerr.V("case_id", caseID),
				goerr.V("department_id", departmentID))
		}

		var doc responseDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode response", goerr.V("doc_id", docSnap.Ref.ID))
		}

		responses = append(responses, doc.toModel())
	}

	return responses, nil
}

func (r *checklistRepository) WriteResponses(ctx context.Context, caseID, departmentID int64, updates map[int64]bool) error {
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		// All reads go first: the transaction fails before any write when a
		// row is missing, so a bad batch never lands partially.
		type pendingWrite struct {
			ref     *firestore.DocumentRef
			checked bool
		}
		writes := make([]pendingWrite, 0, len(updates))

		for qid, checked := range updates {
			docRef := r.client.Collection(collectionResponses).Doc(responseDocID(caseID, qid))
			docSnap, err := tx.Get(docRef)
			if err != nil {
				if status.Code(err) == codes.NotFound {
					return goerr.Wrap(ErrNotFound, "response not materialized for checklist",
						goerr.V("case_id", caseID),
						goerr.V("department_id", departmentID),
						goerr.V("question_id", qid))
				}
				return goerr.Wrap(err, "failed to get response", goerr.V("question_id", qid))
			}

			var doc responseDoc
			if err := docSnap.DataTo(&doc); err != nil {
				return goerr.Wrap(err, "failed to decode response", goerr.V("doc_id", docSnap.Ref.ID))
			}
			if doc.DepartmentID != departmentID {
				return goerr.Wrap(ErrNotFound, "response not materialized for checklist",
					goerr.V("case_id", caseID),
					goerr.V("department_id", departmentID),
					goerr.V("question_id", qid))
			}

			writes = append(writes, pendingWrite{ref: docRef, checked: checked})
		}

		now := time.Now().UTC()
		for _, w := range writes {
			if err := tx.Update(w.ref, []firestore.Update{
				{Path: "Checked", Value: w.checked},
				{Path: "UpdatedAt", Value: now},
			}); err != nil {
				return goerr.Wrap(err, "failed to update response")
			}
		}

		return nil
	})
	if err != nil {
		return goerr.Wrap(err, "failed to write responses",
			goerr.V("case_id", caseID),
			goerr.V("department_id", departmentID))
	}

	return nil
}

func (r *checklistRepository) CountResponses(ctx context.Context, caseID, departmentID int64) (int64, int64, error) {
	base := r.client.Collection(collectionResponses).
		Where("CaseID", "==", caseID).
		Where("DepartmentID", "==", departmentID)

	total, err := r.countQuery(ctx, base)
	if err != nil {
		return 0, 0, goerr.Wrap(err, "failed to count responses",
			goerr.V("case_id", caseID),
			goerr.V("department_id", departmentID))
	}

	checked, err := r.countQuery(ctx, base.Where("Checked", "==", true))
	if err != nil {
		return 0, 0, goerr.Wrap(err, "failed to count checked responses",
			goerr.V("case_id", caseID),
			goerr.V("department_id", departmentID))
	}

	return total, checked, nil
}

func (r *checklistRepository) countQuery(ctx context.Context, q firestore.Query) (int64, error) {
	result, err := q.NewAggregationQuery().WithCount("count").Get(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to run count aggregation")
	}

	raw, ok := result["count"]
	if !ok {
		return 0, goerr.New("count aggregation returned no result")
	}
	value, ok := raw.(*firestorepb.Value)
	if !ok {
		return 0, goerr.New("count aggregation result has unexpected type", goerr.V("value", raw))
	}

	return value.GetIntegerValue(), nil
}

func (r *checklistRepository) GetAnnotation(ctx context.Context, caseID, departmentID int64) (*model.Annotation, error) {
	docRef := r.client.Collection(collectionAnnotations).Doc(annotationDocID(caseID, departmentID))
	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get annotation",
			goerr.V("case_id", caseID),
			goerr.V("department_id", departmentID))
	}

	var doc annotationDoc
	if err := docSnap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode annotation", goerr.V("doc_id", docSnap.Ref.ID))
	}

	return doc.toModel(), nil
}

func (r *checklistRepository) UpsertAnnotation(ctx context.Context, ann *model.Annotation) (*model.Annotation, error) {
	docRef := r.client.Collection(collectionAnnotations).Doc(annotationDocID(ann.CaseID, ann.DepartmentID))

	var stored annotationDoc
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		now := time.Now().UTC()
		stored = annotationDoc{
			ID:           annotationDocID(ann.CaseID, ann.DepartmentID),
			CaseID:       ann.CaseID,
			DepartmentID: ann.DepartmentID,
			Comment:      ann.Comment,
			AuthorizedBy: ann.AuthorizedBy,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		docSnap, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) != codes.NotFound {
				return goerr.Wrap(err, "failed to get annotation")
			}
		} else {
			var existing annotationDoc
			if err := docSnap.DataTo(&existing); err != nil {
				return goerr.Wrap(err, "failed to decode annotation", goerr.V("doc_id", docSnap.Ref.ID))
			}
			stored.CreatedAt = existing.CreatedAt
		}

		return tx.Set(docRef, &stored)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to upsert annotation",
			goerr.V("case_id", ann.CaseID),
			goerr.V("department_id", ann.DepartmentID))
	}

	return stored.toModel(), nil
}
