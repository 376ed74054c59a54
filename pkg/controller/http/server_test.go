package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	controller "github.com/hrops-lab/exitclear/pkg/controller/http"
	"github.com/hrops-lab/exitclear/pkg/repository/memory"
	"github.com/hrops-lab/exitclear/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func newTestServer(t *testing.T) *controller.Server {
	t.Helper()
	return controller.New(usecase.New(memory.New()))
}

func doJSON(t *testing.T, srv *controller.Server, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		gt.NoError(t, json.NewEncoder(&buf).Encode(body)).Required()
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	gt.NoError(t, json.NewDecoder(rec.Body).Decode(&out)).Required()
	return out
}

type departmentBody struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type questionsBody struct {
	Questions []struct {
		ID   int64  `json:"id"`
		Text string `json:"text"`
	} `json:"questions"`
}

type caseBody struct {
	ID int64 `json:"id"`
}

func TestServerScenario(t *testing.T) {
	srv := newTestServer(t)

	// HR sets up the department catalog
	rec := doJSON(t, srv, http.MethodPost, "/api/departments", map[string]any{
		"name": "IT", "email": "it@example.com", "assignable": true,
	}, nil)
	gt.Number(t, rec.Code).Equal(http.StatusCreated)
	it := decodeBody[departmentBody](t, rec)

	rec = doJSON(t, srv, http.MethodPost, "/api/departments", map[string]any{
		"name": "Finance", "email": "finance@example.com", "assignable": true,
	}, nil)
	gt.Number(t, rec.Code).Equal(http.StatusCreated)
	finance := decodeBody[departmentBody](t, rec)

	rec = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/departments/%d/questions", it.ID), map[string]any{
		"questions": []map[string]any{
			{"text": "Laptop returned?", "concerned": true},
			{"text": "Accounts disabled?"},
		},
	}, nil)
	gt.Number(t, rec.Code).Equal(http.StatusCreated)
	itQs := decodeBody[questionsBody](t, rec)
	gt.Array(t, itQs.Questions).Length(2)

	rec = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/departments/%d/questions", finance.ID), map[string]any{
		"questions": []map[string]any{
			{"text": "Final settlement cleared?"},
		},
	}, nil)
	gt.Number(t, rec.Code).Equal(http.StatusCreated)
	finQs := decodeBody[questionsBody](t, rec)

	// HR opens an exit case
	rec = doJSON(t, srv, http.MethodPost, "/api/cases", map[string]any{
		"employee_name":           "Asha Verma",
		"employee_code":           "E-1042",
		"employee_department":     "Engineering",
		"designation":             "Senior Engineer",
		"last_work_date":          "2026-09-30",
		"separation":              "resignation",
		"assigned_department_ids": []int64{it.ID, finance.ID},
	}, nil)
	gt.Number(t, rec.Code).Equal(http.StatusCreated)
	exitCase := decodeBody[caseBody](t, rec)

	// Fresh case is pending
	rec = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/cases/%d/summary", exitCase.ID), nil, nil)
	gt.Number(t, rec.Code).Equal(http.StatusOK)
	summary := decodeBody[map[string]any](t, rec)
	gt.Value(t, summary["bucket"]).Equal("pending")

	// IT fetches its checklist, which materializes the rows
	itHeaders := map[string]string{
		"X-Actor-Role":       "department",
		"X-Actor-Department": fmt.Sprintf("%d", it.ID),
	}
	rec = doJSON(t, srv, http.MethodGet,
		fmt.Sprintf("/api/cases/%d/departments/%d/checklist", exitCase.ID, it.ID), nil, itHeaders)
	gt.Number(t, rec.Code).Equal(http.StatusOK)
	checklist := decodeBody[map[string]any](t, rec)
	gt.Array(t, checklist["items"].([]any)).Length(2)

	// IT submits a full clearance
	rec = doJSON(t, srv, http.MethodPost,
		fmt.Sprintf("/api/cases/%d/departments/%d/submission", exitCase.ID, it.ID), map[string]any{
			"responses": map[string]bool{
				fmt.Sprintf("%d", itQs.Questions[0].ID): true,
				fmt.Sprintf("%d", itQs.Questions[1].ID): true,
			},
			"comment":       "All hardware recovered",
			"authorized_by": "J. Menon",
		}, itHeaders)
	gt.Number(t, rec.Code).Equal(http.StatusOK)
	submitResp := decodeBody[map[string]any](t, rec)
	gt.Value(t, submitResp["submission_id"]).NotEqual("")

	deptStatus := submitResp["department_status"].(map[string]any)
	gt.Value(t, deptStatus["status"]).Equal("done")
	caseSummary := submitResp["case_summary"].(map[string]any)
	gt.Value(t, caseSummary["bucket"]).Equal("inprogress")

	// Finance clears its single item
	finHeaders := map[string]string{
		"X-Actor-Role":       "department",
		"X-Actor-Department": fmt.Sprintf("%d", finance.ID),
	}
	rec = doJSON(t, srv, http.MethodPost,
		fmt.Sprintf("/api/cases/%d/departments/%d/submission", exitCase.ID, finance.ID), map[string]any{
			"responses": map[string]bool{
				fmt.Sprintf("%d", finQs.Questions[0].ID): true,
			},
			"authorized_by": "R. Pillai",
		}, finHeaders)
	gt.Number(t, rec.Code).Equal(http.StatusOK)
	submitResp = decodeBody[map[string]any](t, rec)
	caseSummary = submitResp["case_summary"].(map[string]any)
	gt.Value(t, caseSummary["bucket"]).Equal("done")

	// Fleet summary counts the cleared case
	rec = doJSON(t, srv, http.MethodGet, "/api/cases/summary", nil, nil)
	gt.Number(t, rec.Code).Equal(http.StatusOK)
	fleet := decodeBody[map[string]any](t, rec)
	gt.Value(t, fleet["total"]).Equal(float64(1))
	gt.Value(t, fleet["done"]).Equal(float64(1))

	// HR overview shows both departments
	rec = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/cases/%d/overview", exitCase.ID), nil, nil)
	gt.Number(t, rec.Code).Equal(http.StatusOK)
	overview := decodeBody[map[string]any](t, rec)
	gt.Array(t, overview["departments"].([]any)).Length(2)
}

func TestServerErrorMapping(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/departments", map[string]any{
		"name": "IT", "email": "it@example.com", "assignable": true,
	}, nil)
	gt.Number(t, rec.Code).Equal(http.StatusCreated)
	it := decodeBody[departmentBody](t, rec)

	t.Run("duplicate department is 400", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/departments", map[string]any{
			"name": "it", "email": "other@example.com", "assignable": true,
		}, nil)
		gt.Number(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("unknown case is 404", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/cases/99999/summary", nil, nil)
		gt.Number(t, rec.Code).Equal(http.StatusNotFound)
	})

	t.Run("unknown department questions is 404", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/departments/99999/questions", nil, nil)
		gt.Number(t, rec.Code).Equal(http.StatusNotFound)
	})

	t.Run("foreign department actor is 403", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/cases", map[string]any{
			"employee_name":           "Ravi Nair",
			"employee_code":           "E-2001",
			"employee_department":     "Sales",
			"designation":             "Manager",
			"last_work_date":          "2026-10-15",
			"separation":              "termination",
			"assigned_department_ids": []int64{it.ID},
		}, nil)
		gt.Number(t, rec.Code).Equal(http.StatusCreated)
		exitCase := decodeBody[caseBody](t, rec)

		headers := map[string]string{
			"X-Actor-Role":       "department",
			"X-Actor-Department": fmt.Sprintf("%d", it.ID+100),
		}
		rec = doJSON(t, srv, http.MethodGet,
			fmt.Sprintf("/api/cases/%d/departments/%d/checklist", exitCase.ID, it.ID), nil, headers)
		gt.Number(t, rec.Code).Equal(http.StatusForbidden)
	})

	t.Run("submission without signatory is 400", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/cases", map[string]any{
			"employee_name":           "Meera Iyer",
			"employee_code":           "E-3001",
			"employee_department":     "Marketing",
			"designation":             "Manager",
			"last_work_date":          "2026-11-01",
			"separation":              "retirement",
			"assigned_department_ids": []int64{it.ID},
		}, nil)
		gt.Number(t, rec.Code).Equal(http.StatusCreated)
		exitCase := decodeBody[caseBody](t, rec)

		rec = doJSON(t, srv, http.MethodPost,
			fmt.Sprintf("/api/cases/%d/departments/%d/submission", exitCase.ID, it.ID), map[string]any{
				"responses":     map[string]bool{},
				"authorized_by": "  ",
			}, nil)
		gt.Number(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("malformed case ID is 400", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/cases/abc/summary", nil, nil)
		gt.Number(t, rec.Code).Equal(http.StatusBadRequest)
	})
}
