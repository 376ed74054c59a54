package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hrops-lab/exitclear/pkg/domain/model"
	"github.com/hrops-lab/exitclear/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
)

func urlID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, goerr.Wrap(usecase.ErrInvalidInput, "invalid ID in path", goerr.V("param", name), goerr.V("value", raw))
	}
	return id, nil
}

type departmentResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Assignable bool      `json:"assignable"`
	CreatedAt  time.Time `json:"created_at"`
}

func toDepartmentResponse(d *model.Department) departmentResponse {
	return departmentResponse{
		ID:         d.ID,
		Name:       d.Name,
		Email:      d.Email,
		Assignable: d.Assignable,
		CreatedAt:  d.CreatedAt,
	}
}

func createDepartmentHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Name       string `json:"name"`
		Email      string `json:"email"`
		Assignable bool   `json:"assignable"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			handleError(w, r, goerr.Wrap(usecase.ErrInvalidInput, "invalid request body"))
			return
		}

		dept, err := uc.Catalog.CreateDepartment(r.Context(), req.Name, req.Email, req.Assignable)
		if err != nil {
			handleError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusCreated, toDepartmentResponse(dept))
	}
}

func listDepartmentsHandler(uc *usecase.UseCases) http.HandlerFunc {
	type response struct {
		Departments []departmentResponse `json:"departments"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		depts, err := uc.Catalog.ListDepartments(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}

		resp := response{Departments: make([]departmentResponse, len(depts))}
		for i, d := range depts {
			resp.Departments[i] = toDepartmentResponse(d)
		}

		respondJSON(w, r, http.StatusOK, resp)
	}
}

type questionResponse struct {
	ID           int64  `json:"id"`
	DepartmentID int64  `json:"department_id"`
	Text         string `json:"text"`
	Concerned    bool   `json:"concerned"`
}

func toQuestionResponse(q *model.Question) questionResponse {
	return questionResponse{
		ID:           q.ID,
		DepartmentID: q.DepartmentID,
		Text:         q.Text,
		Concerned:    q.Concerned,
	}
}

func addQuestionsHandler(uc *usecase.UseCases) http.HandlerFunc {
	type questionRequest struct {
		Text      string `json:"text"`
		Concerned bool   `json:"concerned"`
	}
	type request struct {
		Questions []questionRequest `json:"questions"`
	}
	type response struct {
		Questions []questionResponse `json:"questions"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		departmentID, err := urlID(r, "departmentID")
		if err != nil {
			handleError(w, r, err)
			return
		}

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			handleError(w, r, goerr.Wrap(usecase.ErrInvalidInput, "invalid request body"))
			return
		}

		inputs := make([]usecase.QuestionInput, len(req.Questions))
		for i, q := range req.Questions {
			inputs[i] = usecase.QuestionInput{Text: q.Text, Concerned: q.Concerned}
		}

		created, err := uc.Catalog.AddQuestions(r.Context(), departmentID, inputs)
		if err != nil {
			handleError(w, r, err)
			return
		}

		resp := response{Questions: make([]questionResponse, len(created))}
		for i, q := range created {
			resp.Questions[i] = toQuestionResponse(q)
		}

		respondJSON(w, r, http.StatusCreated, resp)
	}
}

func listQuestionsHandler(uc *usecase.UseCases) http.HandlerFunc {
	type response struct {
		Questions []questionResponse `json:"questions"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		departmentID, err := urlID(r, "departmentID")
		if err != nil {
			handleError(w, r, err)
			return
		}

		questions, err := uc.Catalog.ListQuestions(r.Context(), departmentID)
		if err != nil {
			handleError(w, r, err)
			return
		}

		resp := response{Questions: make([]questionResponse, len(questions))}
		for i, q := range questions {
			resp.Questions[i] = toQuestionResponse(q)
		}

		respondJSON(w, r, http.StatusOK, resp)
	}
}
