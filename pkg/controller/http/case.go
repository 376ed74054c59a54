package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/hrops-lab/exitclear/pkg/domain/model"
	"github.com/hrops-lab/exitclear/pkg/domain/types"
	"github.com/hrops-lab/exitclear/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
)

type caseResponse struct {
	ID                    int64     `json:"id"`
	EmployeeName          string    `json:"employee_name"`
	EmployeeCode          string    `json:"employee_code"`
	EmployeeDepartment    string    `json:"employee_department"`
	Designation           string    `json:"designation"`
	LastWorkDate          time.Time `json:"last_work_date"`
	Separation            string    `json:"separation"`
	AssignedDepartmentIDs []int64   `json:"assigned_department_ids"`
	CreatedAt             time.Time `json:"created_at"`
}

func toCaseResponse(c *model.ExitCase) caseResponse {
	return caseResponse{
		ID:                    c.ID,
		EmployeeName:          c.EmployeeName,
		EmployeeCode:          c.EmployeeCode,
		EmployeeDepartment:    c.EmployeeDepartment,
		Designation:           c.Designation,
		LastWorkDate:          c.LastWorkDate,
		Separation:            c.Separation.String(),
		AssignedDepartmentIDs: c.AssignedDepartmentIDs,
		CreatedAt:             c.CreatedAt,
	}
}

type caseSummaryResponse struct {
	CaseID  int64  `json:"case_id"`
	Total   int    `json:"total"`
	Pending int    `json:"pending"`
	Done    int    `json:"done"`
	Bucket  string `json:"bucket"`
}

func toCaseSummaryResponse(s *model.CaseSummary) caseSummaryResponse {
	return caseSummaryResponse{
		CaseID:  s.CaseID,
		Total:   s.Total,
		Pending: s.Pending,
		Done:    s.Done,
		Bucket:  s.Bucket.String(),
	}
}

type caseWithSummaryResponse struct {
	Case    caseResponse        `json:"case"`
	Summary caseSummaryResponse `json:"summary"`
}

func toCaseListResponse(cases []*usecase.CaseWithSummary) []caseWithSummaryResponse {
	resp := make([]caseWithSummaryResponse, len(cases))
	for i, c := range cases {
		resp[i] = caseWithSummaryResponse{
			Case:    toCaseResponse(c.Case),
			Summary: toCaseSummaryResponse(c.Summary),
		}
	}
	return resp
}

func createCaseHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		EmployeeName          string  `json:"employee_name"`
		EmployeeCode          string  `json:"employee_code"`
		EmployeeDepartment    string  `json:"employee_department"`
		Designation           string  `json:"designation"`
		LastWorkDate          string  `json:"last_work_date"`
		Separation            string  `json:"separation"`
		AssignedDepartmentIDs []int64 `json:"assigned_department_ids"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			handleError(w, r, goerr.Wrap(usecase.ErrInvalidInput, "invalid request body"))
			return
		}

		lastWorkDate, err := time.Parse("2006-01-02", req.LastWorkDate)
		if err != nil {
			handleError(w, r, goerr.Wrap(usecase.ErrInvalidInput, "last_work_date must be YYYY-MM-DD",
				goerr.V("last_work_date", req.LastWorkDate)))
			return
		}

		separation, err := types.ParseSeparationType(req.Separation)
		if err != nil {
			handleError(w, r, goerr.Wrap(usecase.ErrInvalidInput, "unknown separation type",
				goerr.V("separation", req.Separation)))
			return
		}

		created, err := uc.Case.CreateCase(r.Context(), &usecase.CreateCaseInput{
			EmployeeName:          req.EmployeeName,
			EmployeeCode:          req.EmployeeCode,
			EmployeeDepartment:    req.EmployeeDepartment,
			Designation:           req.Designation,
			LastWorkDate:          lastWorkDate,
			Separation:            separation,
			AssignedDepartmentIDs: req.AssignedDepartmentIDs,
		})
		if err != nil {
			handleError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusCreated, toCaseResponse(created))
	}
}

func getCaseHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caseID, err := urlID(r, "caseID")
		if err != nil {
			handleError(w, r, err)
			return
		}

		c, err := uc.Case.GetCase(r.Context(), caseID)
		if err != nil {
			handleError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusOK, toCaseResponse(c))
	}
}

func listCasesHandler(uc *usecase.UseCases) http.HandlerFunc {
	type response struct {
		Cases []caseWithSummaryResponse `json:"cases"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		cases, err := uc.Case.ListCases(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusOK, response{Cases: toCaseListResponse(cases)})
	}
}

func listCasesByDepartmentHandler(uc *usecase.UseCases) http.HandlerFunc {
	type response struct {
		Cases []caseWithSummaryResponse `json:"cases"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		departmentID, err := urlID(r, "departmentID")
		if err != nil {
			handleError(w, r, err)
			return
		}

		cases, err := uc.Case.ListCasesByDepartment(r.Context(), departmentID)
		if err != nil {
			handleError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusOK, response{Cases: toCaseListResponse(cases)})
	}
}

func caseSummaryHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caseID, err := urlID(r, "caseID")
		if err != nil {
			handleError(w, r, err)
			return
		}

		summary, err := uc.Status.CaseSummary(r.Context(), caseID)
		if err != nil {
			handleError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusOK, toCaseSummaryResponse(summary))
	}
}

func fleetSummaryHandler(uc *usecase.UseCases) http.HandlerFunc {
	type response struct {
		Total      int `json:"total"`
		Pending    int `json:"pending"`
		InProgress int `json:"inprogress"`
		Done       int `json:"done"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		fleet, err := uc.Status.FleetSummary(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusOK, response{
			Total:      fleet.Total,
			Pending:    fleet.Pending,
			InProgress: fleet.InProgress,
			Done:       fleet.Done,
		})
	}
}

func departmentSummaryHandler(uc *usecase.UseCases) http.HandlerFunc {
	type response struct {
		DepartmentID int64 `json:"department_id"`
		Total        int   `json:"total"`
		Pending      int   `json:"pending"`
		Done         int   `json:"done"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		departmentID, err := urlID(r, "departmentID")
		if err != nil {
			handleError(w, r, err)
			return
		}

		summary, err := uc.Status.DepartmentSummary(r.Context(), departmentID)
		if err != nil {
			handleError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusOK, response{
			DepartmentID: summary.DepartmentID,
			Total:        summary.Total,
			Pending:      summary.Pending,
			Done:         summary.Done,
		})
	}
}
