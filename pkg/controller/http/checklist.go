package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/hrops-lab/exitclear/pkg/domain/model"
	"github.com/hrops-lab/exitclear/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
)

type checklistItemResponse struct {
	QuestionID int64  `json:"question_id"`
	Text       string `json:"text"`
	Concerned  bool   `json:"concerned"`
	Checked    bool   `json:"checked"`
}

type annotationResponse struct {
	Comment      string    `json:"comment"`
	AuthorizedBy string    `json:"authorized_by"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type checklistResponse struct {
	CaseID       int64                   `json:"case_id"`
	DepartmentID int64                   `json:"department_id"`
	Items        []checklistItemResponse `json:"items"`
	Annotation   *annotationResponse     `json:"annotation,omitempty"`
}

func toChecklistResponse(c *model.Checklist) checklistResponse {
	resp := checklistResponse{
		CaseID:       c.CaseID,
		DepartmentID: c.DepartmentID,
		Items:        make([]checklistItemResponse, len(c.Items)),
	}
	for i, item := range c.Items {
		resp.Items[i] = checklistItemResponse{
			QuestionID: item.QuestionID,
			Text:       item.Text,
			Concerned:  item.Concerned,
			Checked:    item.Checked,
		}
	}
	if c.Annotation != nil {
		resp.Annotation = &annotationResponse{
			Comment:      c.Annotation.Comment,
			AuthorizedBy: c.Annotation.AuthorizedBy,
			UpdatedAt:    c.Annotation.UpdatedAt,
		}
	}
	return resp
}

type departmentProgressResponse struct {
	DepartmentID int64  `json:"department_id"`
	Status       string `json:"status"`
	Started      bool   `json:"started"`
}

func toProgressResponse(p *model.DepartmentProgress) departmentProgressResponse {
	return departmentProgressResponse{
		DepartmentID: p.DepartmentID,
		Status:       p.Status.String(),
		Started:      p.Started,
	}
}

func getChecklistHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caseID, err := urlID(r, "caseID")
		if err != nil {
			handleError(w, r, err)
			return
		}
		departmentID, err := urlID(r, "departmentID")
		if err != nil {
			handleError(w, r, err)
			return
		}

		checklist, err := uc.Checklist.GetChecklist(r.Context(), caseID, departmentID)
		if err != nil {
			handleError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusOK, toChecklistResponse(checklist))
	}
}

func submitHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Responses    map[int64]bool `json:"responses"`
		Comment      string         `json:"comment"`
		AuthorizedBy string         `json:"authorized_by"`
	}
	type response struct {
		SubmissionID     string                     `json:"submission_id"`
		Checklist        checklistResponse          `json:"checklist"`
		DepartmentStatus departmentProgressResponse `json:"department_status"`
		CaseSummary      caseSummaryResponse        `json:"case_summary"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		caseID, err := urlID(r, "caseID")
		if err != nil {
			handleError(w, r, err)
			return
		}
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

		result, err := uc.Checklist.Submit(r.Context(), caseID, departmentID, &usecase.SubmitInput{
			Responses:    req.Responses,
			Comment:      req.Comment,
			AuthorizedBy: req.AuthorizedBy,
		})
		if err != nil {
			handleError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusOK, response{
			SubmissionID:     result.SubmissionID,
			Checklist:        toChecklistResponse(result.Checklist),
			DepartmentStatus: toProgressResponse(result.DepartmentStatus),
			CaseSummary:      toCaseSummaryResponse(result.CaseSummary),
		})
	}
}

func caseOverviewHandler(uc *usecase.UseCases) http.HandlerFunc {
	type departmentOverviewResponse struct {
		Department departmentResponse         `json:"department"`
		Checklist  checklistResponse          `json:"checklist"`
		Progress   departmentProgressResponse `json:"progress"`
	}
	type response struct {
		Case        caseResponse                 `json:"case"`
		Summary     caseSummaryResponse          `json:"summary"`
		Departments []departmentOverviewResponse `json:"departments"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		caseID, err := urlID(r, "caseID")
		if err != nil {
			handleError(w, r, err)
			return
		}

		overview, err := uc.Checklist.Overview(r.Context(), caseID)
		if err != nil {
			handleError(w, r, err)
			return
		}

		resp := response{
			Case:        toCaseResponse(overview.Case),
			Summary:     toCaseSummaryResponse(overview.Summary),
			Departments: make([]departmentOverviewResponse, len(overview.Departments)),
		}
		for i, d := range overview.Departments {
			resp.Departments[i] = departmentOverviewResponse{
				Department: toDepartmentResponse(d.Department),
				Checklist:  toChecklistResponse(d.Checklist),
				Progress:   toProgressResponse(d.Progress),
			}
		}

		respondJSON(w, r, http.StatusOK, resp)
	}
}
