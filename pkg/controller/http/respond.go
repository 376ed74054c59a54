package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hrops-lab/exitclear/pkg/usecase"
	"github.com/hrops-lab/exitclear/pkg/utils/errutil"
	"github.com/hrops-lab/exitclear/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

func respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

// handleError maps use case sentinel errors to HTTP status codes
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrAccessDenied):
		errutil.HandleHTTP(r.Context(), w, err, http.StatusForbidden)
	case errors.Is(err, usecase.ErrCaseNotFound), errors.Is(err, usecase.ErrDepartmentNotFound):
		errutil.HandleHTTP(r.Context(), w, err, http.StatusNotFound)
	default:
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
	}
}
