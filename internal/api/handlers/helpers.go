package handlers

import (
	"dropoff-route-planner/internal/domain"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
)

type errorResponse struct {
	Error    string   `json:"error"`
	Problems []string `json:"problems,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("encode response failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorResponse{Error: msg})
}

// writeDomainError maps request-scoped domain errors to HTTP statuses.
// Anything unrecognized is logged and reported as a generic 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var rerr *domain.RequestError
	switch {
	case errors.As(err, &rerr):
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: domain.ErrMalformedRequest.Error(), Problems: rerr.Problems})
	case errors.Is(err, domain.ErrMalformedRequest):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrSelectionNotFound), errors.Is(err, domain.ErrPlanNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
