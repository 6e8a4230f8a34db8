package handlers

import (
	"context"
	"dropoff-route-planner/internal/api/dto"
	"dropoff-route-planner/internal/domain"
	"dropoff-route-planner/internal/ports"
	"dropoff-route-planner/internal/services"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// Planner computes a PlanningResult for a validated request.
type Planner interface {
	Plan(ctx context.Context, req *domain.PlanningRequest) (*domain.PlanningResult, error)
}

// PlanHandler exposes the planning session: plan, inspect, export one route, discard.
type PlanHandler struct {
	Planner         Planner
	Store           ports.PlanStore
	Exporter        ports.DocumentExporter
	Formatter       services.SheetFormatter
	MaxDestinations int
	Validate        *validator.Validate
}

// Create validates the request, plans every visiting order and stores the result
// under a new plan id that later selection requests refer to.
func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body dto.PlanRequest
	if !h.decode(w, r, &body) {
		return
	}

	req, err := domain.NewPlanningRequest(body.Input(), h.MaxDestinations)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	result, err := h.Planner.Plan(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	if err := h.Store.Save(r.Context(), result); err != nil {
		writeDomainError(w, r, fmt.Errorf("save plan: %w", err))
		return
	}

	w.Header().Set("Location", "/plans/"+result.ID)
	writeJSON(w, r, http.StatusCreated, h.planResponse(result))
}

func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.Store.Get(r.Context(), chi.URLParam(r, "planID"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, h.planResponse(result))
}

// Document renders the selected candidate of a stored plan as a downloadable document.
// A missing selection is a bad request; an index outside the plan is not found.
func (h *PlanHandler) Document(w http.ResponseWriter, r *http.Request) {
	index, ok := h.selectedRoute(w, r)
	if !ok {
		return
	}

	result, err := h.Store.Get(r.Context(), chi.URLParam(r, "planID"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	doc, err := services.ExportRoute(result, index, h.Formatter, h.Exporter)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	zerolog.Ctx(r.Context()).Info().
		Str("plan_id", result.ID).
		Int("selected_route", index).
		Int("bytes", len(doc)).
		Msg("route document exported")

	w.Header().Set("Content-Type", h.Exporter.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="selected_route%s"`, h.Exporter.FileExtension()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

// Delete discards a stored plan once the caller is done with it.
func (h *PlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Delete(r.Context(), chi.URLParam(r, "planID")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// selectedRoute reads the selection from a JSON body or, for HTML forms, the
// selected_route form field.
func (h *PlanHandler) selectedRoute(w http.ResponseWriter, r *http.Request) (int, bool) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data" {
		raw := strings.TrimSpace(r.FormValue("selected_route"))
		if raw == "" {
			writeError(w, r, http.StatusBadRequest, "selected_route is required")
			return 0, false
		}
		index, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "selected_route must be an integer")
			return 0, false
		}
		return index, true
	}

	var body dto.SelectRouteRequest
	if !h.decode(w, r, &body) {
		return 0, false
	}
	if body.SelectedRoute == nil {
		writeError(w, r, http.StatusBadRequest, "selected_route is required")
		return 0, false
	}
	return *body.SelectedRoute, true
}

// decode reads exactly one JSON object into v and validates its struct tags.
func (h *PlanHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}

	if h.Validate == nil {
		return true
	}
	if err := h.Validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			problems := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				problems = append(problems, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
			}
			writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: domain.ErrMalformedRequest.Error(), Problems: problems})
			return false
		}
		writeError(w, r, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func (h *PlanHandler) planResponse(result *domain.PlanningResult) dto.PlanResponse {
	res := dto.PlanResponse{
		PlanID:     result.ID,
		CreatedAt:  result.CreatedAt,
		OriginName: result.Request.OriginName,
		DepartAt:   result.Request.DepartAt.Format(domain.ClockLayout),
		Failed:     result.Failed(),
		Candidates: make([]dto.CandidateResponse, 0, result.Len()),
	}

	for _, e := range result.Entries {
		s := e.Schedule
		c := dto.CandidateResponse{
			Index:     e.Candidate.Index,
			Route:     e.Candidate.Label,
			Status:    string(s.Status),
			Precision: string(s.Precision),
			Failure:   string(s.Failure),
			Reason:    s.Reason,
			Retryable: s.Failure.Retryable(),
			Arrivals:  make([]dto.ArrivalResponse, 0, len(s.Arrivals)),
		}

		if s.Failed() {
			c.TotalDistance = services.ErrorSentinel
			c.TotalDuration = services.ErrorSentinel
		} else {
			meters, seconds := s.TotalDistanceMeters, s.TotalDurationSeconds
			km := services.KilometersRounded(meters)
			c.TotalDistanceMeters = &meters
			c.TotalDurationSeconds = &seconds
			c.TotalDistanceKm = &km
			c.TotalDistance = h.Formatter.Distance(s.TotalDistanceMeters)
			c.TotalDuration = h.Formatter.Duration(s.TotalDurationSeconds)
		}

		for _, a := range s.Arrivals {
			ar := dto.ArrivalResponse{Name: a.Name, Known: a.Known, Late: a.Late}
			if a.Known {
				ar.ArriveAt = a.ArriveAt.Format(domain.ArrivalLayout)
			}
			c.Arrivals = append(c.Arrivals, ar)
		}

		res.Candidates = append(res.Candidates, c)
	}

	return res
}
