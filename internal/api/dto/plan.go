package dto

import (
	"dropoff-route-planner/internal/domain"
	"time"
)

type DestinationRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Address     string `json:"address" validate:"required,max=300"`
	RequestedBy string `json:"requested_by,omitempty" validate:"omitempty,max=8"`
}

type PlanRequest struct {
	OriginName    string `json:"origin_name" validate:"max=100"`
	OriginAddress string `json:"origin_address" validate:"required,max=300"`
	DepartureTime string `json:"departure_time" validate:"required,max=8"`
	// Optional; when present it must equal len(Destinations).
	DestinationCount *int                 `json:"destination_count,omitempty" validate:"omitempty,min=0"`
	Destinations     []DestinationRequest `json:"destinations" validate:"dive"`
}

// Input converts the body into the raw domain input checked by domain.NewPlanningRequest.
func (r PlanRequest) Input() domain.PlanningInput {
	in := domain.PlanningInput{
		OriginName:       r.OriginName,
		OriginAddress:    r.OriginAddress,
		DepartureTime:    r.DepartureTime,
		DestinationCount: r.DestinationCount,
		Destinations:     make([]domain.DestinationInput, 0, len(r.Destinations)),
	}
	for _, d := range r.Destinations {
		in.Destinations = append(in.Destinations, domain.DestinationInput{
			Name:        d.Name,
			Address:     d.Address,
			RequestedBy: d.RequestedBy,
		})
	}
	return in
}

type SelectRouteRequest struct {
	SelectedRoute *int `json:"selected_route" validate:"required"`
}

type ArrivalResponse struct {
	Name string `json:"name"`
	// Empty when the arrival is not known (aggregate-only costs).
	ArriveAt string `json:"arrive_at,omitempty"`
	Known    bool   `json:"known"`
	Late     bool   `json:"late"`
}

// CandidateResponse omits the numeric totals of failed candidates; their
// display fields carry the error sentinel instead.
type CandidateResponse struct {
	Index                int               `json:"index"`
	Route                string            `json:"route"`
	Status               string            `json:"status"`
	Precision            string            `json:"precision,omitempty"`
	Failure              string            `json:"failure,omitempty"`
	Reason               string            `json:"reason,omitempty"`
	Retryable            bool              `json:"retryable,omitempty"`
	TotalDistanceMeters  *int              `json:"total_distance_meters,omitempty"`
	TotalDurationSeconds *int              `json:"total_duration_seconds,omitempty"`
	TotalDistanceKm      *float64          `json:"total_distance_km,omitempty"`
	TotalDistance        string            `json:"total_distance"`
	TotalDuration        string            `json:"total_duration"`
	Arrivals             []ArrivalResponse `json:"arrivals"`
}

type PlanResponse struct {
	PlanID     string              `json:"plan_id"`
	CreatedAt  time.Time           `json:"created_at"`
	OriginName string              `json:"origin_name"`
	DepartAt   string              `json:"depart_at"`
	Failed     int                 `json:"failed"`
	Candidates []CandidateResponse `json:"candidates"`
}
