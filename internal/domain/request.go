package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// Accepted layouts for departure and requested-by times (no date component).
	ClockLayout        = "15:04"
	ClockLayoutSeconds = "15:04:05"
	// Layout used when reporting arrivals.
	ArrivalLayout = "15:04:05"
)

// Destination is one drop-off: who is dropped, where, and by when they would like to arrive.
// RequestedBy is advisory only and never constrains planning.
type Destination struct {
	Name        string     `json:"name"`
	Address     string     `json:"address"`
	RequestedBy *time.Time `json:"requested_by,omitempty"`
}

// PlanningRequest is the validated, immutable input of one planning run.
// DepartAt carries only a time of day; its date is the zero date.
type PlanningRequest struct {
	OriginName    string        `json:"origin_name"`
	OriginAddress string        `json:"origin_address"`
	DepartAt      time.Time     `json:"depart_at"`
	Destinations  []Destination `json:"destinations"`
}

// DestinationInput and PlanningInput are the raw, unvalidated request fields
// as submitted by a caller (HTTP form, JSON body or YAML file).
type DestinationInput struct {
	Name        string
	Address     string
	RequestedBy string
}

type PlanningInput struct {
	OriginName    string
	OriginAddress string
	DepartureTime string
	// Optional explicit count; must match len(Destinations) when set.
	DestinationCount *int
	Destinations     []DestinationInput
}

// ParseClock parses a time of day in "15:04" or "15:04:05" form.
func ParseClock(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(ClockLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(ClockLayoutSeconds, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse clock %q: want HH:MM", s)
	}
	return t, nil
}

// NewPlanningRequest validates raw input and builds a PlanningRequest.
// All problems are reported together; nothing is planned for a malformed request.
// maxDestinations <= 0 disables the size check.
func NewPlanningRequest(in PlanningInput, maxDestinations int) (*PlanningRequest, error) {
	rerr := &RequestError{}

	originAddress := strings.TrimSpace(in.OriginAddress)
	if originAddress == "" {
		rerr.add("origin address is required")
	}

	originName := strings.TrimSpace(in.OriginName)
	if originName == "" {
		originName = originAddress
	}

	var departAt time.Time
	if strings.TrimSpace(in.DepartureTime) == "" {
		rerr.add("departure time is required")
	} else if t, err := ParseClock(in.DepartureTime); err != nil {
		rerr.add("departure time: %v", err)
	} else {
		departAt = t
	}

	if in.DestinationCount != nil && *in.DestinationCount != len(in.Destinations) {
		rerr.add("destination count %d does not match %d destinations supplied", *in.DestinationCount, len(in.Destinations))
	}

	if maxDestinations > 0 && len(in.Destinations) > maxDestinations {
		rerr.add("at most %d destinations can be planned, got %d", maxDestinations, len(in.Destinations))
	}

	destinations := make([]Destination, 0, len(in.Destinations))
	for i, d := range in.Destinations {
		name := strings.TrimSpace(d.Name)
		address := strings.TrimSpace(d.Address)
		if name == "" {
			rerr.add("destination %d: name is required", i+1)
		}
		if address == "" {
			rerr.add("destination %d: address is required", i+1)
		}

		dest := Destination{Name: name, Address: address}
		if strings.TrimSpace(d.RequestedBy) != "" {
			t, err := ParseClock(d.RequestedBy)
			if err != nil {
				rerr.add("destination %d: requested-by time: %v", i+1, err)
			} else {
				dest.RequestedBy = &t
			}
		}
		destinations = append(destinations, dest)
	}

	if len(rerr.Problems) > 0 {
		return nil, rerr
	}

	return &PlanningRequest{
		OriginName:    originName,
		OriginAddress: originAddress,
		DepartAt:      departAt,
		Destinations:  destinations,
	}, nil
}
