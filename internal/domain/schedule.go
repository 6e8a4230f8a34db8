package domain

import (
	"fmt"
	"time"
)

// Distance and travel duration of one hop between consecutive waypoints.
type LegCost struct {
	DistanceMeters  int `json:"distance_meters"`
	DurationSeconds int `json:"duration_seconds"`
}

// RouteCost is what a leg cost provider returns for a waypoint sequence.
// Legs is set when the provider reports a per-leg breakdown; otherwise
// only Aggregate is available.
type RouteCost struct {
	Legs      []LegCost
	Aggregate *LegCost
}

type ScheduleStatus string

const (
	StatusComputed ScheduleStatus = "computed"
	StatusFailed   ScheduleStatus = "failed"
)

// Precision states how arrival times were derived.
type Precision string

const (
	PrecisionPerLeg    Precision = "per_leg"
	PrecisionAggregate Precision = "aggregate"
)

// Arrival is the clock time a destination is reached.
// Known is false for intermediate stops when only an aggregate cost was available.
// Late is advisory: the arrival is after the destination's requested-by time.
type Arrival struct {
	Name     string    `json:"name"`
	ArriveAt time.Time `json:"arrive_at"`
	Known    bool      `json:"known"`
	Late     bool      `json:"late"`
}

// Schedule is the computed outcome for one candidate, or a tagged failure.
// A failed schedule carries no distance, duration or arrivals.
type Schedule struct {
	Status               ScheduleStatus `json:"status"`
	Precision            Precision      `json:"precision,omitempty"`
	TotalDistanceMeters  int            `json:"total_distance_meters"`
	TotalDurationSeconds int            `json:"total_duration_seconds"`
	Legs                 []LegCost      `json:"legs,omitempty"`
	Arrivals             []Arrival      `json:"arrivals"`
	Failure              FailureKind    `json:"failure,omitempty"`
	Reason               string         `json:"reason,omitempty"`
}

func FailedSchedule(kind FailureKind, reason string) Schedule {
	return Schedule{
		Status:  StatusFailed,
		Failure: kind,
		Reason:  reason,
	}
}

func (s Schedule) Failed() bool { return s.Status == StatusFailed }

// Err returns nil for computed schedules and the tagged failure otherwise.
func (s Schedule) Err() error {
	if !s.Failed() {
		return nil
	}
	base := s.Failure.Err()
	if base == nil {
		base = ErrCostProvider
	}
	if s.Reason == "" {
		return base
	}
	return fmt.Errorf("%w: %s", base, s.Reason)
}

// FinalArrival returns the last known arrival, if any.
func (s Schedule) FinalArrival() (Arrival, bool) {
	for i := len(s.Arrivals) - 1; i >= 0; i-- {
		if s.Arrivals[i].Known {
			return s.Arrivals[i], true
		}
	}
	return Arrival{}, false
}
