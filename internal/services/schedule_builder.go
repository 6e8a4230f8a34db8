package services

import (
	"context"
	"dropoff-route-planner/internal/domain"
	"dropoff-route-planner/internal/ports"
	"errors"
	"fmt"
	"time"
)

// ScheduleBuilder computes the schedule of a single candidate.
// It holds no mutable state and is safe for concurrent use.
type ScheduleBuilder struct {
	Resolver ports.WaypointResolver
	Provider ports.LegCostProvider
}

// Build resolves the candidate's waypoints, asks the provider for leg costs and
// derives totals and arrivals. It never returns an error: any failure is carried
// by a failed Schedule tagged with its kind.
func (b *ScheduleBuilder) Build(
	ctx context.Context,
	req *domain.PlanningRequest,
	c domain.Candidate,
) domain.Schedule {
	if err := ctx.Err(); err != nil {
		return domain.FailedSchedule(domain.FailureTimeout, err.Error())
	}

	// Origin only: nothing to resolve or route.
	if len(c.Stops) == 0 {
		return domain.Schedule{
			Status:    domain.StatusComputed,
			Precision: domain.PrecisionPerLeg,
			Arrivals:  []domain.Arrival{},
		}
	}

	waypoints := c.Waypoints(req.OriginAddress)
	coords := make([]domain.Coordinates, 0, len(waypoints))
	for _, w := range waypoints {
		coord, err := b.Resolver.Resolve(ctx, w)
		if err == nil && !coord.Valid() {
			err = fmt.Errorf("invalid coordinate %v", coord.CoordsToList())
		}
		if err != nil {
			return domain.FailedSchedule(
				classify(ctx, err, domain.FailureResolution),
				fmt.Sprintf("resolve %q: %v", w, err),
			)
		}
		coords = append(coords, coord)
	}

	cost, err := b.Provider.RouteCost(ctx, coords)
	if err != nil {
		return domain.FailedSchedule(
			classify(ctx, err, domain.FailureCostProvider),
			fmt.Sprintf("route cost: %v", err),
		)
	}

	schedule, err := Summarize(req.DepartAt, c.Stops, cost)
	if err != nil {
		return domain.FailedSchedule(domain.FailureCostProvider, fmt.Sprintf("route cost: %v", err))
	}

	return schedule
}

// classify reports a timeout when the run's deadline fired, else the step's own kind.
func classify(ctx context.Context, err error, kind domain.FailureKind) domain.FailureKind {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.FailureTimeout
	}
	return kind
}

// Summarize aggregates provider costs into totals and an arrival sequence.
//
// With a per-leg breakdown every arrival is departAt plus the cumulative duration
// up to that stop. With only an aggregate, intermediate arrivals stay unknown and
// only the final stop gets an arrival time. Negative figures count as zero.
func Summarize(departAt time.Time, stops []domain.Destination, cost domain.RouteCost) (domain.Schedule, error) {
	arrivals := make([]domain.Arrival, len(stops))
	for i, s := range stops {
		arrivals[i] = domain.Arrival{Name: s.Name}
	}

	switch {
	case len(cost.Legs) > 0:
		if len(cost.Legs) != len(stops) {
			return domain.Schedule{}, fmt.Errorf("provider returned %d legs for %d stops", len(cost.Legs), len(stops))
		}

		legs := make([]domain.LegCost, len(cost.Legs))
		totalMeters, totalSeconds := 0, 0
		current := departAt
		for i, leg := range cost.Legs {
			leg = clampLeg(leg)
			legs[i] = leg

			totalMeters += leg.DistanceMeters
			totalSeconds += leg.DurationSeconds
			current = current.Add(time.Duration(leg.DurationSeconds) * time.Second)

			arrivals[i].ArriveAt = current
			arrivals[i].Known = true
			arrivals[i].Late = isLate(stops[i], current)
		}

		return domain.Schedule{
			Status:               domain.StatusComputed,
			Precision:            domain.PrecisionPerLeg,
			TotalDistanceMeters:  totalMeters,
			TotalDurationSeconds: totalSeconds,
			Legs:                 legs,
			Arrivals:             arrivals,
		}, nil

	case cost.Aggregate != nil:
		total := clampLeg(*cost.Aggregate)
		last := len(stops) - 1
		final := departAt.Add(time.Duration(total.DurationSeconds) * time.Second)

		arrivals[last].ArriveAt = final
		arrivals[last].Known = true
		arrivals[last].Late = isLate(stops[last], final)

		return domain.Schedule{
			Status:               domain.StatusComputed,
			Precision:            domain.PrecisionAggregate,
			TotalDistanceMeters:  total.DistanceMeters,
			TotalDurationSeconds: total.DurationSeconds,
			Arrivals:             arrivals,
		}, nil

	default:
		return domain.Schedule{}, errors.New("provider returned neither legs nor a route total")
	}
}

func clampLeg(l domain.LegCost) domain.LegCost {
	if l.DistanceMeters < 0 {
		l.DistanceMeters = 0
	}
	if l.DurationSeconds < 0 {
		l.DurationSeconds = 0
	}
	return l
}

func isLate(d domain.Destination, arriveAt time.Time) bool {
	return d.RequestedBy != nil && arriveAt.After(*d.RequestedBy)
}
