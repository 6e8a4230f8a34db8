package distance

import (
	"context"
	"dropoff-route-planner/internal/domain"
	"errors"
	"math"

	"github.com/paulmach/orb/geo"
)

const defaultSpeedKmh = 30.0

// HaversineProvider estimates leg costs from great-circle distance and a fixed speed.
// It needs no network access and serves offline runs and demos.
type HaversineProvider struct {
	speedKmh float64
	// Multiplier applied to straight-line distance to approximate road distance.
	detour float64
}

func NewHaversineProvider(speedKmh float64) *HaversineProvider {
	if speedKmh <= 0 {
		speedKmh = defaultSpeedKmh
	}
	return &HaversineProvider{speedKmh: speedKmh, detour: 1.3}
}

func (h *HaversineProvider) RouteCost(ctx context.Context, waypoints []domain.Coordinates) (domain.RouteCost, error) {
	if err := ctx.Err(); err != nil {
		return domain.RouteCost{}, err
	}
	if len(waypoints) < 2 {
		return domain.RouteCost{}, errors.New("haversine: at least two waypoints are required")
	}

	metersPerSecond := h.speedKmh / 3.6

	legs := make([]domain.LegCost, 0, len(waypoints)-1)
	for i := 1; i < len(waypoints); i++ {
		meters := geo.DistanceHaversine(waypoints[i-1].Point(), waypoints[i].Point()) * h.detour
		legs = append(legs, domain.LegCost{
			DistanceMeters:  int(math.Round(meters)),
			DurationSeconds: int(math.Round(meters / metersPerSecond)),
		})
	}

	return domain.RouteCost{Legs: legs}, nil
}
