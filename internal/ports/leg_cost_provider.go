package ports

import (
	"context"
	"dropoff-route-planner/internal/domain"
)

// Contract for retrieving real-world travel cost along an ordered coordinate sequence.
type LegCostProvider interface {
	// Return per-leg costs (len(waypoints)-1 legs) or, when the provider cannot
	// break the route down, only an aggregate. len(waypoints) must be >= 2.
	RouteCost(ctx context.Context, waypoints []domain.Coordinates) (domain.RouteCost, error)
}
