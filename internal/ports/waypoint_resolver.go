package ports

import (
	"context"
	"dropoff-route-planner/internal/domain"
)

// Contract for turning an address descriptor into a routable coordinate.
// Any non-nil error is treated by the planner as a resolution failure.
type WaypointResolver interface {
	Resolve(ctx context.Context, address string) (domain.Coordinates, error)
}
