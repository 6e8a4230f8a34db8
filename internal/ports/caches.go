package ports

import (
	"context"
	"dropoff-route-planner/internal/domain"
)

// Persistent address -> coordinate cache used in front of a WaypointResolver.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}

// LegKey identifies one directed hop between two coordinates.
type LegKey struct {
	From domain.Coordinates
	To   domain.Coordinates
}

// Persistent per-leg cost cache used in front of a LegCostProvider.
type LegCache interface {
	GetMany(ctx context.Context, keys []LegKey) (map[LegKey]domain.LegCost, error)
	PutMany(ctx context.Context, results map[LegKey]domain.LegCost) error
}
