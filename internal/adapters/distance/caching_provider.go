package distance

import (
	"context"
	"dropoff-route-planner/internal/domain"
	"dropoff-route-planner/internal/ports"
	"fmt"

	"github.com/rs/zerolog"
)

// CachingProvider serves a waypoint sequence from the leg cache when every leg
// is cached, and otherwise asks the wrapped provider and stores its per-leg answer.
//
// Permutations of the same stops share most legs, so after the first few
// candidates most sequences are answered without a provider round-trip.
type CachingProvider struct {
	next  ports.LegCostProvider
	cache ports.LegCache
}

func NewCachingProvider(next ports.LegCostProvider, cache ports.LegCache) *CachingProvider {
	return &CachingProvider{next: next, cache: cache}
}

func (c *CachingProvider) RouteCost(ctx context.Context, waypoints []domain.Coordinates) (domain.RouteCost, error) {
	if c.cache == nil || len(waypoints) < 2 {
		return c.next.RouteCost(ctx, waypoints)
	}

	keys := make([]ports.LegKey, 0, len(waypoints)-1)
	for i := 1; i < len(waypoints); i++ {
		keys = append(keys, ports.LegKey{From: waypoints[i-1], To: waypoints[i]})
	}

	hits, err := c.cache.GetMany(ctx, keys)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("leg cache read failed")
		hits = nil
	}

	if len(hits) > 0 {
		legs := make([]domain.LegCost, 0, len(keys))
		for _, k := range keys {
			l, ok := hits[k]
			if !ok {
				break
			}
			legs = append(legs, l)
		}
		if len(legs) == len(keys) {
			return domain.RouteCost{Legs: legs}, nil
		}
	}

	cost, err := c.next.RouteCost(ctx, waypoints)
	if err != nil {
		return domain.RouteCost{}, fmt.Errorf("caching provider: %w", err)
	}

	// Only a complete per-leg breakdown can be cached leg by leg.
	if len(cost.Legs) == len(keys) {
		fresh := make(map[ports.LegKey]domain.LegCost, len(keys))
		for i, k := range keys {
			fresh[k] = cost.Legs[i]
		}
		if err := c.cache.PutMany(ctx, fresh); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("leg cache write failed")
		}
	}

	return cost, nil
}
