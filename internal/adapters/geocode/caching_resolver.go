package geocode

import (
	"context"
	"dropoff-route-planner/internal/domain"
	"dropoff-route-planner/internal/ports"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// CachingResolver fronts a WaypointResolver with an in-process memo, an optional
// persistent GeocodeCache and singleflight de-duplication. Every candidate of a
// run shares the same few addresses, so concurrent schedule builds would
// otherwise geocode each address many times over.
//
// Failures are never cached.
type CachingResolver struct {
	next  ports.WaypointResolver
	cache ports.GeocodeCache

	group singleflight.Group

	mu   sync.RWMutex
	memo map[string]domain.Coordinates
}

func NewCachingResolver(next ports.WaypointResolver, cache ports.GeocodeCache) *CachingResolver {
	return &CachingResolver{
		next:  next,
		cache: cache,
		memo:  make(map[string]domain.Coordinates),
	}
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (r *CachingResolver) Resolve(ctx context.Context, address string) (domain.Coordinates, error) {
	key := normalize(address)
	if key == "" {
		return domain.Coordinates{}, errors.New("resolve: address must be non-empty")
	}

	r.mu.RLock()
	c, ok := r.memo[key]
	r.mu.RUnlock()
	if ok {
		return c, nil
	}

	// The flight is shared across callers, so it must outlive any single
	// caller's deadline. Each caller still stops waiting on its own ctx.
	ch := r.group.DoChan(key, func() (any, error) {
		return r.lookup(context.WithoutCancel(ctx), key)
	})
	select {
	case <-ctx.Done():
		return domain.Coordinates{}, fmt.Errorf("resolve %q: %w", key, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return domain.Coordinates{}, res.Err
		}
		return res.Val.(domain.Coordinates), nil
	}
}

func (r *CachingResolver) lookup(ctx context.Context, key string) (domain.Coordinates, error) {
	logger := zerolog.Ctx(ctx)

	if r.cache != nil {
		hits, err := r.cache.GetMany(ctx, []string{key})
		if err != nil {
			logger.Warn().Err(err).Msg("geocode cache read failed")
		} else if c, ok := hits[key]; ok {
			r.remember(key, c)
			return c, nil
		}
	}

	c, err := r.next.Resolve(ctx, key)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("resolve %q: %w", key, err)
	}

	r.remember(key, c)
	if r.cache != nil {
		if err := r.cache.PutMany(ctx, map[string]domain.Coordinates{key: c}); err != nil {
			logger.Warn().Err(err).Msg("geocode cache write failed")
		}
	}

	return c, nil
}

func (r *CachingResolver) remember(key string, c domain.Coordinates) {
	r.mu.Lock()
	r.memo[key] = c
	r.mu.Unlock()
}
