package geocode

import (
	"context"
	"dropoff-route-planner/internal/domain"
	"errors"
)

var ErrNoGeocoder = errors.New("no geocoding service configured; address is not in the geocode cache")

// OfflineResolver is the fallback behind a CachingResolver when no geocoding
// service is configured: only cached or seeded addresses resolve.
type OfflineResolver struct{}

func (OfflineResolver) Resolve(ctx context.Context, address string) (domain.Coordinates, error) {
	return domain.Coordinates{}, ErrNoGeocoder
}
