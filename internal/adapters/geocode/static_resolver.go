package geocode

import (
	"context"
	"dropoff-route-planner/internal/domain"
	"fmt"
	"sync"
)

// StaticResolver resolves from a fixed address table. Addresses listed in
// Fail, or missing from the table, fail to resolve.
type StaticResolver struct {
	coords map[string]domain.Coordinates
	fail   map[string]bool

	mu    sync.Mutex
	calls map[string]int
}

func NewStaticResolver(coords map[string]domain.Coordinates, fail ...string) *StaticResolver {
	f := make(map[string]bool, len(fail))
	for _, a := range fail {
		f[a] = true
	}
	return &StaticResolver{coords: coords, fail: f, calls: make(map[string]int)}
}

func (s *StaticResolver) Resolve(ctx context.Context, address string) (domain.Coordinates, error) {
	s.mu.Lock()
	s.calls[address]++
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return domain.Coordinates{}, err
	}
	if s.fail[address] {
		return domain.Coordinates{}, fmt.Errorf("address %q not found", address)
	}
	c, ok := s.coords[address]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("address %q not found", address)
	}
	return c, nil
}

// Calls returns how many times address was looked up.
func (s *StaticResolver) Calls(address string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[address]
}
