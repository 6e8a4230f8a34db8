package distance

import (
	"context"
	"dropoff-route-planner/internal/domain"
	"fmt"
	"sync/atomic"
)

// MockPair is one directed leg known to the mock provider.
type MockPair struct {
	From, To string
	Meters   int
	Seconds  int
}

// MockDistanceProvider answers from a fixed table of legs keyed by coordinate.
// Coordinates are matched through the resolver-side names registered with Name.
type MockDistanceProvider struct {
	names map[string]string
	m     map[string]domain.LegCost
	// AggregateOnly makes RouteCost report only the route total.
	AggregateOnly bool
	calls         atomic.Int64
}

func NewMockDistanceProvider(coords map[string]domain.Coordinates, pairs []MockPair) *MockDistanceProvider {
	names := make(map[string]string, len(coords))
	for name, c := range coords {
		names[c.Key()] = name
	}

	m := make(map[string]domain.LegCost, len(pairs))
	for _, p := range pairs {
		m[p.From+"|"+p.To] = domain.LegCost{DistanceMeters: p.Meters, DurationSeconds: p.Seconds}
	}
	return &MockDistanceProvider{names: names, m: m}
}

// Calls reports how many RouteCost requests were made.
func (p *MockDistanceProvider) Calls() int64 { return p.calls.Load() }

func (p *MockDistanceProvider) RouteCost(ctx context.Context, waypoints []domain.Coordinates) (domain.RouteCost, error) {
	p.calls.Add(1)

	if err := ctx.Err(); err != nil {
		return domain.RouteCost{}, err
	}
	if len(waypoints) < 2 {
		return domain.RouteCost{}, fmt.Errorf("mock provider: need at least two waypoints, got %d", len(waypoints))
	}

	legs := make([]domain.LegCost, 0, len(waypoints)-1)
	total := domain.LegCost{}
	for i := 1; i < len(waypoints); i++ {
		from, to := p.names[waypoints[i-1].Key()], p.names[waypoints[i].Key()]
		r, ok := p.m[from+"|"+to]
		if !ok {
			return domain.RouteCost{}, fmt.Errorf("missing pair %q -> %q", from, to)
		}
		legs = append(legs, r)
		total.DistanceMeters += r.DistanceMeters
		total.DurationSeconds += r.DurationSeconds
	}

	if p.AggregateOnly {
		return domain.RouteCost{Aggregate: &total}, nil
	}
	return domain.RouteCost{Legs: legs}, nil
}
