package services

import (
	"context"
	"dropoff-route-planner/internal/adapters/distance"
	"dropoff-route-planner/internal/adapters/geocode"
	"dropoff-route-planner/internal/domain"
	"time"
)

var testCoords = map[string]domain.Coordinates{
	"addrHome": {Lon: 139.700, Lat: 35.600},
	"addrA":    {Lon: 139.710, Lat: 35.600},
	"addrB":    {Lon: 139.710, Lat: 35.610},
	"addrC":    {Lon: 139.720, Lat: 35.610},
}

var testPairs = []distance.MockPair{
	{From: "addrHome", To: "addrA", Meters: 1000, Seconds: 600},
	{From: "addrHome", To: "addrB", Meters: 2500, Seconds: 1000},
	{From: "addrHome", To: "addrC", Meters: 3000, Seconds: 1200},
	{From: "addrA", To: "addrB", Meters: 2000, Seconds: 900},
	{From: "addrB", To: "addrA", Meters: 2100, Seconds: 950},
	{From: "addrA", To: "addrC", Meters: 1500, Seconds: 500},
	{From: "addrC", To: "addrA", Meters: 1500, Seconds: 520},
	{From: "addrB", To: "addrC", Meters: 800, Seconds: 300},
	{From: "addrC", To: "addrB", Meters: 800, Seconds: 310},
}

func clock(h, m int) time.Time { return time.Date(0, 1, 1, h, m, 0, 0, time.UTC) }

func testRequest(names ...string) *domain.PlanningRequest {
	req := &domain.PlanningRequest{
		OriginName:    "Home",
		OriginAddress: "addrHome",
		DepartAt:      clock(8, 0),
	}
	for _, n := range names {
		req.Destinations = append(req.Destinations, domain.Destination{Name: n, Address: "addr" + n})
	}
	return req
}

func testBuilder(failing ...string) (*ScheduleBuilder, *geocode.StaticResolver, *distance.MockDistanceProvider) {
	resolver := geocode.NewStaticResolver(testCoords, failing...)
	provider := distance.NewMockDistanceProvider(testCoords, testPairs)
	return &ScheduleBuilder{Resolver: resolver, Provider: provider}, resolver, provider
}

// blockingProvider never answers for sequences whose first stop is blockFirst;
// it waits for the run's deadline instead.
type blockingProvider struct {
	next       *distance.MockDistanceProvider
	blockFirst domain.Coordinates
}

func (p *blockingProvider) RouteCost(ctx context.Context, waypoints []domain.Coordinates) (domain.RouteCost, error) {
	if len(waypoints) > 1 && waypoints[1] == p.blockFirst {
		<-ctx.Done()
		return domain.RouteCost{}, ctx.Err()
	}
	return p.next.RouteCost(ctx, waypoints)
}

// delayProvider answers slower for earlier candidates so completion order
// differs from enumeration order.
type delayProvider struct {
	next *distance.MockDistanceProvider
}

func (p *delayProvider) RouteCost(ctx context.Context, waypoints []domain.Coordinates) (domain.RouteCost, error) {
	if len(waypoints) > 1 && waypoints[1] == testCoords["addrA"] {
		time.Sleep(30 * time.Millisecond)
	}
	return p.next.RouteCost(ctx, waypoints)
}
