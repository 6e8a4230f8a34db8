package ors

import (
	"bytes"
	"context"
	"dropoff-route-planner/internal/domain"
	"dropoff-route-planner/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
)

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
	Units       string      `json:"units"`
}

type directionsResponse struct {
	Routes []struct {
		Summary *struct {
			Distance *float64 `json:"distance"`
			Duration *float64 `json:"duration"`
		} `json:"summary"`
		Segments []struct {
			Distance *float64 `json:"distance"`
			Duration *float64 `json:"duration"`
		} `json:"segments"`
	} `json:"routes"`
}

// RouteCost requests a driving route through all waypoints in order using
// /v2/directions/{profile}. Each ORS segment is one leg; when segments are
// missing or incomplete the route summary is returned as an aggregate.
func (c *Client) RouteCost(ctx context.Context, waypoints []domain.Coordinates) (_ domain.RouteCost, err error) {
	defer obs.Provider(ctx, "ors", "directions")(&err)

	if len(waypoints) < 2 {
		return domain.RouteCost{}, errors.New("ors directions: at least two waypoints are required")
	}

	coords := make([][]float64, 0, len(waypoints))
	for _, w := range waypoints {
		coords = append(coords, w.CoordsToList())
	}

	payload, err := json.Marshal(directionsRequest{Coordinates: coords, Units: "m"})
	if err != nil {
		return domain.RouteCost{}, fmt.Errorf("ors directions: marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s", c.baseURL, c.profile)

	resp, err := c.http.DoWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return domain.RouteCost{}, fmt.Errorf("ors directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return domain.RouteCost{}, fmt.Errorf("ors directions: decode response: %w", err)
	}

	return routeCostFromResponse(dr, len(waypoints)-1)
}

func routeCostFromResponse(dr directionsResponse, wantLegs int) (domain.RouteCost, error) {
	if len(dr.Routes) == 0 {
		return domain.RouteCost{}, errors.New("ors directions: response has no routes")
	}
	route := dr.Routes[0]

	if len(route.Segments) == wantLegs {
		legs := make([]domain.LegCost, 0, wantLegs)
		complete := true
		for _, s := range route.Segments {
			if s.Distance == nil || s.Duration == nil {
				complete = false
				break
			}
			// ORS returns float metrics; round to nearest integer for domain consistency.
			legs = append(legs, domain.LegCost{
				DistanceMeters:  int(math.Round(*s.Distance)),
				DurationSeconds: int(math.Round(*s.Duration)),
			})
		}
		if complete {
			return domain.RouteCost{Legs: legs}, nil
		}
	}

	// ORS omits zero-valued summary fields, so a present summary with missing
	// members means zero rather than malformed.
	if route.Summary == nil {
		return domain.RouteCost{}, errors.New("ors directions: route has neither segments nor summary")
	}
	agg := domain.LegCost{}
	if route.Summary.Distance != nil {
		agg.DistanceMeters = int(math.Round(*route.Summary.Distance))
	}
	if route.Summary.Duration != nil {
		agg.DurationSeconds = int(math.Round(*route.Summary.Duration))
	}

	return domain.RouteCost{Aggregate: &agg}, nil
}
