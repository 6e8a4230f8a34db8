package google

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
	"time"
)

const (
	fieldMaskTotals = "routes.distanceMeters,routes.duration"
	fieldMaskLegs   = fieldMaskTotals + ",routes.legs.distanceMeters,routes.legs.duration"
)

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type waypoint struct {
	Location struct {
		LatLng latLng `json:"latLng"`
	} `json:"location"`
}

type computeRoutesRequest struct {
	Origin            waypoint   `json:"origin"`
	Destination       waypoint   `json:"destination"`
	Intermediates     []waypoint `json:"intermediates,omitempty"`
	TravelMode        string     `json:"travelMode"`
	RoutingPreference string     `json:"routingPreference"`
}

// Zero values are omitted by the API, so distances may be absent.
type computeRoutesResponse struct {
	Routes []struct {
		DistanceMeters int    `json:"distanceMeters"`
		Duration       string `json:"duration"`
		Legs           []struct {
			DistanceMeters int    `json:"distanceMeters"`
			Duration       string `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

func toWaypoint(c domain.Coordinates) waypoint {
	var w waypoint
	w.Location.LatLng = latLng{Latitude: c.Lat, Longitude: c.Lon}
	return w
}

// RouteCost calls computeRoutes for a driving route through all waypoints in order.
func (c *Client) RouteCost(ctx context.Context, waypoints []domain.Coordinates) (_ domain.RouteCost, err error) {
	defer obs.Provider(ctx, "google", "routes")(&err)

	if len(waypoints) < 2 {
		return domain.RouteCost{}, errors.New("google routes: at least two waypoints are required")
	}

	body := computeRoutesRequest{
		Origin:            toWaypoint(waypoints[0]),
		Destination:       toWaypoint(waypoints[len(waypoints)-1]),
		TravelMode:        "DRIVE",
		RoutingPreference: "TRAFFIC_AWARE_OPTIMAL",
	}
	for _, w := range waypoints[1 : len(waypoints)-1] {
		body.Intermediates = append(body.Intermediates, toWaypoint(w))
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return domain.RouteCost{}, fmt.Errorf("google routes: marshal request: %w", err)
	}

	mask := fieldMaskTotals
	if c.perLeg {
		mask = fieldMaskLegs
	}

	resp, err := c.http.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.routesURL, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Goog-Api-Key", c.apiKey)
		req.Header.Set("X-Goog-FieldMask", mask)
		return req, nil
	})
	if err != nil {
		return domain.RouteCost{}, fmt.Errorf("google routes request failed: %w", err)
	}
	defer resp.Body.Close()

	var cr computeRoutesResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return domain.RouteCost{}, fmt.Errorf("google routes: decode response: %w", err)
	}

	return routeCostFromResponse(cr, len(waypoints)-1)
}

func routeCostFromResponse(cr computeRoutesResponse, wantLegs int) (domain.RouteCost, error) {
	if len(cr.Routes) == 0 {
		return domain.RouteCost{}, errors.New("google routes: response has no routes")
	}
	route := cr.Routes[0]

	if len(route.Legs) == wantLegs {
		legs := make([]domain.LegCost, 0, wantLegs)
		for i, l := range route.Legs {
			secs, err := parseSeconds(l.Duration)
			if err != nil {
				return domain.RouteCost{}, fmt.Errorf("google routes: leg %d: %w", i, err)
			}
			legs = append(legs, domain.LegCost{DistanceMeters: l.DistanceMeters, DurationSeconds: secs})
		}
		return domain.RouteCost{Legs: legs}, nil
	}

	secs, err := parseSeconds(route.Duration)
	if err != nil {
		return domain.RouteCost{}, fmt.Errorf("google routes: route total: %w", err)
	}

	return domain.RouteCost{Aggregate: &domain.LegCost{
		DistanceMeters:  route.DistanceMeters,
		DurationSeconds: secs,
	}}, nil
}

// parseSeconds reads protobuf JSON durations such as "21415s" or "12.5s".
func parseSeconds(s string) (int, error) {
	if s == "" {
		return 0, errors.New("missing duration")
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return int(math.Round(d.Seconds())), nil
}
