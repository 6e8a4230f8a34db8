package google

import (
	"context"
	"dropoff-route-planner/internal/domain"
	"dropoff-route-planner/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Resolve geocodes an address with the Geocoding API and takes the first result.
// Any status other than OK (ZERO_RESULTS, OVER_QUERY_LIMIT, ...) is a failure.
func (c *Client) Resolve(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Provider(ctx, "google", "geocode")(&err)

	address = strings.Join(strings.Fields(address), " ")
	if address == "" {
		return domain.Coordinates{}, errors.New("google geocode: address must be non-empty")
	}

	resp, err := c.http.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.geocodeURL, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("address", address)
		q.Set("key", c.apiKey)
		if c.region != "" {
			q.Set("region", c.region)
		}
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("google geocode %q: %w", address, err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("google geocode %q: decode response: %w", address, err)
	}

	if decoded.Status != "OK" {
		return domain.Coordinates{}, fmt.Errorf("google geocode %q: status %s %s", address, decoded.Status, decoded.ErrorMessage)
	}
	if len(decoded.Results) == 0 {
		return domain.Coordinates{}, fmt.Errorf("google geocode: no results for %q", address)
	}

	loc := decoded.Results[0].Geometry.Location
	return domain.Coordinates{Lon: loc.Lng, Lat: loc.Lat}, nil
}
