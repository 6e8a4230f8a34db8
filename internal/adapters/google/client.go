package google

import (
	"dropoff-route-planner/internal/platform/httpx"
	"errors"
	"strings"
	"time"
)

const (
	DefaultGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"
	DefaultRoutesURL  = "https://routes.googleapis.com/directions/v2:computeRoutes"
)

// Client talks to the Google Geocoding and Routes APIs.
// It implements ports.WaypointResolver and ports.LegCostProvider.
type Client struct {
	http       *httpx.Client
	apiKey     string
	geocodeURL string
	routesURL  string
	region     string
	// When false only route totals are requested and arrivals degrade to the final stop.
	perLeg bool
}

type Option func(*Client)

func WithEndpoints(geocodeURL, routesURL string) Option {
	return func(c *Client) {
		c.geocodeURL = geocodeURL
		c.routesURL = routesURL
	}
}

// WithRegion biases geocoding results to a ccTLD region code (e.g. "jp").
func WithRegion(region string) Option {
	return func(c *Client) { c.region = strings.ToLower(region) }
}

// WithAggregateOnly requests only whole-route distance and duration.
func WithAggregateOnly() Option {
	return func(c *Client) { c.perLeg = false }
}

func WithHTTPClient(h *httpx.Client) Option {
	return func(c *Client) { c.http = h }
}

func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("google maps api key is empty")
	}

	c := &Client{
		http:       httpx.NewClient(10 * time.Second),
		apiKey:     apiKey,
		geocodeURL: DefaultGeocodeURL,
		routesURL:  DefaultRoutesURL,
		perLeg:     true,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}
