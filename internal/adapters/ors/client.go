package ors

import (
	"context"
	"dropoff-route-planner/internal/platform/httpx"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.openrouteservice.org"
	DefaultProfile = "driving-car"
)

// Client talks to OpenRouteService. It implements both ports.WaypointResolver
// (geocode search) and ports.LegCostProvider (directions with per-leg segments).
//
// The client is safe for concurrent use.
type Client struct {
	http    *httpx.Client
	apiKey  string
	baseURL string
	profile string
	country string
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithProfile(p string) Option {
	return func(c *Client) { c.profile = p }
}

// WithCountry restricts geocoding to an ISO 3166-1 country (e.g. "JP").
func WithCountry(cc string) Option {
	return func(c *Client) { c.country = cc }
}

func WithHTTPClient(h *httpx.Client) Option {
	return func(c *Client) { c.http = h }
}

func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	c := &Client{
		http:    httpx.NewClient(10 * time.Second),
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		profile: DefaultProfile,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.profile == "" {
		c.profile = DefaultProfile
	}

	return c, nil
}

// normalize collapses whitespace so equivalent addresses share one query.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (c *Client) newRequest(
	ctx context.Context,
	method string,
	url string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}
