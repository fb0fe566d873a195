package googlemaps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/kaushikharsh25/sbms/module/core/domain"
	"github.com/kaushikharsh25/sbms/module/core/internal/repository/routing"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/directions/json"

var _ routing.Provider = (*Client)(nil)

// Client calls the Google Maps Directions API. The API wants "lat,lng"
// pairs, the opposite of the core's axis order; the flip happens here and
// only here.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func New(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewWithBaseURL is used by tests to point the client at a fake server.
func NewWithBaseURL(apiKey, baseURL string) *Client {
	c := New(apiKey)
	c.baseURL = baseURL
	return c
}

func (c *Client) Name() string { return "googlemaps" }

type directionsResponse struct {
	Routes []struct {
		Legs []struct {
			Duration struct {
				Value int `json:"value"` // seconds
			} `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

func (c *Client) Estimate(ctx context.Context, origin, dest domain.Coordinates) (int, error) {
	if c.apiKey == "" {
		return 0, fmt.Errorf("%w: no api key configured", routing.ErrUnavailable)
	}

	params := url.Values{}
	params.Set("origin", fmt.Sprintf("%f,%f", origin.Lat, origin.Lng))
	params.Set("destination", fmt.Sprintf("%f,%f", dest.Lat, dest.Lng))
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("%w: build request: %v", routing.ErrUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", routing.ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: status %d", routing.ErrUnavailable, resp.StatusCode)
	}

	var body directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("%w: decode response: %v", routing.ErrUnavailable, err)
	}

	if len(body.Routes) == 0 || len(body.Routes[0].Legs) == 0 {
		return 0, fmt.Errorf("%w: no route in response", routing.ErrUnavailable)
	}
	return body.Routes[0].Legs[0].Duration.Value, nil
}
