package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/kaushikharsh25/sbms/module/core/domain"
	"github.com/kaushikharsh25/sbms/module/core/internal/repository/routing"
)

const defaultBaseURL = "https://api.mapbox.com/directions/v5/mapbox/driving"

var _ routing.Provider = (*Client)(nil)

// Client calls the Mapbox Directions v5 API (driving profile). Mapbox
// takes "lng,lat" pairs in the path, same axis order as the core.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
}

func New(token string) *Client {
	return &Client{
		token:   token,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewWithBaseURL is used by tests to point the client at a fake server.
func NewWithBaseURL(token, baseURL string) *Client {
	c := New(token)
	c.baseURL = baseURL
	return c
}

func (c *Client) Name() string { return "mapbox" }

type directionsResponse struct {
	Routes []struct {
		Duration float64 `json:"duration"` // seconds
	} `json:"routes"`
}

func (c *Client) Estimate(ctx context.Context, origin, dest domain.Coordinates) (int, error) {
	if c.token == "" {
		return 0, fmt.Errorf("%w: no access token configured", routing.ErrUnavailable)
	}

	endpoint := fmt.Sprintf("%s/%f,%f;%f,%f?access_token=%s",
		c.baseURL, origin.Lng, origin.Lat, dest.Lng, dest.Lat, url.QueryEscape(c.token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
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

	if len(body.Routes) == 0 {
		return 0, fmt.Errorf("%w: no route in response", routing.ErrUnavailable)
	}
	return int(math.Round(body.Routes[0].Duration)), nil
}
