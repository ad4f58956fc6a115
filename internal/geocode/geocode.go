// Package geocode wraps a forward-geocoding HTTP API, used only by the
// import commands to fill in coordinates for rows that ship without them.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const apiBase = "https://geocode.maps.co/search"

// Client calls the geocoding API with a fixed delay between requests so bulk
// imports stay inside the free-tier rate limit.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a geocoding client. The delay is enforced between
// consecutive Lookup calls.
func NewClient(apiKey string, delay time.Duration) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    apiBase,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(delay), 1),
	}
}

type result struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Lookup resolves a free-text query ("name, address") to coordinates.
func (c *Client) Lookup(ctx context.Context, query string) (lat, lng float64, err error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, 0, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return 0, 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("geocode: unexpected status %d", resp.StatusCode)
	}

	var results []result
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("geocode: no results for %q", query)
	}

	lat, err = strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, err
	}
	lng, err = strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, err
	}
	return lat, lng, nil
}
