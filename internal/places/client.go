// Package places is the HTTP client for the external places-autocomplete
// collaborator. The collaborator is rate-sensitive: callers debounce
// keystrokes and never send inputs shorter than two characters.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/F3-Nation/f3-nation-map-sub001/pkg/core"
)

// MinInputLength is the shortest input the collaborator accepts.
const MinInputLength = 2

// Client handles communication with the places-autocomplete service.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a new places client.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type autocompleteResponse struct {
	Predictions []core.PlacePrediction `json:"predictions"`
}

// Autocomplete returns place predictions for the input, biased toward the
// given map center and zoom. Inputs shorter than MinInputLength return an
// empty set without touching the network.
func (c *Client) Autocomplete(ctx context.Context, input string, center core.LatLng, zoom float64) ([]core.PlacePrediction, error) {
	if len(input) < MinInputLength {
		return nil, nil
	}

	q := url.Values{}
	q.Set("input", input)
	q.Set("lat", strconv.FormatFloat(center.Lat, 'f', -1, 64))
	q.Set("lng", strconv.FormatFloat(center.Lng, 'f', -1, 64))
	q.Set("zoom", strconv.FormatFloat(zoom, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/places/autocomplete?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("autocomplete request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("autocomplete returned status %d", resp.StatusCode)
	}

	var parsed autocompleteResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode autocomplete response: %w", err)
	}
	return parsed.Predictions, nil
}
