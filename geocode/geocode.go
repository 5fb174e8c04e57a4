// path: geocode/geocode.go
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound means the geocoder returned no match for the query. Callers
// should ask the user for a more specific address rather than fail hard.
var ErrNotFound = errors.New("address not found")

// Geocoder resolves free-text location strings to coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, query string) (lat, lng float64, err error)
}

// Client talks to a Nominatim-compatible search endpoint. The base URL is
// configurable so tests and self-hosted instances can point elsewhere.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = os.Getenv("GEOCODE_BASE_URL")
	}
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org"
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 8 * time.Second},
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Resolve performs a forward geocode. Only the top-ranked result is used;
// accuracy beyond that is explicitly not this service's concern.
func (c *Client) Resolve(ctx context.Context, query string) (float64, float64, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return 0, 0, err
	}
	req.Header.Set("User-Agent", "streetsafety/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("geocode: unexpected status %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return 0, 0, fmt.Errorf("geocode decode: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, ErrNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode: bad latitude %q", results[0].Lat)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode: bad longitude %q", results[0].Lon)
	}
	return lat, lng, nil
}
