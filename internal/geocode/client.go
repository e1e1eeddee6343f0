// Package geocode proxies address search to the OpenStreetMap Nominatim API
// so the browser never talks to the upstream directly.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	dErrors "shulchan/pkg/errors"
)

const minQueryLength = 3

// Place is one address suggestion from the upstream search.
type Place struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client, mainly for tests.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

func NewClient(baseURL string, opts ...Option) *Client {
	cl := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(cl)
	}
	return cl
}

// Search returns up to five Hebrew-language address suggestions restricted to
// Israel. Queries shorter than three characters return an empty list without
// an upstream call.
func (c *Client) Search(ctx context.Context, query string) ([]Place, error) {
	if utf8.RuneCountInString(query) < minQueryLength {
		return []Place{}, nil
	}

	u, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Address search is unavailable")
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "5")
	q.Set("countrycodes", "il")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Address search is unavailable")
	}
	req.Header.Set("Accept-Language", "he")
	req.Header.Set("User-Agent", "shulchan/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeProvider, "Address search is unavailable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, dErrors.Wrap(
			fmt.Errorf("upstream returned %d", resp.StatusCode),
			dErrors.CodeProvider, "Address search is unavailable",
		)
	}

	var places []Place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeProvider, "Address search is unavailable")
	}
	if places == nil {
		places = []Place{}
	}
	return places, nil
}
