package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultIPInfoBaseURL = "https://ipinfo.io"

// IPInfoClient is a Provider backed by the ipinfo.io JSON API.
type IPInfoClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// IPInfoOption configures an IPInfoClient.
type IPInfoOption func(*IPInfoClient)

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(baseURL string) IPInfoOption {
	return func(c *IPInfoClient) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) IPInfoOption {
	return func(c *IPInfoClient) {
		c.client = client
	}
}

// NewIPInfoClient creates an ipinfo.io client. token may be empty for
// unauthenticated (rate-limited) access.
func NewIPInfoClient(token string, opts ...IPInfoOption) *IPInfoClient {
	c := &IPInfoClient{
		baseURL: defaultIPInfoBaseURL,
		token:   token,
		client:  &http.Client{Timeout: 5 * time.Second},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ipinfoResponse mirrors the provider's wire format.
type ipinfoResponse struct {
	Country  string `json:"country"`
	Region   string `json:"region"`
	City     string `json:"city"`
	Postal   string `json:"postal"`
	Timezone string `json:"timezone"`
	Loc      string `json:"loc"` // "lat,lon"
	Org      string `json:"org"`
}

// Lookup fetches geolocation data for ip. Any non-2xx status or malformed
// body is an error; callers treat errors as a missing record.
func (c *IPInfoClient) Lookup(ctx context.Context, ip string) (*Record, error) {
	endpoint := fmt.Sprintf("%s/%s/json", c.baseURL, url.PathEscape(ip))
	if c.token != "" {
		endpoint += "?token=" + url.QueryEscape(c.token)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("ipinfo: unexpected status %d", resp.StatusCode)
	}

	var body ipinfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("ipinfo: decode response: %w", err)
	}

	// ipinfo only returns the alpha-2 code, so it doubles as the name.
	return &Record{
		Country:     body.Country,
		CountryName: body.Country,
		Region:      body.Region,
		City:        body.City,
		PostalCode:  body.Postal,
		Timezone:    body.Timezone,
		Location:    body.Loc,
		Org:         body.Org,
	}, nil
}
