// Package geo resolves IP addresses to geolocation records, backed by a
// time-bounded persistent cache and an external provider.
package geo

import (
	"context"
	"time"
)

// CacheTTL is how long a cached geolocation entry stays valid.
const CacheTTL = 30 * 24 * time.Hour

// Record is a normalized geolocation lookup result. All fields are
// best-effort and may be empty.
type Record struct {
	Country     string `json:"country"`     // ISO 3166-1 alpha-2
	CountryName string `json:"countryName"`
	Region      string `json:"region"`
	City        string `json:"city"`
	PostalCode  string `json:"postalCode"`
	Timezone    string `json:"timezone"`
	Location    string `json:"location"` // "lat,lon"
	Org         string `json:"org"`
}

// Cache is a per-IP cache of geolocation records with logical expiry.
type Cache interface {
	// Get returns the cached record for ip, or (nil, nil) when no entry
	// exists or the entry has expired. Expiry is checked at read time.
	Get(ctx context.Context, ip string) (*Record, error)

	// Put upserts the record for ip, refreshing the cached-at timestamp
	// and extending expiry by CacheTTL. At most one entry per IP.
	Put(ctx context.Context, ip string, record *Record) error
}

// Provider looks up geolocation data from an external service.
type Provider interface {
	Lookup(ctx context.Context, ip string) (*Record, error)
}
