// Package analytics records per-click analytics for short-link redirects,
// fully decoupled from the redirect response path.
package analytics

import "time"

// TopicLinkVisited is the topic the redirect handler publishes visits to.
const TopicLinkVisited = "link.visited"

// LinkVisitedEvent is the raw event emitted for every redirect, before
// enrichment. It carries only what the request handler already has.
type LinkVisitedEvent struct {
	LinkID    string    `json:"linkId"`
	VisitorID string    `json:"visitorId,omitempty"`
	ClientIP  string    `json:"clientIp,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	Referrer  string    `json:"referrer,omitempty"`
	VisitedAt time.Time `json:"visitedAt"`
}

// ClickEvent is one fully enriched, persisted redirect traversal. Immutable
// once written.
type ClickEvent struct {
	ID        string `json:"id"`
	LinkID    string `json:"linkId"`
	VisitorID string `json:"visitorId,omitempty"`
	IPAddress string `json:"ipAddress,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
	Referrer  string `json:"referrer,omitempty"`

	// Geolocation, all best-effort.
	Country     string `json:"country,omitempty"`
	CountryName string `json:"countryName,omitempty"`
	Region      string `json:"region,omitempty"`
	City        string `json:"city,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	Timezone    string `json:"timezone,omitempty"`
	Location    string `json:"location,omitempty"`
	Org         string `json:"org,omitempty"`

	// User-agent classification.
	Device  string `json:"device"`
	Browser string `json:"browser"`
	OS      string `json:"os"`

	Timestamp time.Time `json:"timestamp"`
}
