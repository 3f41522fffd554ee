// Package ratelimit implements sliding-window request limiting with
// per-endpoint configuration carried in huma operation metadata.
package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// MetadataKey is the key used to attach an EndpointConfig to a huma
// operation's Metadata.
const MetadataKey = "rateLimit"

// LimitConfig is one window/max pair.
type LimitConfig struct {
	Window time.Duration
	Max    int64
}

// EndpointConfig is per-endpoint rate limit configuration. A nil or empty
// Limits slice means the middleware's defaults apply.
type EndpointConfig struct {
	Limits   []LimitConfig
	Disabled bool
}

// Store records requests and reports the count inside the current window,
// pruning expired entries.
type Store interface {
	Record(ctx context.Context, key string, window time.Duration) (count int64, err error)
}

// Exceeded names the limit that rejected a request.
type Exceeded struct {
	Config LimitConfig
	Count  int64
}

// Limiter checks a client key against a set of sliding-window limits.
type Limiter struct {
	store Store
}

// NewLimiter creates a limiter over the given store.
func NewLimiter(store Store) *Limiter {
	return &Limiter{store: store}
}

// Allow records the request against every limit and reports whether all of
// them still hold. Each window is tracked under its own storage key so
// limits stay independent.
func (l *Limiter) Allow(ctx context.Context, clientKey string, limits []LimitConfig) (bool, *Exceeded, error) {
	for _, limit := range limits {
		key := fmt.Sprintf("%s:%d", clientKey, limit.Window.Milliseconds())

		count, err := l.store.Record(ctx, key, limit.Window)
		if err != nil {
			return false, nil, err
		}

		if count > limit.Max {
			return false, &Exceeded{Config: limit, Count: count}, nil
		}
	}

	return true, nil, nil
}
