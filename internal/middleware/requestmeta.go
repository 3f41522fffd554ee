// Package middleware holds the huma middlewares: request metadata
// extraction, bearer-token authentication, and rate limiting.
package middleware

import (
	"net"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/linkmetry/linkmetry/internal/handlers"
)

// RequestMeta adds client IP, user-agent, and referrer to the request
// context for the redirect/analytics path.
func RequestMeta(_ huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		meta := handlers.RequestMeta{
			ClientIP:  clientIP(ctx),
			UserAgent: ctx.Header("User-Agent"),
			Referrer:  referrer(ctx),
		}

		ctx = huma.WithContext(ctx, handlers.ContextWithRequestMeta(ctx.Context(), meta))

		next(ctx)
	}
}

// referrer reads the misspelled standard header first, then the correct
// spelling some clients send.
func referrer(ctx huma.Context) string {
	if ref := ctx.Header("Referer"); ref != "" {
		return ref
	}

	return ctx.Header("Referrer")
}

// clientIP extracts the client IP, preferring proxy headers. When nothing
// usable is present it reports "unknown" so downstream geo lookups can
// skip it outright.
func clientIP(ctx huma.Context) string {
	// X-Forwarded-For may list multiple hops; the first is the client.
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return xri
	}

	// Host carries the observed remote address in the huma context.
	if host := ctx.Host(); host != "" {
		if ip, _, err := net.SplitHostPort(host); err == nil {
			return ip
		}

		return host
	}

	return "unknown"
}
