package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/linkmetry/linkmetry/internal/ratelimit"
	"go.uber.org/zap"
)

// defaultLimits apply to endpoints without their own rate limit metadata.
var defaultLimits = []ratelimit.LimitConfig{
	{Window: time.Minute, Max: 120},
}

// RateLimiter limits requests per client key, honoring per-endpoint
// configuration in operation metadata.
func RateLimiter(api huma.API, limiter *ratelimit.Limiter, logger *zap.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		limits := defaultLimits

		if cfg := endpointConfig(ctx); cfg != nil {
			if cfg.Disabled {
				next(ctx)

				return
			}

			if len(cfg.Limits) > 0 {
				limits = cfg.Limits
			}
		}

		allowed, exceeded, err := limiter.Allow(ctx.Context(), clientKey(ctx), limits)
		if err != nil {
			// A broken limiter store must not take the service down.
			logger.Error("rate limit check failed", zap.Error(err))
			next(ctx)

			return
		}

		if !allowed {
			logger.Warn("rate limit exceeded",
				zap.Duration("window", exceeded.Config.Window),
				zap.Int64("count", exceeded.Count),
			)
			_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests, "rate limit exceeded")

			return
		}

		next(ctx)
	}
}

func endpointConfig(ctx huma.Context) *ratelimit.EndpointConfig {
	op := ctx.Operation()
	if op == nil || op.Metadata == nil {
		return nil
	}

	cfg, ok := op.Metadata[ratelimit.MetadataKey].(ratelimit.EndpointConfig)
	if !ok {
		return nil
	}

	return &cfg
}

// clientKey hashes IP plus user-agent so clients behind one NAT with
// different browsers are tracked separately.
func clientKey(ctx huma.Context) string {
	ip := clientIP(ctx)
	ua := ctx.Header("User-Agent")

	hash := sha256.Sum256([]byte(ip + "|" + ua))

	return hex.EncodeToString(hash[:])
}
