package container

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jaevor/go-nanoid"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"

	"github.com/linkmetry/linkmetry/internal/analytics"
	"github.com/linkmetry/linkmetry/internal/auth"
	"github.com/linkmetry/linkmetry/internal/geo"
	"github.com/linkmetry/linkmetry/internal/handlers"
	"github.com/linkmetry/linkmetry/internal/link"
	"github.com/linkmetry/linkmetry/internal/messaging"
	"github.com/linkmetry/linkmetry/internal/middleware"
	"github.com/linkmetry/linkmetry/internal/ratelimit"
	"github.com/linkmetry/linkmetry/internal/store"
	"github.com/linkmetry/linkmetry/internal/user"
	"github.com/linkmetry/linkmetry/internal/visitor"
)

const (
	linkCacheTTL      = time.Hour
	tokenTTL          = 30 * 24 * time.Hour
	consumerGroupName = "analytics"
)

// LoggerPackage provides the zap logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		opts := do.MustInvoke[*Options](i)

		if opts.LogFormat == "json" || opts.Production() {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

// RedisPackage provides the shared redis client.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		opts := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{Addr: opts.RedisAddr}), nil
	})
}

// PostgresPackage provides the pgx connection pool.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*pgxpool.Pool, error) {
		opts := do.MustInvoke[*Options](i)

		pool, err := pgxpool.New(context.Background(), opts.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("postgres pool: %w", err)
		}

		return pool, nil
	})
}

// RepositoryPackage provides the persistent stores and the domain services
// on top of them. Link reads go through the redis cache decorator.
func RepositoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (link.Repository, error) {
		pool := do.MustInvoke[*pgxpool.Pool](i)
		client := do.MustInvoke[*redis.Client](i)

		return store.NewRedisLinkCache(store.NewPostgresLinkStore(pool), client, linkCacheTTL), nil
	})

	do.Provide(injector, func(i *do.Injector) (*link.Service, error) {
		opts := do.MustInvoke[*Options](i)

		generate, err := nanoid.Standard(opts.CodeLength)
		if err != nil {
			return nil, fmt.Errorf("code generator: %w", err)
		}

		return link.NewService(do.MustInvoke[link.Repository](i), generate), nil
	})

	do.Provide(injector, func(i *do.Injector) (user.Repository, error) {
		return store.NewPostgresUserStore(do.MustInvoke[*pgxpool.Pool](i)), nil
	})

	do.Provide(injector, func(i *do.Injector) (*user.Service, error) {
		return user.NewService(do.MustInvoke[user.Repository](i)), nil
	})

	do.Provide(injector, func(i *do.Injector) (analytics.Store, error) {
		return store.NewPostgresClickStore(do.MustInvoke[*pgxpool.Pool](i)), nil
	})

	do.Provide(injector, func(i *do.Injector) (*auth.TokenIssuer, error) {
		opts := do.MustInvoke[*Options](i)

		return auth.NewTokenIssuer([]byte(opts.JWTSecret), tokenTTL), nil
	})
}

// GeoPackage provides the geolocation resolver with its postgres-backed
// cache and ipinfo provider.
func GeoPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (geo.Cache, error) {
		return store.NewPostgresGeoCache(do.MustInvoke[*pgxpool.Pool](i)), nil
	})

	do.Provide(injector, func(i *do.Injector) (geo.Provider, error) {
		opts := do.MustInvoke[*Options](i)

		return geo.NewIPInfoClient(opts.IPInfoToken), nil
	})

	do.Provide(injector, func(i *do.Injector) (*geo.Resolver, error) {
		return geo.NewResolver(
			do.MustInvoke[geo.Cache](i),
			do.MustInvoke[geo.Provider](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
}

// RateLimitPackage provides the redis-backed sliding window limiter.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*ratelimit.Limiter, error) {
		return ratelimit.NewLimiter(ratelimit.NewRedisStore(do.MustInvoke[*redis.Client](i))), nil
	})
}

// PublisherGroupPackage provides the redis stream publisher and the typed
// publish function for visit events.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client: do.MustInvoke[*redis.Client](i),
		}, watermill.NopLogger{})
		if err != nil {
			return nil, fmt.Errorf("redis stream publisher: %w", err)
		}

		return messaging.NewPublisherGroup(publisher), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.LinkVisitedEvent], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[analytics.LinkVisitedEvent](group.Publisher(), analytics.TopicLinkVisited), nil
	})
}

// ConsumerGroupPackage provides the consumer group that records visit
// events as enriched clicks.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		logger := do.MustInvoke[*zap.Logger](i)

		subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        do.MustInvoke[*redis.Client](i),
			ConsumerGroup: consumerGroupName,
		}, watermill.NopLogger{})
		if err != nil {
			return nil, fmt.Errorf("redis stream subscriber: %w", err)
		}

		recorder := analytics.NewRecorder(
			do.MustInvoke[analytics.Store](i),
			do.MustInvoke[*geo.Resolver](i),
			logger,
		)

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(messaging.NewConsumer(subscriber, analytics.TopicLinkVisited, recorder.Record, logger))

		return group, nil
	})
}

// HTTPPackage provides the router and the fully wired huma API.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		tokens := do.MustInvoke[*auth.TokenIssuer](i)

		api := humachi.New(do.MustInvoke[*chi.Mux](i), huma.DefaultConfig("linkmetry", "1.0.0"))
		api.UseMiddleware(middleware.RequestMeta(api))
		api.UseMiddleware(middleware.Authenticate(api, tokens))
		api.UseMiddleware(middleware.VisitorID(api, visitor.NewIdentifier(opts.Production())))
		api.UseMiddleware(middleware.RateLimiter(api, do.MustInvoke[*ratelimit.Limiter](i), logger))

		baseURL := opts.BaseURL
		if baseURL == "" {
			baseURL = fmt.Sprintf("http://localhost:%d", opts.Port)
		}

		linkSvc := do.MustInvoke[*link.Service](i)

		handlers.RegisterRoutes(
			api,
			handlers.NewUserHandler(do.MustInvoke[*user.Service](i), tokens, logger),
			handlers.NewLinkHandler(linkSvc, baseURL, logger),
			handlers.NewRedirectHandler(linkSvc, do.MustInvoke[messaging.Publish[analytics.LinkVisitedEvent]](i), logger),
			handlers.NewHealthHandler(
				handlers.NewRedisHealthChecker(do.MustInvoke[*redis.Client](i)),
				handlers.NewPostgresHealthChecker(do.MustInvoke[*pgxpool.Pool](i)),
			),
		)

		return api, nil
	})
}
