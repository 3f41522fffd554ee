package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/linkmetry/linkmetry/internal/auth"
	"github.com/linkmetry/linkmetry/internal/ratelimit"
	"github.com/linkmetry/linkmetry/internal/visitor"
)

// RegisterRoutes registers all routes with per-endpoint auth, visitor
// tracking and rate limit configuration.
func RegisterRoutes(
	api huma.API,
	users *UserHandler,
	links *LinkHandler,
	redirects *RedirectHandler,
	health *HealthHandler,
) {
	writeLimits := ratelimit.EndpointConfig{
		Limits: []ratelimit.LimitConfig{
			{Window: time.Minute, Max: 30},
			{Window: time.Hour, Max: 300},
		},
	}

	huma.Register(api, huma.Operation{
		OperationID:   "signup",
		Method:        http.MethodPost,
		Path:          "/user/signup",
		Summary:       "Create account",
		Description:   "Registers a new account for managing short links.",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusCreated,
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 10},
					{Window: time.Hour, Max: 50},
				},
			},
		},
	}, users.Signup)

	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/user/login",
		Summary:     "Log in",
		Description: "Exchanges email and password for a bearer token.",
		Tags:        []string{"Users"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 20},
				},
			},
		},
	}, users.Login)

	huma.Register(api, huma.Operation{
		OperationID:   "shorten",
		Method:        http.MethodPost,
		Path:          "/shorten",
		Summary:       "Create short link",
		Description:   "Creates a short link, with a generated code unless a custom one is given.",
		Tags:          []string{"Links"},
		DefaultStatus: http.StatusCreated,
		Metadata: map[string]any{
			auth.MetadataKey:      true,
			ratelimit.MetadataKey: writeLimits,
		},
	}, links.Create)

	huma.Register(api, huma.Operation{
		OperationID: "list-codes",
		Method:      http.MethodGet,
		Path:        "/codes",
		Summary:     "List short links",
		Description: "Lists the authenticated user's short links.",
		Tags:        []string{"Links"},
		Metadata: map[string]any{
			auth.MetadataKey: true,
		},
	}, links.List)

	huma.Register(api, huma.Operation{
		OperationID: "update-code",
		Method:      http.MethodPatch,
		Path:        "/codes/{id}",
		Summary:     "Update short link",
		Description: "Changes a short link's code or target URL.",
		Tags:        []string{"Links"},
		Metadata: map[string]any{
			auth.MetadataKey:      true,
			ratelimit.MetadataKey: writeLimits,
		},
	}, links.Update)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-code",
		Method:        http.MethodDelete,
		Path:          "/codes/{id}",
		Summary:       "Delete short link",
		Description:   "Deletes a short link. Its click history is kept.",
		Tags:          []string{"Links"},
		DefaultStatus: http.StatusNoContent,
		Metadata: map[string]any{
			auth.MetadataKey:      true,
			ratelimit.MetadataKey: writeLimits,
		},
	}, links.Delete)

	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"Health"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Disabled: true},
		},
	}, health.Check)

	// Registered last so management paths are never shadowed by a code.
	huma.Register(api, huma.Operation{
		OperationID: "redirect",
		Method:      http.MethodGet,
		Path:        "/{code}",
		Summary:     "Redirect to target URL",
		Description: "Redirects to the URL behind the short code and records the visit asynchronously.",
		Tags:        []string{"Links"},
		Metadata: map[string]any{
			visitor.MetadataKey: true,
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 1000},
				},
			},
		},
	}, redirects.Redirect)
}
