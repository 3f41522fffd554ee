package middleware

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/linkmetry/linkmetry/internal/auth"
)

// TokenVerifier verifies a bearer token and returns the user id.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Authenticate enforces bearer-token auth on operations whose metadata
// requires it, and attaches the user id to the context either way when a
// valid token is present.
func Authenticate(api huma.API, verifier TokenVerifier) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		userID, ok := verifyBearer(ctx, verifier)
		if ok {
			ctx = huma.WithContext(ctx, auth.ContextWithUserID(ctx.Context(), userID))
		}

		if required(ctx) && !ok {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "authentication required")

			return
		}

		next(ctx)
	}
}

func verifyBearer(ctx huma.Context, verifier TokenVerifier) (string, bool) {
	header := ctx.Header("Authorization")

	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}

	userID, err := verifier.Verify(token)
	if err != nil {
		return "", false
	}

	return userID, true
}

func required(ctx huma.Context) bool {
	op := ctx.Operation()
	if op == nil || op.Metadata == nil {
		return false
	}

	req, ok := op.Metadata[auth.MetadataKey].(bool)

	return ok && req
}
