package middleware

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/linkmetry/linkmetry/internal/visitor"
)

// VisitorID reads or issues the durable visitor cookie on tracked
// operations and attaches the visitor id to the request context.
func VisitorID(_ huma.API, identifier *visitor.Identifier) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if !tracked(ctx) {
			next(ctx)

			return
		}

		cookie, _ := huma.ReadCookie(ctx, visitor.CookieName)

		id, issued := identifier.Identify(cookie)
		if issued != nil {
			ctx.AppendHeader("Set-Cookie", issued.String())
		}

		ctx = huma.WithContext(ctx, visitor.ContextWithID(ctx.Context(), id))

		next(ctx)
	}
}

func tracked(ctx huma.Context) bool {
	op := ctx.Operation()
	if op == nil || op.Metadata == nil {
		return false
	}

	t, ok := op.Metadata[visitor.MetadataKey].(bool)

	return ok && t
}
