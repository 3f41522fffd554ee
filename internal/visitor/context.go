package visitor

import "context"

type visitorIDKey struct{}

// ContextWithID attaches the visitor id to ctx.
func ContextWithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, visitorIDKey{}, id)
}

// IDFromContext returns the visitor id, or "" when none was assigned.
func IDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(visitorIDKey{}).(string); ok {
		return v
	}

	return ""
}
