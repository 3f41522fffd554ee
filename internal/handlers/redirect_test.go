package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jaevor/go-nanoid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/linkmetry/linkmetry/internal/analytics"
	"github.com/linkmetry/linkmetry/internal/handlers"
	"github.com/linkmetry/linkmetry/internal/link"
	"github.com/linkmetry/linkmetry/internal/messaging"
	"github.com/linkmetry/linkmetry/internal/store"
	"github.com/linkmetry/linkmetry/internal/visitor"
)

// capturePublish returns a publish function that records events.
func capturePublish[T any](events *[]*T) messaging.Publish[T] {
	return func(event *T) error {
		*events = append(*events, event)

		return nil
	}
}

// errorPublish returns a publish function that always fails.
func errorPublish[T any](err error) messaging.Publish[T] {
	return func(_ *T) error { return err }
}

func newLinkService(repo link.Repository) *link.Service {
	gen, _ := nanoid.Standard(6)

	return link.NewService(repo, gen)
}

func TestRedirectHandler_Redirect(t *testing.T) {
	t.Run("redirects and publishes visit event", func(t *testing.T) {
		repo := store.NewMemoryLinkStore()
		svc := newLinkService(repo)

		created, err := svc.Shorten(context.Background(), "user-1", "https://example.com/target", "go")
		require.NoError(t, err)

		var events []*analytics.LinkVisitedEvent

		handler := handlers.NewRedirectHandler(svc, capturePublish(&events), zap.NewNop())

		ctx := handlers.ContextWithRequestMeta(context.Background(), handlers.RequestMeta{
			ClientIP:  "203.0.113.9",
			UserAgent: "TestAgent/1.0",
			Referrer:  "https://referrer.example.com",
		})
		ctx = visitor.ContextWithID(ctx, "visitor-123")

		resp, err := handler.Redirect(ctx, &handlers.RedirectRequest{Code: "go"})

		require.NoError(t, err)
		assert.Equal(t, http.StatusFound, resp.Status)
		assert.Equal(t, "https://example.com/target", resp.Headers.Location)

		require.Len(t, events, 1)
		assert.Equal(t, created.ID, events[0].LinkID)
		assert.Equal(t, "visitor-123", events[0].VisitorID)
		assert.Equal(t, "203.0.113.9", events[0].ClientIP)
		assert.Equal(t, "TestAgent/1.0", events[0].UserAgent)
		assert.Equal(t, "https://referrer.example.com", events[0].Referrer)
		assert.False(t, events[0].VisitedAt.IsZero())
	})

	t.Run("404 for unknown code", func(t *testing.T) {
		svc := newLinkService(store.NewMemoryLinkStore())

		var events []*analytics.LinkVisitedEvent

		handler := handlers.NewRedirectHandler(svc, capturePublish(&events), zap.NewNop())

		resp, err := handler.Redirect(context.Background(), &handlers.RedirectRequest{Code: "missing"})

		assert.Nil(t, resp)
		assertStatus(t, err, 404)
		assert.Empty(t, events)
	})

	t.Run("redirects even when publishing fails", func(t *testing.T) {
		svc := newLinkService(store.NewMemoryLinkStore())

		_, err := svc.Shorten(context.Background(), "user-1", "https://example.com", "go")
		require.NoError(t, err)

		handler := handlers.NewRedirectHandler(
			svc,
			errorPublish[analytics.LinkVisitedEvent](errors.New("broker down")),
			zap.NewNop(),
		)

		resp, err := handler.Redirect(context.Background(), &handlers.RedirectRequest{Code: "go"})

		require.NoError(t, err)
		assert.Equal(t, http.StatusFound, resp.Status)
		assert.Equal(t, "https://example.com", resp.Headers.Location)
	})
}
