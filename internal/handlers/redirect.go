package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/linkmetry/linkmetry/internal/analytics"
	"github.com/linkmetry/linkmetry/internal/link"
	"github.com/linkmetry/linkmetry/internal/messaging"
	"github.com/linkmetry/linkmetry/internal/visitor"
)

// RedirectHandler resolves short codes and emits a visit event per redirect.
// Publishing is fire-and-forget: a broker failure never delays or fails the
// redirect itself.
type RedirectHandler struct {
	links        *link.Service
	publishVisit messaging.Publish[analytics.LinkVisitedEvent]
	logger       *zap.Logger
}

// NewRedirectHandler creates a new redirect handler.
func NewRedirectHandler(
	links *link.Service,
	publishVisit messaging.Publish[analytics.LinkVisitedEvent],
	logger *zap.Logger,
) *RedirectHandler {
	return &RedirectHandler{
		links:        links,
		publishVisit: publishVisit,
		logger:       logger,
	}
}

func (h *RedirectHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	resolved, err := h.links.Resolve(ctx, req.Code)
	if err != nil {
		if errors.Is(err, link.ErrNotFound) {
			return nil, huma.Error404NotFound("invalid url")
		}

		h.logger.Error("failed to resolve short code", zap.String("code", req.Code), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to resolve short code")
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.LinkVisitedEvent{
		LinkID:    resolved.ID,
		VisitorID: visitor.IDFromContext(ctx),
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
		Referrer:  meta.Referrer,
		VisitedAt: time.Now().UTC(),
	}

	if err := h.publishVisit(event); err != nil {
		h.logger.Error("failed to publish visit event",
			zap.String("linkId", event.LinkID),
			zap.Error(err),
		)
	}

	resp := &RedirectResponse{
		Status: http.StatusFound,
	}
	resp.Headers.Location = resolved.TargetURL

	return resp, nil
}
