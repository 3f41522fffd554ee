package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/linkmetry/linkmetry/internal/auth"
	"github.com/linkmetry/linkmetry/internal/link"
)

// LinkHandler handles short link management for authenticated users.
type LinkHandler struct {
	links   *link.Service
	baseURL string
	logger  *zap.Logger
}

// NewLinkHandler creates a new link handler.
func NewLinkHandler(links *link.Service, baseURL string, logger *zap.Logger) *LinkHandler {
	return &LinkHandler{
		links:   links,
		baseURL: baseURL,
		logger:  logger,
	}
}

func (h *LinkHandler) Create(ctx context.Context, req *ShortenRequest) (*ShortenResponse, error) {
	userID := auth.UserIDFromContext(ctx)

	created, err := h.links.Shorten(ctx, userID, req.Body.URL, req.Body.Code)
	if err != nil {
		switch {
		case errors.Is(err, link.ErrInvalidURL):
			return nil, huma.Error400BadRequest("invalid url: must be absolute http or https")
		case errors.Is(err, link.ErrCodeTaken):
			return nil, huma.Error409Conflict("short code already in use")
		}

		h.logger.Error("failed to create short link", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to create short link")
	}

	resp := &ShortenResponse{}
	resp.Body.ID = created.ID
	resp.Body.ShortCode = created.ShortCode
	resp.Body.TargetURL = created.TargetURL
	resp.Body.ShortURL = fmt.Sprintf("%s/%s", h.baseURL, created.ShortCode)

	return resp, nil
}

func (h *LinkHandler) List(ctx context.Context, _ *struct{}) (*ListLinksResponse, error) {
	userID := auth.UserIDFromContext(ctx)

	links, err := h.links.ListByUser(ctx, userID)
	if err != nil {
		h.logger.Error("failed to list links", zap.String("userId", userID), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to list links")
	}

	resp := &ListLinksResponse{}
	resp.Body.Codes = make([]LinkPayload, 0, len(links))

	for _, l := range links {
		resp.Body.Codes = append(resp.Body.Codes, linkPayload(l))
	}

	return resp, nil
}

func (h *LinkHandler) Update(ctx context.Context, req *UpdateLinkRequest) (*UpdateLinkResponse, error) {
	userID := auth.UserIDFromContext(ctx)

	updated, err := h.links.Update(ctx, userID, req.ID, req.Body.URL, req.Body.Code)
	if err != nil {
		switch {
		case errors.Is(err, link.ErrNotFound):
			return nil, huma.Error404NotFound("link not found")
		case errors.Is(err, link.ErrInvalidURL):
			return nil, huma.Error400BadRequest("invalid url: must be absolute http or https")
		case errors.Is(err, link.ErrCodeTaken):
			return nil, huma.Error409Conflict("short code already in use")
		}

		h.logger.Error("failed to update link", zap.String("linkId", req.ID), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to update link")
	}

	return &UpdateLinkResponse{Body: linkPayload(updated)}, nil
}

func (h *LinkHandler) Delete(ctx context.Context, req *DeleteLinkRequest) (*struct{}, error) {
	userID := auth.UserIDFromContext(ctx)

	if err := h.links.Delete(ctx, userID, req.ID); err != nil {
		if errors.Is(err, link.ErrNotFound) {
			return nil, huma.Error404NotFound("link not found")
		}

		h.logger.Error("failed to delete link", zap.String("linkId", req.ID), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to delete link")
	}

	return nil, nil
}

func linkPayload(l *link.ShortLink) LinkPayload {
	return LinkPayload{
		ID:        l.ID,
		ShortCode: l.ShortCode,
		TargetURL: l.TargetURL,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
