// Package link holds the short-link domain: types, repository contract,
// and the shorten/resolve service.
package link

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no link matches the lookup.
	ErrNotFound = errors.New("link not found")

	// ErrCodeTaken is returned when a short code is already registered.
	ErrCodeTaken = errors.New("short code already taken")

	// ErrInvalidURL is returned when a target URL is not a well-formed
	// absolute http(s) URL.
	ErrInvalidURL = errors.New("invalid target url")
)

// ShortLink maps a short code to its target URL for an owning user.
type ShortLink struct {
	ID        string    `json:"id"`
	ShortCode string    `json:"shortCode"`
	TargetURL string    `json:"targetUrl"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Repository defines short-link storage. Implementations must keep the
// short code globally unique.
type Repository interface {
	// Create stores a new link. Returns ErrCodeTaken when the code is
	// already registered.
	Create(ctx context.Context, l *ShortLink) error

	// GetByCode returns the link with the given short code, or ErrNotFound.
	// This backs the redirect hot path and must be a single indexed lookup.
	GetByCode(ctx context.Context, code string) (*ShortLink, error)

	// GetByID returns the link with the given id, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*ShortLink, error)

	// ListByUser returns all links owned by userID, newest first.
	ListByUser(ctx context.Context, userID string) ([]*ShortLink, error)

	// Update persists code/target changes. Returns ErrCodeTaken when the
	// new code collides, ErrNotFound when the link is gone.
	Update(ctx context.Context, l *ShortLink) error

	// Delete removes the link. Returns ErrNotFound when absent.
	Delete(ctx context.Context, id string) error
}
