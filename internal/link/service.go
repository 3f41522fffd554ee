package link

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// CodeGenerator produces fresh short codes.
type CodeGenerator func() string

// Service implements owner-scoped link management on top of a Repository.
type Service struct {
	repo         Repository
	generateCode CodeGenerator
}

// NewService creates a link service. generateCode supplies codes when the
// caller does not choose one.
func NewService(repo Repository, generateCode CodeGenerator) *Service {
	return &Service{
		repo:         repo,
		generateCode: generateCode,
	}
}

// Shorten registers a new short link for userID. When customCode is empty
// a code is generated. Returns ErrInvalidURL or ErrCodeTaken.
func (s *Service) Shorten(ctx context.Context, userID, targetURL, customCode string) (*ShortLink, error) {
	if err := validateTargetURL(targetURL); err != nil {
		return nil, err
	}

	code := customCode
	if code == "" {
		code = s.generateCode()
	}

	now := time.Now().UTC()
	l := &ShortLink{
		ID:        uuid.NewString(),
		ShortCode: code,
		TargetURL: targetURL,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("create link: %w", err)
	}

	return l, nil
}

// Resolve looks up the link for a short code. Read-only, no side effects.
func (s *Service) Resolve(ctx context.Context, code string) (*ShortLink, error) {
	return s.repo.GetByCode(ctx, code)
}

// ListByUser returns all links owned by userID.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]*ShortLink, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Update changes the code and/or target of a link owned by userID. Empty
// arguments leave the corresponding field untouched. A link owned by a
// different user is reported as ErrNotFound rather than leaking existence.
func (s *Service) Update(ctx context.Context, userID, linkID, targetURL, code string) (*ShortLink, error) {
	l, err := s.repo.GetByID(ctx, linkID)
	if err != nil {
		return nil, err
	}

	if l.UserID != userID {
		return nil, ErrNotFound
	}

	if targetURL != "" {
		if err := validateTargetURL(targetURL); err != nil {
			return nil, err
		}

		l.TargetURL = targetURL
	}

	if code != "" {
		l.ShortCode = code
	}

	l.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, l); err != nil {
		return nil, fmt.Errorf("update link: %w", err)
	}

	return l, nil
}

// Delete removes a link owned by userID. Non-owned links report ErrNotFound.
func (s *Service) Delete(ctx context.Context, userID, linkID string) error {
	l, err := s.repo.GetByID(ctx, linkID)
	if err != nil {
		return err
	}

	if l.UserID != userID {
		return ErrNotFound
	}

	return s.repo.Delete(ctx, linkID)
}

func validateTargetURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return ErrInvalidURL
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidURL
	}

	return nil
}
