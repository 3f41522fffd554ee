// Package store provides the Postgres, Redis, and in-memory storage
// implementations behind the domain repository interfaces.
package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/linkmetry/linkmetry/internal/link"
)

// uniqueViolation is the Postgres SQLSTATE for unique constraint errors.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// PostgresLinkStore is a PostgreSQL implementation of link.Repository.
type PostgresLinkStore struct {
	pool *pgxpool.Pool
}

// NewPostgresLinkStore creates a Postgres-backed link repository.
func NewPostgresLinkStore(pool *pgxpool.Pool) *PostgresLinkStore {
	return &PostgresLinkStore{pool: pool}
}

func (p *PostgresLinkStore) Create(ctx context.Context, l *link.ShortLink) error {
	query := `
		INSERT INTO links (id, short_code, target_url, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := p.pool.Exec(ctx, query,
		l.ID, l.ShortCode, l.TargetURL, l.UserID, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return link.ErrCodeTaken
		}

		return err
	}

	return nil
}

func (p *PostgresLinkStore) GetByCode(ctx context.Context, code string) (*link.ShortLink, error) {
	query := `
		SELECT id, short_code, target_url, user_id, created_at, updated_at
		FROM links
		WHERE short_code = $1
	`

	return p.scanLink(p.pool.QueryRow(ctx, query, code))
}

func (p *PostgresLinkStore) GetByID(ctx context.Context, id string) (*link.ShortLink, error) {
	query := `
		SELECT id, short_code, target_url, user_id, created_at, updated_at
		FROM links
		WHERE id = $1
	`

	return p.scanLink(p.pool.QueryRow(ctx, query, id))
}

func (p *PostgresLinkStore) ListByUser(ctx context.Context, userID string) ([]*link.ShortLink, error) {
	query := `
		SELECT id, short_code, target_url, user_id, created_at, updated_at
		FROM links
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := p.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []*link.ShortLink

	for rows.Next() {
		var l link.ShortLink
		if err := rows.Scan(
			&l.ID, &l.ShortCode, &l.TargetURL, &l.UserID, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, err
		}

		links = append(links, &l)
	}

	return links, rows.Err()
}

func (p *PostgresLinkStore) Update(ctx context.Context, l *link.ShortLink) error {
	query := `
		UPDATE links
		SET short_code = $2, target_url = $3, updated_at = $4
		WHERE id = $1
	`

	tag, err := p.pool.Exec(ctx, query, l.ID, l.ShortCode, l.TargetURL, l.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return link.ErrCodeTaken
		}

		return err
	}

	if tag.RowsAffected() == 0 {
		return link.ErrNotFound
	}

	return nil
}

func (p *PostgresLinkStore) Delete(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM links WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return link.ErrNotFound
	}

	return nil
}

func (p *PostgresLinkStore) scanLink(row pgx.Row) (*link.ShortLink, error) {
	var l link.ShortLink

	err := row.Scan(&l.ID, &l.ShortCode, &l.TargetURL, &l.UserID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, link.ErrNotFound
		}

		return nil, err
	}

	return &l, nil
}
