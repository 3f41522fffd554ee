package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/linkmetry/linkmetry/internal/user"
)

// PostgresUserStore is a PostgreSQL implementation of user.Repository.
type PostgresUserStore struct {
	pool *pgxpool.Pool
}

// NewPostgresUserStore creates a Postgres-backed user repository.
func NewPostgresUserStore(pool *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{pool: pool}
}

func (p *PostgresUserStore) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, first_name, last_name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := p.pool.Exec(ctx, query,
		u.ID, u.FirstName, nullable(u.LastName), u.Email, u.PasswordHash, u.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrEmailTaken
		}

		return err
	}

	return nil
}

func (p *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `
		SELECT id, first_name, last_name, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`

	var (
		u        user.User
		lastName *string
	)

	err := p.pool.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.FirstName, &lastName, &u.Email, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNotFound
		}

		return nil, err
	}

	if lastName != nil {
		u.LastName = *lastName
	}

	return &u, nil
}
