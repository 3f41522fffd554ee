package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/linkmetry/linkmetry/internal/analytics"
)

// PostgresClickStore is a PostgreSQL implementation of analytics.Store.
// Clicks are append-only.
type PostgresClickStore struct {
	pool *pgxpool.Pool
}

// NewPostgresClickStore creates a Postgres-backed click store.
func NewPostgresClickStore(pool *pgxpool.Pool) *PostgresClickStore {
	return &PostgresClickStore{pool: pool}
}

func (p *PostgresClickStore) SaveClick(ctx context.Context, click *analytics.ClickEvent) error {
	query := `
		INSERT INTO clicks (
			id, link_id, visitor_id, ip_address, user_agent, referrer,
			country, country_name, region, city, postal_code, timezone, location, org,
			device, browser, os, timestamp
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := p.pool.Exec(ctx, query,
		click.ID,
		click.LinkID,
		nullable(click.VisitorID),
		nullable(click.IPAddress),
		click.UserAgent,
		nullable(click.Referrer),
		nullable(click.Country),
		nullable(click.CountryName),
		nullable(click.Region),
		nullable(click.City),
		nullable(click.PostalCode),
		nullable(click.Timezone),
		nullable(click.Location),
		nullable(click.Org),
		click.Device,
		click.Browser,
		click.OS,
		click.Timestamp,
	)

	return err
}

// nullable maps empty strings to SQL NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
