package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/linkmetry/linkmetry/internal/geo"
)

// PostgresGeoCache is a PostgreSQL implementation of geo.Cache, keyed by
// IP address with logical expiry checked at read time.
type PostgresGeoCache struct {
	pool *pgxpool.Pool
}

// NewPostgresGeoCache creates a Postgres-backed geolocation cache.
func NewPostgresGeoCache(pool *pgxpool.Pool) *PostgresGeoCache {
	return &PostgresGeoCache{pool: pool}
}

// Get returns the cached record for ip while its expiry is still in the
// future. A missing or expired row is (nil, nil).
func (p *PostgresGeoCache) Get(ctx context.Context, ip string) (*geo.Record, error) {
	query := `
		SELECT country, country_name, region, city, postal_code, timezone, location, org
		FROM geo_cache
		WHERE ip_address = $1 AND expires_at > NOW()
	`

	var (
		rec    geo.Record
		fields = []*string{
			&rec.Country, &rec.CountryName, &rec.Region, &rec.City,
			&rec.PostalCode, &rec.Timezone, &rec.Location, &rec.Org,
		}
		scanned = make([]any, len(fields))
	)

	for i := range fields {
		scanned[i] = &nullableScan{dst: fields[i]}
	}

	err := p.pool.QueryRow(ctx, query, ip).Scan(scanned...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return &rec, nil
}

// Put upserts the record for ip, refreshing cached_at and pushing
// expires_at out by geo.CacheTTL. Last writer wins under concurrency.
func (p *PostgresGeoCache) Put(ctx context.Context, ip string, record *geo.Record) error {
	query := `
		INSERT INTO geo_cache (
			ip_address, country, country_name, region, city,
			postal_code, timezone, location, org, cached_at, expires_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), $10)
		ON CONFLICT (ip_address) DO UPDATE SET
			country = EXCLUDED.country,
			country_name = EXCLUDED.country_name,
			region = EXCLUDED.region,
			city = EXCLUDED.city,
			postal_code = EXCLUDED.postal_code,
			timezone = EXCLUDED.timezone,
			location = EXCLUDED.location,
			org = EXCLUDED.org,
			cached_at = NOW(),
			expires_at = EXCLUDED.expires_at
	`

	_, err := p.pool.Exec(ctx, query,
		ip,
		nullable(record.Country),
		nullable(record.CountryName),
		nullable(record.Region),
		nullable(record.City),
		nullable(record.PostalCode),
		nullable(record.Timezone),
		nullable(record.Location),
		nullable(record.Org),
		time.Now().UTC().Add(geo.CacheTTL),
	)

	return err
}

// nullableScan scans a nullable text column into a plain string, mapping
// NULL to "".
type nullableScan struct {
	dst *string
}

func (n *nullableScan) Scan(src any) error {
	if src == nil {
		*n.dst = ""

		return nil
	}

	if s, ok := src.(string); ok {
		*n.dst = s
	}

	return nil
}
