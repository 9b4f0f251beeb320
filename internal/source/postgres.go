package source

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"campus/internal/directory"
	"campus/internal/models"
)

// FromPostgresURL connects to Postgres and builds the directory from the
// locations table. The pool is closed once the rows are read: the directory
// is fixed configuration, so nothing queries the database afterwards.
func FromPostgresURL(ctx context.Context, connStr string) (*directory.Directory, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer pool.Close()

	return FromPostgres(ctx, pool)
}

// FromPostgres reads location rows ordered by their seed position.
func FromPostgres(ctx context.Context, pool *pgxpool.Pool) (*directory.Directory, error) {
	const query = `
		SELECT name, latitude, longitude, type, radius
		FROM locations
		ORDER BY position`

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	var locations []models.Location
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.Name, &l.Point.Lat, &l.Point.Lon, &l.Type, &l.Radius); err != nil {
			return nil, fmt.Errorf("failed to scan location row: %w", err)
		}
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read location rows: %w", err)
	}
	return directory.New(locations)
}
