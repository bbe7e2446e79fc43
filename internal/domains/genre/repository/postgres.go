package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"book-catalog-api/internal/domains/genre"
)

// postgresRepository implements genre.Repository on pgxpool
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new genre repository instance
func NewPostgresRepository(pool *pgxpool.Pool) genre.Repository {
	return &postgresRepository{pool: pool}
}

// Seed upserts the closed vocabulary into the genres table
func (r *postgresRepository) Seed(ctx context.Context) error {
	query := `
        INSERT INTO genres (name)
        SELECT unnest($1::text[])
        ON CONFLICT (name) DO NOTHING
    `

	if _, err := r.pool.Exec(ctx, query, genre.Vocabulary); err != nil {
		return fmt.Errorf("failed to seed genres: %w", err)
	}

	return nil
}

// List returns all seeded genres ordered by name
func (r *postgresRepository) List(ctx context.Context) ([]genre.Genre, error) {
	query := `SELECT id, name FROM genres ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query genres: %w", err)
	}
	defer rows.Close()

	var genres []genre.Genre
	for rows.Next() {
		var g genre.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating genres: %w", err)
	}

	return genres, nil
}
