package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"book-catalog-api/internal/domains/author"
)

// postgresRepository implements author.Repository on pgxpool
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new author repository instance
func NewPostgresRepository(pool *pgxpool.Pool) author.Repository {
	return &postgresRepository{pool: pool}
}

// GetByName fetches an author by its identity key.
// last_name compares NULL-safe: NULL matches only NULL.
func (r *postgresRepository) GetByName(ctx context.Context, name author.Name) (*author.Author, error) {
	query := `
        SELECT id, first_name, surname, last_name, biography, birth_year, death_year,
               created_by, updated_by, created_at, updated_at
        FROM authors
        WHERE first_name = $1
          AND surname = $2
          AND (last_name = $3 OR (last_name IS NULL AND $3 IS NULL))
    `

	var a author.Author
	err := r.pool.QueryRow(ctx, query, name.FirstName, name.Surname, name.LastName).Scan(
		&a.ID,
		&a.FirstName,
		&a.Surname,
		&a.LastName,
		&a.Biography,
		&a.BirthYear,
		&a.DeathYear,
		&a.CreatedBy,
		&a.UpdatedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by name: %w", err)
	}

	return &a, nil
}

// Create inserts a new author row stamped with the acting user
func (r *postgresRepository) Create(ctx context.Context, name author.Name, actorID int64) (*author.Author, error) {
	query := `
        INSERT INTO authors (first_name, surname, last_name, created_by, updated_by)
        VALUES ($1, $2, $3, $4, $4)
        RETURNING id, first_name, surname, last_name, biography, birth_year, death_year,
                  created_by, updated_by, created_at, updated_at
    `

	var a author.Author
	err := r.pool.QueryRow(ctx, query, name.FirstName, name.Surname, name.LastName, actorID).Scan(
		&a.ID,
		&a.FirstName,
		&a.Surname,
		&a.LastName,
		&a.Biography,
		&a.BirthYear,
		&a.DeathYear,
		&a.CreatedBy,
		&a.UpdatedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return &a, nil
}
