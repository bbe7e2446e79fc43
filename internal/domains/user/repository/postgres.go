package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"book-catalog-api/internal/domains/user"
)

// Queries name the credential column password_hash, matching migrations/0001_init.sql
const (
	insertUserQuery = `
        INSERT INTO users (username, password_hash)
        VALUES ($1, $2)
        RETURNING id, username, password_hash, registered_at, last_login
    `

	selectUserByUsernameQuery = `
        SELECT id, username, password_hash, registered_at, last_login
        FROM users
        WHERE username = $1
    `

	updateLastLoginQuery = `UPDATE users SET last_login = CURRENT_TIMESTAMP WHERE username = $1`
)

// postgresRepository implements user.Repository on pgxpool
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new user repository instance
func NewPostgresRepository(pool *pgxpool.Pool) user.Repository {
	return &postgresRepository{pool: pool}
}

// Create inserts a new user row
func (r *postgresRepository) Create(ctx context.Context, username, passwordHash string) (*user.User, error) {
	var u user.User
	err := r.pool.QueryRow(ctx, insertUserQuery, username, passwordHash).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.RegisteredAt,
		&u.LastLogin,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return nil, user.ErrUsernameTaken
			}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &u, nil
}

// GetByUsername fetches a user by its unique username
func (r *postgresRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	var u user.User
	err := r.pool.QueryRow(ctx, selectUserByUsernameQuery, username).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.RegisteredAt,
		&u.LastLogin,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return &u, nil
}

// UpdateLastLogin stamps the last successful login time
func (r *postgresRepository) UpdateLastLogin(ctx context.Context, username string) error {
	if _, err := r.pool.Exec(ctx, updateLastLoginQuery, username); err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	return nil
}
