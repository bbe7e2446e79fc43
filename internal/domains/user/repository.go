package user

import "context"

// Repository defines user data access
type Repository interface {
	// Create inserts a new user and returns the stored row.
	// Returns ErrUsernameTaken on a unique constraint violation.
	Create(ctx context.Context, username, passwordHash string) (*User, error)

	// GetByUsername returns ErrUserNotFound when no row matches
	GetByUsername(ctx context.Context, username string) (*User, error)

	// UpdateLastLogin stamps last_login = now for the username
	UpdateLastLogin(ctx context.Context, username string) error
}
