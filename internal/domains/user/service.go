package user

import "context"

// Service defines user business logic
type Service interface {
	// Register creates a new account. Returns ErrUsernameTaken on duplicates.
	Register(ctx context.Context, req RegisterRequest) (*UserDTO, error)

	// Login authenticates and issues an access/refresh token pair.
	// Returns ErrInvalidCredentials for unknown username or wrong password alike.
	Login(ctx context.Context, req LoginRequest) (*TokenPair, error)

	// Refresh rotates a live refresh token into a new token pair.
	// Returns ErrInvalidToken for malformed, expired, or revoked tokens.
	Refresh(ctx context.Context, req RefreshRequest) (*TokenPair, error)

	// GetByUsername resolves a live user, used by auth middleware and /users/me
	GetByUsername(ctx context.Context, username string) (*UserDTO, error)
}
