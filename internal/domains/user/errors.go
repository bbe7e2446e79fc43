package user

import "errors"

// Repository-level errors
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
)

// Service-level errors
var (
	// ErrInvalidCredentials covers both unknown username and wrong password.
	// The two cases must stay indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrInvalidToken = errors.New("invalid or expired token")
)
