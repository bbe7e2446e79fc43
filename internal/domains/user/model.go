package user

import "time"

// User represents a registered account.
// PasswordHash maps to the password_hash column, the only persisted credential;
// plaintext never leaves the request scope.
type User struct {
	ID           int64      `json:"id" db:"id"`
	Username     string     `json:"username" db:"username"`
	PasswordHash string     `json:"-" db:"password_hash"`
	RegisteredAt time.Time  `json:"registered_at" db:"registered_at"`
	LastLogin    *time.Time `json:"last_login" db:"last_login"`
}

// UserDTO is the API-facing view of a user (no credential material)
type UserDTO struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	RegisteredAt time.Time  `json:"registered_at"`
	LastLogin    *time.Time `json:"last_login"`
}

// ToDTO strips sensitive fields for responses
func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:           u.ID,
		Username:     u.Username,
		RegisteredAt: u.RegisteredAt,
		LastLogin:    u.LastLogin,
	}
}
