package author

import "time"

// Name is a parsed-but-unresolved author name awaiting database lookup.
// Identity key for find-or-create is (FirstName, Surname, LastName),
// with NULL-safe equality on LastName.
type Name struct {
	FirstName string
	Surname   string
	LastName  *string
}

// Author is the persisted row. Rows created through the book write path
// are never updated or deleted by it.
type Author struct {
	ID        int64     `json:"id" db:"id"`
	FirstName string    `json:"first_name" db:"first_name"`
	Surname   string    `json:"surname" db:"surname"`
	LastName  *string   `json:"last_name" db:"last_name"`
	Biography *string   `json:"biography" db:"biography"`
	BirthYear *int      `json:"birth_year" db:"birth_year"`
	DeathYear *int      `json:"death_year" db:"death_year"`
	CreatedBy int64     `json:"created_by" db:"created_by"`
	UpdatedBy int64     `json:"updated_by" db:"updated_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
