package model

import "time"

// Book is the persisted row. Display author/genre strings are never stored;
// they are derived at read time from the association tables.
type Book struct {
	ID              int64     `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Description     *string   `json:"description" db:"description"`
	PublicationYear int       `json:"publication_year" db:"publication_year"`
	CreatedBy       int64     `json:"created_by" db:"created_by"`
	UpdatedBy       int64     `json:"updated_by" db:"updated_by"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// BookResponse is the aggregated projection returned by reads.
// Author is "First Surname" pairs joined with ", ", de-duplicated;
// Genre is comma-joined names. Both are empty strings when the book
// has no associations.
type BookResponse struct {
	BookID          int64   `json:"book_id"`
	Title           string  `json:"title"`
	Description     *string `json:"description"`
	PublicationYear int     `json:"publication_year"`
	Author          string  `json:"author"`
	Genre           string  `json:"genre"`
}

// NewBook carries the validated fields of a create request into the store
type NewBook struct {
	Title           string
	Description     *string
	PublicationYear int
	ActorID         int64
}

// BookPatch carries partial-update fields; nil means "keep current value"
type BookPatch struct {
	Title           *string
	Description     *string
	PublicationYear *int
}

// ListFilter is the storage-level filter/sort/pagination contract
type ListFilter struct {
	Title     string
	Author    string
	Genre     string
	YearFrom  *int
	YearTo    *int
	SortBy    string // "title" or "publication_year", pre-validated
	SortOrder string // "asc" or "desc", pre-validated
	Limit     int
	Offset    int
}
