package repository

import (
	"context"

	"book-catalog-api/internal/domains/book/model"
)

// AssociationUpdate describes how book associations change on update.
// Replace semantics: when a flag is set the existing rows for the book are
// cleared first, then the new set is written. There is no diffing.
type AssociationUpdate struct {
	ReplaceAuthors bool
	AuthorIDs      []int64

	ReplaceGenres bool
	Genres        []string
}

// RepositoryInterface owns the book row lifecycle and the aggregated read
// projection. Create and Update run book row + association writes inside a
// single transaction.
type RepositoryInterface interface {
	// Create inserts the book row and its author/genre association rows.
	// Returns the generated book id.
	Create(ctx context.Context, b model.NewBook, authorIDs []int64, genres []string) (int64, error)

	// Update applies a COALESCE-style partial update (absent fields keep their
	// value) and replaces associations as instructed. updated_by/updated_at are
	// always refreshed. Returns book.ErrBookNotFound when the id does not exist.
	Update(ctx context.Context, id int64, patch model.BookPatch, actorID int64, assoc AssociationUpdate) error

	// Delete removes the book; associations cascade at the storage layer.
	// Returns whether a row was deleted - a missing id is not an error.
	Delete(ctx context.Context, id int64) (bool, error)

	// GetByID returns the aggregated projection or book.ErrBookNotFound
	GetByID(ctx context.Context, id int64) (*model.BookResponse, error)

	// List executes the filter/sort/pagination query over the projection
	List(ctx context.Context, f model.ListFilter) ([]model.BookResponse, error)
}
