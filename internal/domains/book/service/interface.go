package service

import (
	"context"
	"io"

	"book-catalog-api/internal/domains/book/model"
)

// ServiceInterface orchestrates the catalog write path (parse free text,
// resolve authors, persist transactionally) and the aggregated read path.
type ServiceInterface interface {
	// CreateBook parses author/genre text, resolves authors via
	// find-or-create and persists the book with its associations.
	// Returns the aggregated projection of the new book.
	CreateBook(ctx context.Context, req model.CreateBookRequest, actorID int64) (*model.BookResponse, error)

	// UpdateBook applies a partial update. When author or genre text is
	// present the corresponding association set is fully replaced.
	UpdateBook(ctx context.Context, id int64, req model.UpdateBookRequest, actorID int64) (*model.BookResponse, error)

	// DeleteBook removes a book; reports whether it existed
	DeleteBook(ctx context.Context, id int64) (bool, error)

	// GetBook returns the aggregated projection or book.ErrBookNotFound
	GetBook(ctx context.Context, id int64) (*model.BookResponse, error)

	// ListBooks validates and runs the list query. Callers normalize the
	// query first (defaults, casing) so pagination meta reflects what ran.
	ListBooks(ctx context.Context, q model.ListBooksQuery) ([]model.BookResponse, error)
}

// ImportServiceInterface ingests an uploaded catalog file row by row
type ImportServiceInterface interface {
	// Import parses the upload (format chosen by filename extension),
	// creates a book per valid row and collects per-row errors.
	Import(ctx context.Context, filename string, r io.Reader, actorID int64) (*model.ImportResult, error)
}
