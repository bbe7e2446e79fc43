package author

import "context"

// Repository defines author data access.
// GetByName + Create together form the get-or-create used by the catalog
// resolver. The pair is deliberately not atomic: concurrent callers resolving
// the same name may both miss the lookup and insert twice. Duplicate authors
// are tolerated (see DESIGN.md).
type Repository interface {
	// GetByName looks up the exact (first_name, surname, last_name) match
	// with NULL-safe equality on last_name. Returns ErrAuthorNotFound on miss.
	GetByName(ctx context.Context, name Name) (*Author, error)

	// Create inserts a new author stamped with the acting user
	Create(ctx context.Context, name Name, actorID int64) (*Author, error)
}
