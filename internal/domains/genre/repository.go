package genre

import "context"

// Repository defines genre data access.
// Book-genre association rows are written by the book repository inside
// the book write transaction; this repository owns the vocabulary itself.
type Repository interface {
	// Seed upserts the closed vocabulary. Idempotent; safe to run at every startup.
	Seed(ctx context.Context) error

	// List returns the seeded vocabulary ordered by name
	List(ctx context.Context) ([]Genre, error)
}
