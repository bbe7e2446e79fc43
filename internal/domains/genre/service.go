package genre

import "context"

// Service exposes the genre vocabulary to the HTTP layer
type Service interface {
	// List returns the seeded vocabulary ordered by name
	List(ctx context.Context) ([]Genre, error)
}
