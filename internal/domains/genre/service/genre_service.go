package service

import (
	"context"

	"book-catalog-api/internal/domains/genre"
)

// genreService implements genre.Service
type genreService struct {
	repo genre.Repository
}

// NewGenreService creates the service instance
func NewGenreService(repo genre.Repository) genre.Service {
	return &genreService{repo: repo}
}

// List returns the seeded vocabulary
func (s *genreService) List(ctx context.Context) ([]genre.Genre, error) {
	return s.repo.List(ctx)
}
