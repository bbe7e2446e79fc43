package service

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"book-catalog-api/internal/domains/author"
	"book-catalog-api/internal/domains/book"
	"book-catalog-api/internal/domains/book/model"
	"book-catalog-api/internal/domains/book/repository"
)

// resolveConcurrency caps parallel author lookups per request
const resolveConcurrency = 4

// bookService implements ServiceInterface
type bookService struct {
	books   repository.RepositoryInterface
	authors author.Repository
}

// NewBookService creates the service instance.
// Dependencies are injected via constructor.
func NewBookService(books repository.RepositoryInterface, authors author.Repository) ServiceInterface {
	return &bookService{
		books:   books,
		authors: authors,
	}
}

// CreateBook parses, resolves and persists a new catalog entry
func (s *bookService) CreateBook(ctx context.Context, req model.CreateBookRequest, actorID int64) (*model.BookResponse, error) {
	// 1. VALIDATE INPUT
	// DTO validation also runs at the handler, double-check here
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. PARSE FREE TEXT
	names, err := book.ParseAuthors(req.Author)
	if err != nil {
		return nil, err
	}
	genres := book.ParseGenres(req.Genre)

	// 3. RESOLVE AUTHORS (find-or-create, concurrent)
	authorIDs, err := s.resolveAuthors(ctx, names, actorID)
	if err != nil {
		return nil, err
	}

	// 4. PERSIST BOOK + ASSOCIATIONS (single transaction)
	id, err := s.books.Create(ctx, model.NewBook{
		Title:           req.Title,
		Description:     req.Description,
		PublicationYear: req.PublicationYear,
		ActorID:         actorID,
	}, authorIDs, genres)
	if err != nil {
		return nil, err
	}

	// 5. RETURN AGGREGATED PROJECTION
	return s.books.GetByID(ctx, id)
}

// UpdateBook applies a partial update with full association replacement
func (s *bookService) UpdateBook(ctx context.Context, id int64, req model.UpdateBookRequest, actorID int64) (*model.BookResponse, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// An empty patch still refreshes updated_by/updated_at, matching the
	// write path's audit trail for any authenticated touch

	// 2. BUILD ASSOCIATION REPLACEMENT
	assoc := repository.AssociationUpdate{}
	if req.Author != nil {
		names, err := book.ParseAuthors(*req.Author)
		if err != nil {
			return nil, err
		}
		authorIDs, err := s.resolveAuthors(ctx, names, actorID)
		if err != nil {
			return nil, err
		}
		assoc.ReplaceAuthors = true
		assoc.AuthorIDs = authorIDs
	}
	if req.Genre != nil {
		assoc.ReplaceGenres = true
		assoc.Genres = book.ParseGenres(*req.Genre)
	}

	// 3. PERSIST (single transaction)
	patch := model.BookPatch{
		Title:           req.Title,
		Description:     req.Description,
		PublicationYear: req.PublicationYear,
	}
	if err := s.books.Update(ctx, id, patch, actorID, assoc); err != nil {
		return nil, err
	}

	// 4. RETURN AGGREGATED PROJECTION
	return s.books.GetByID(ctx, id)
}

// DeleteBook removes a book by id
func (s *bookService) DeleteBook(ctx context.Context, id int64) (bool, error) {
	return s.books.Delete(ctx, id)
}

// GetBook returns the aggregated projection
func (s *bookService) GetBook(ctx context.Context, id int64) (*model.BookResponse, error) {
	return s.books.GetByID(ctx, id)
}

// ListBooks validates the query and runs the aggregation
func (s *bookService) ListBooks(ctx context.Context, q model.ListBooksQuery) ([]model.BookResponse, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	return s.books.List(ctx, q.ToFilter())
}

// resolveAuthors maps parsed names to author ids via find-or-create.
// Lookups fan out concurrently; result order follows input order and
// duplicate names collapse to one id.
func (s *bookService) resolveAuthors(ctx context.Context, names []author.Name, actorID int64) ([]int64, error) {
	ids := make([]int64, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveConcurrency)

	for i, name := range names {
		g.Go(func() error {
			id, err := s.findOrCreateAuthor(gctx, name, actorID)
			if err != nil {
				return err
			}
			ids[i] = id
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return dedupeIDs(ids), nil
}

// findOrCreateAuthor looks up the identity key and inserts on miss.
// Lookup and insert are separate statements; a concurrent create of the
// same name can slip between them and produce a duplicate row. Accepted.
func (s *bookService) findOrCreateAuthor(ctx context.Context, name author.Name, actorID int64) (int64, error) {
	existing, err := s.authors.GetByName(ctx, name)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, author.ErrAuthorNotFound) {
		return 0, err
	}

	created, err := s.authors.Create(ctx, name, actorID)
	if err != nil {
		return 0, err
	}

	return created.ID, nil
}

// dedupeIDs drops repeated ids while keeping first-seen order
func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
