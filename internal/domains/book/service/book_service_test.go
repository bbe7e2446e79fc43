package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"book-catalog-api/internal/domains/author"
	"book-catalog-api/internal/domains/book"
	"book-catalog-api/internal/domains/book/model"
	"book-catalog-api/internal/domains/book/repository"
)

// ========================================
// MOCKS
// ========================================

type mockBookRepo struct {
	mock.Mock
}

func (m *mockBookRepo) Create(ctx context.Context, b model.NewBook, authorIDs []int64, genres []string) (int64, error) {
	args := m.Called(ctx, b, authorIDs, genres)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookRepo) Update(ctx context.Context, id int64, patch model.BookPatch, actorID int64, assoc repository.AssociationUpdate) error {
	args := m.Called(ctx, id, patch, actorID, assoc)
	return args.Error(0)
}

func (m *mockBookRepo) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookRepo) GetByID(ctx context.Context, id int64) (*model.BookResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BookResponse), args.Error(1)
}

func (m *mockBookRepo) List(ctx context.Context, f model.ListFilter) ([]model.BookResponse, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BookResponse), args.Error(1)
}

type mockAuthorRepo struct {
	mock.Mock
}

func (m *mockAuthorRepo) GetByName(ctx context.Context, name author.Name) (*author.Author, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*author.Author), args.Error(1)
}

func (m *mockAuthorRepo) Create(ctx context.Context, name author.Name, actorID int64) (*author.Author, error) {
	args := m.Called(ctx, name, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*author.Author), args.Error(1)
}

// ========================================
// CREATE
// ========================================

func TestCreateBook_ResolvesAuthorsAndGenres(t *testing.T) {
	books := new(mockBookRepo)
	authors := new(mockAuthorRepo)

	austen := author.Name{FirstName: "Jane", Surname: "Austen"}
	dickens := author.Name{FirstName: "Charles", Surname: "Dickens"}

	// One author already exists, the other is created on miss
	authors.On("GetByName", mock.Anything, austen).
		Return(&author.Author{ID: 7, FirstName: "Jane", Surname: "Austen"}, nil)
	authors.On("GetByName", mock.Anything, dickens).
		Return(nil, author.ErrAuthorNotFound)
	authors.On("Create", mock.Anything, dickens, int64(42)).
		Return(&author.Author{ID: 9, FirstName: "Charles", Surname: "Dickens"}, nil)

	books.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(ids []int64) bool {
		return len(ids) == 2
	}), []string{"Fiction", "Romance"}).Return(int64(3), nil)
	books.On("GetByID", mock.Anything, int64(3)).
		Return(&model.BookResponse{BookID: 3, Title: "Collected Works"}, nil)

	svc := NewBookService(books, authors)
	created, err := svc.CreateBook(context.Background(), model.CreateBookRequest{
		Title:           "Collected Works",
		PublicationYear: 1860,
		Author:          "Jane Austen, Charles Dickens",
		Genre:           "Fiction, Romance",
	}, 42)

	require.NoError(t, err)
	assert.Equal(t, int64(3), created.BookID)
	books.AssertExpectations(t)
	authors.AssertExpectations(t)
}

func TestCreateBook_DuplicateAuthorsCollapse(t *testing.T) {
	books := new(mockBookRepo)
	authors := new(mockAuthorRepo)

	austen := author.Name{FirstName: "Jane", Surname: "Austen"}
	authors.On("GetByName", mock.Anything, austen).
		Return(&author.Author{ID: 7}, nil)

	books.On("Create", mock.Anything, mock.Anything, []int64{7}, mock.Anything).
		Return(int64(1), nil)
	books.On("GetByID", mock.Anything, int64(1)).
		Return(&model.BookResponse{BookID: 1}, nil)

	svc := NewBookService(books, authors)
	_, err := svc.CreateBook(context.Background(), model.CreateBookRequest{
		Title:           "Emma",
		PublicationYear: 1815,
		Author:          "Jane Austen and Jane Austen",
		Genre:           "Fiction",
	}, 42)

	require.NoError(t, err)
	books.AssertExpectations(t)
}

func TestCreateBook_UnparsableAuthorRejected(t *testing.T) {
	books := new(mockBookRepo)
	authors := new(mockAuthorRepo)

	svc := NewBookService(books, authors)
	_, err := svc.CreateBook(context.Background(), model.CreateBookRequest{
		Title:           "The Odyssey",
		PublicationYear: 1900,
		Author:          "Homer",
		Genre:           "Poetry",
	}, 42)

	assert.Error(t, err)
	books.AssertNotCalled(t, "Create")
}

// ========================================
// UPDATE
// ========================================

func TestUpdateBook_ReplacesOnlyProvidedAssociations(t *testing.T) {
	books := new(mockBookRepo)
	authors := new(mockAuthorRepo)

	genreText := "Mystery"
	books.On("Update", mock.Anything, int64(5), mock.Anything, int64(42),
		mock.MatchedBy(func(a repository.AssociationUpdate) bool {
			return !a.ReplaceAuthors && a.ReplaceGenres &&
				len(a.Genres) == 1 && a.Genres[0] == "Mystery"
		})).Return(nil)
	books.On("GetByID", mock.Anything, int64(5)).
		Return(&model.BookResponse{BookID: 5, Genre: "Mystery"}, nil)

	svc := NewBookService(books, authors)
	updated, err := svc.UpdateBook(context.Background(), 5, model.UpdateBookRequest{
		Genre: &genreText,
	}, 42)

	require.NoError(t, err)
	assert.Equal(t, "Mystery", updated.Genre)
	authors.AssertNotCalled(t, "GetByName")
}

func TestUpdateBook_MissingBook(t *testing.T) {
	books := new(mockBookRepo)
	authors := new(mockAuthorRepo)

	title := "Renamed"
	books.On("Update", mock.Anything, int64(99), mock.Anything, int64(42), mock.Anything).
		Return(book.ErrBookNotFound)

	svc := NewBookService(books, authors)
	_, err := svc.UpdateBook(context.Background(), 99, model.UpdateBookRequest{Title: &title}, 42)

	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

// ========================================
// LIST
// ========================================

func TestListBooks_RejectsBadSort(t *testing.T) {
	books := new(mockBookRepo)
	authors := new(mockAuthorRepo)

	svc := NewBookService(books, authors)
	q := model.ListBooksQuery{}
	q.Normalize()
	q.SortBy = "id"

	_, err := svc.ListBooks(context.Background(), q)
	assert.Error(t, err)
	books.AssertNotCalled(t, "List")
}

func TestListBooks_PassesFilterThrough(t *testing.T) {
	books := new(mockBookRepo)
	authors := new(mockAuthorRepo)

	books.On("List", mock.Anything, mock.MatchedBy(func(f model.ListFilter) bool {
		return f.Title == "pride" && f.Limit == 10 && f.Offset == 0
	})).Return([]model.BookResponse{{BookID: 1}}, nil)

	svc := NewBookService(books, authors)
	q := model.ListBooksQuery{Title: "pride"}
	q.Normalize()

	out, err := svc.ListBooks(context.Background(), q)
	require.NoError(t, err)
	assert.Len(t, out, 1)
}
