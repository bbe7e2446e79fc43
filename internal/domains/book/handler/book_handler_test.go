package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"book-catalog-api/internal/domains/book"
	"book-catalog-api/internal/domains/book/model"
	"book-catalog-api/internal/shared/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ========================================
// MOCK SERVICE
// ========================================

type mockBookService struct {
	mock.Mock
}

func (m *mockBookService) CreateBook(ctx context.Context, req model.CreateBookRequest, actorID int64) (*model.BookResponse, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BookResponse), args.Error(1)
}

func (m *mockBookService) UpdateBook(ctx context.Context, id int64, req model.UpdateBookRequest, actorID int64) (*model.BookResponse, error) {
	args := m.Called(ctx, id, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BookResponse), args.Error(1)
}

func (m *mockBookService) DeleteBook(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookService) GetBook(ctx context.Context, id int64) (*model.BookResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BookResponse), args.Error(1)
}

func (m *mockBookService) ListBooks(ctx context.Context, q model.ListBooksQuery) ([]model.BookResponse, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BookResponse), args.Error(1)
}

// ========================================
// HELPERS
// ========================================

// fakeAuth injects the identity normally set by the auth middleware
func fakeAuth(userID int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextUsername, "alice")
		c.Next()
	}
}

func newTestRouter(svc *mockBookService, authed bool) *gin.Engine {
	h := NewBookHandler(svc)
	r := gin.New()

	group := r.Group("/books")
	if authed {
		group.Use(fakeAuth(42))
	}
	group.GET("", h.ListBooks)
	group.GET("/:id", h.GetBook)
	group.POST("", h.CreateBook)
	group.PATCH("/:id", h.UpdateBook)
	group.DELETE("/:id", h.DeleteBook)

	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ========================================
// GET /books/:id
// ========================================

func TestGetBook_Found(t *testing.T) {
	svc := new(mockBookService)
	svc.On("GetBook", mock.Anything, int64(3)).
		Return(&model.BookResponse{BookID: 3, Title: "Emma", Author: "Jane Austen"}, nil)

	w := doJSON(t, newTestRouter(svc, false), http.MethodGet, "/books/3", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"book_id":3`)
	assert.Contains(t, w.Body.String(), `"Jane Austen"`)
}

func TestGetBook_NotFoundShape(t *testing.T) {
	svc := new(mockBookService)
	svc.On("GetBook", mock.Anything, int64(99)).
		Return(nil, book.ErrBookNotFound)

	w := doJSON(t, newTestRouter(svc, false), http.MethodGet, "/books/99", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "book not found", body["detail"])
	assert.Equal(t, float64(99), body["book_id"])
}

func TestGetBook_JunkIDRejected(t *testing.T) {
	svc := new(mockBookService)

	w := doJSON(t, newTestRouter(svc, false), http.MethodGet, "/books/abc", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "GetBook")
}

// ========================================
// DELETE /books/:id
// ========================================

func TestDeleteBook_NoContent(t *testing.T) {
	svc := new(mockBookService)
	svc.On("DeleteBook", mock.Anything, int64(3)).Return(true, nil)

	w := doJSON(t, newTestRouter(svc, true), http.MethodDelete, "/books/3", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestDeleteBook_Missing(t *testing.T) {
	svc := new(mockBookService)
	svc.On("DeleteBook", mock.Anything, int64(99)).Return(false, nil)

	w := doJSON(t, newTestRouter(svc, true), http.MethodDelete, "/books/99", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"book_id":99`)
}

// ========================================
// POST /books
// ========================================

func TestCreateBook_RequiresAuth(t *testing.T) {
	svc := new(mockBookService)

	w := doJSON(t, newTestRouter(svc, false), http.MethodPost, "/books", model.CreateBookRequest{
		Title:           "Emma",
		PublicationYear: 1815,
		Author:          "Jane Austen",
		Genre:           "Fiction",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "CreateBook")
}

func TestCreateBook_Created(t *testing.T) {
	svc := new(mockBookService)
	svc.On("CreateBook", mock.Anything, mock.Anything, int64(42)).
		Return(&model.BookResponse{BookID: 1, Title: "Emma", Author: "Jane Austen", Genre: "Fiction"}, nil)

	w := doJSON(t, newTestRouter(svc, true), http.MethodPost, "/books", model.CreateBookRequest{
		Title:           "Emma",
		PublicationYear: 1815,
		Author:          "Jane Austen",
		Genre:           "Fiction",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestCreateBook_ValidationFailure(t *testing.T) {
	svc := new(mockBookService)

	w := doJSON(t, newTestRouter(svc, true), http.MethodPost, "/books", model.CreateBookRequest{
		Title:           "Emma",
		PublicationYear: 1700,
		Author:          "Jane Austen",
		Genre:           "Fiction",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	svc.AssertNotCalled(t, "CreateBook")
}

// ========================================
// PATCH /books/:id
// ========================================

func TestUpdateBook_NotFound(t *testing.T) {
	svc := new(mockBookService)
	svc.On("UpdateBook", mock.Anything, int64(99), mock.Anything, int64(42)).
		Return(nil, book.ErrBookNotFound)

	title := "Renamed"
	w := doJSON(t, newTestRouter(svc, true), http.MethodPatch, "/books/99",
		model.UpdateBookRequest{Title: &title})

	assert.Equal(t, http.StatusNotFound, w.Code)

	// Same 404 shape as GET and DELETE
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "book not found", body["detail"])
	assert.Equal(t, float64(99), body["book_id"])
}

// ========================================
// GET /books
// ========================================

func TestListBooks_DefaultsAndMeta(t *testing.T) {
	svc := new(mockBookService)
	svc.On("ListBooks", mock.Anything, mock.MatchedBy(func(q model.ListBooksQuery) bool {
		return q.Page == 1 && q.PageSize == 10 && q.SortBy == "title" && q.SortOrder == "asc"
	})).Return([]model.BookResponse{{BookID: 1}, {BookID: 2}}, nil)

	w := doJSON(t, newTestRouter(svc, false), http.MethodGet, "/books", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"page":1`)
	assert.Contains(t, w.Body.String(), `"page_size":10`)
}

func TestListBooks_FilterPassthrough(t *testing.T) {
	svc := new(mockBookService)
	svc.On("ListBooks", mock.Anything, mock.MatchedBy(func(q model.ListBooksQuery) bool {
		return q.Author == "austen" && q.Page == 2 && q.SortOrder == "desc"
	})).Return([]model.BookResponse{}, nil)

	w := doJSON(t, newTestRouter(svc, false), http.MethodGet,
		"/books?author=austen&page=2&sort_order=DESC", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}
