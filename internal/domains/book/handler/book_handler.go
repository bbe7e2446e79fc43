package handler

import (
	"errors"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"book-catalog-api/internal/domains/book"
	"book-catalog-api/internal/domains/book/model"
	"book-catalog-api/internal/domains/book/service"
	"book-catalog-api/internal/shared/middleware"
	"book-catalog-api/internal/shared/response"
)

// BookHandler handles HTTP requests for the catalog.
// Stateless - only holds dependencies.
type BookHandler struct {
	service service.ServiceInterface
}

// NewBookHandler creates the handler instance
func NewBookHandler(service service.ServiceInterface) *BookHandler {
	return &BookHandler{service: service}
}

// CreateBook handles POST /books
func (h *BookHandler) CreateBook(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}

	var req model.CreateBookRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	created, err := h.service.CreateBook(c.Request.Context(), req, actorID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, created)
}

// UpdateBook handles PATCH /books/:id
func (h *BookHandler) UpdateBook(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}

	id, ok := h.bookID(c)
	if !ok {
		return
	}

	var req model.UpdateBookRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	updated, err := h.service.UpdateBook(c.Request.Context(), id, req, actorID)
	if err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			h.bookNotFound(c, id)
			return
		}
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// DeleteBook handles DELETE /books/:id
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := h.bookID(c)
	if !ok {
		return
	}

	deleted, err := h.service.DeleteBook(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if !deleted {
		h.bookNotFound(c, id)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetBook handles GET /books/:id
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := h.bookID(c)
	if !ok {
		return
	}

	b, err := h.service.GetBook(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			h.bookNotFound(c, id)
			return
		}
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

// ListBooks handles GET /books
func (h *BookHandler) ListBooks(c *gin.Context) {
	var q model.ListBooksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "invalid query parameters: "+err.Error())
		return
	}
	q.Normalize()

	books, err := h.service.ListBooks(c.Request.Context(), q)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, books, &response.Meta{
		Page:     q.Page,
		PageSize: q.PageSize,
	})
}

// bookID parses the :id path parameter; writes a 400 and returns false on junk
func (h *BookHandler) bookID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		response.BadRequest(c, "book id must be a positive integer")
		return 0, false
	}
	return id, true
}

// bookNotFound writes the catalog's 404 shape carrying the requested id
func (h *BookHandler) bookNotFound(c *gin.Context, id int64) {
	c.JSON(http.StatusNotFound, gin.H{
		"detail":  "book not found",
		"book_id": id,
	})
}

// bindAndValidate unmarshals the JSON body and runs DTO validation.
// Writes a 400 and returns false on failure.
func (h *BookHandler) bindAndValidate(c *gin.Context, req interface{ Validate() error }) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return false
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err)
		return false
	}
	return true
}

// handleError maps domain errors to HTTP status codes
func (h *BookHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", vErrs)
	case errors.Is(err, book.ErrEmptyText), errors.Is(err, book.ErrCannotParseAuthor):
		response.BadRequest(c, err.Error())
	case errors.Is(err, book.ErrBookNotFound):
		response.NotFound(c, err.Error())
	default:
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("book handler error")
		response.InternalServerError(c, "internal server error")
	}
}
