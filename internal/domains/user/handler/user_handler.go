package handler

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"book-catalog-api/internal/domains/user"
	"book-catalog-api/internal/shared/middleware"
	"book-catalog-api/internal/shared/response"
)

// UserHandler handles HTTP requests for the user domain.
// Stateless - only holds dependencies.
type UserHandler struct {
	service user.Service
}

// NewUserHandler creates the handler instance
func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// Register handles POST /users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	dto, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, dto)
}

// Login handles POST /users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	pair, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, pair)
}

// Refresh handles POST /users/refresh
func (h *UserHandler) Refresh(c *gin.Context) {
	var req user.RefreshRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	pair, err := h.service.Refresh(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, pair)
}

// Me handles GET /users/me (auth middleware resolves the user first)
func (h *UserHandler) Me(c *gin.Context) {
	username := c.GetString(middleware.ContextUsername)
	if username == "" {
		response.Unauthorized(c, "not authenticated")
		return
	}

	dto, err := h.service.GetByUsername(c.Request.Context(), username)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// bindAndValidate unmarshals the JSON body and runs DTO validation.
// Writes a 400 and returns false on failure.
func (h *UserHandler) bindAndValidate(c *gin.Context, req interface{ Validate() error }) bool {
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
func (h *UserHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", vErrs)
	case errors.Is(err, user.ErrUsernameTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, user.ErrInvalidCredentials), errors.Is(err, user.ErrInvalidToken):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, err.Error())
	default:
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("user handler error")
		response.InternalServerError(c, "internal server error")
	}
}
