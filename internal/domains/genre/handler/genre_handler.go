package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"book-catalog-api/internal/domains/genre"
	"book-catalog-api/internal/shared/response"
)

// GenreHandler serves the closed genre vocabulary
type GenreHandler struct {
	service genre.Service
}

// NewGenreHandler creates the handler instance
func NewGenreHandler(service genre.Service) *GenreHandler {
	return &GenreHandler{service: service}
}

// ListGenres handles GET /genres
func (h *GenreHandler) ListGenres(c *gin.Context) {
	genres, err := h.service.List(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("genre handler error")
		response.InternalServerError(c, "internal server error")
		return
	}

	response.Success(c, http.StatusOK, genres)
}
