package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"book-catalog-api/internal/domains/book"
	"book-catalog-api/internal/domains/book/service"
	"book-catalog-api/internal/shared/middleware"
	"book-catalog-api/internal/shared/response"
)

// maxImportUpload caps the multipart body at 5 MiB
const maxImportUpload = 5 << 20

// ImportHandler handles bulk catalog uploads
type ImportHandler struct {
	service service.ImportServiceInterface
}

// NewImportHandler creates the handler instance
func NewImportHandler(service service.ImportServiceInterface) *ImportHandler {
	return &ImportHandler{service: service}
}

// Import handles POST /books/import (multipart form, field "file")
func (h *ImportHandler) Import(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportUpload)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "multipart field \"file\" is required")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "cannot open uploaded file")
		return
	}
	defer f.Close()

	result, err := h.service.Import(c.Request.Context(), fileHeader.Filename, f, actorID)
	if err != nil {
		switch {
		case errors.Is(err, book.ErrUnsupportedFormat),
			errors.Is(err, book.ErrImportTooLarge),
			errors.Is(err, book.ErrMalformedImport):
			response.BadRequest(c, err.Error())
		default:
			log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("bulk import error")
			response.InternalServerError(c, "internal server error")
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}
