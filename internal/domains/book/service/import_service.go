package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"book-catalog-api/internal/domains/book"
	"book-catalog-api/internal/domains/book/model"
)

// maxImportRows caps a single upload; larger files are rejected outright
const maxImportRows = 1000

// importRow is the row shape shared by both upload formats
type importRow struct {
	Title           string  `json:"title"`
	Description     *string `json:"description"`
	PublicationYear int     `json:"publication_year"`
	Author          string  `json:"author"`
	Genre           string  `json:"genre"`
}

// importService implements ImportServiceInterface on top of the book service
type importService struct {
	books ServiceInterface
}

// NewImportService creates the import service instance
func NewImportService(books ServiceInterface) ImportServiceInterface {
	return &importService{books: books}
}

// Import parses the upload and creates a book per valid row.
// Rows are independent: a failed row is recorded and skipped, rows already
// committed stay committed.
func (s *importService) Import(ctx context.Context, filename string, r io.Reader, actorID int64) (*model.ImportResult, error) {
	var rows []importRow
	var err error

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err = parseCSV(r)
	case ".json":
		rows, err = parseJSON(r)
	default:
		return nil, book.ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}

	if len(rows) > maxImportRows {
		return nil, book.ErrImportTooLarge
	}

	result := &model.ImportResult{Total: len(rows)}
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req := model.CreateBookRequest{
			Title:           row.Title,
			Description:     row.Description,
			PublicationYear: row.PublicationYear,
			Author:          row.Author,
			Genre:           row.Genre,
		}

		if _, err := s.books.CreateBook(ctx, req, actorID); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, model.ImportRowError{
				Row:     i + 1,
				Message: err.Error(),
			})
			continue
		}
		result.Succeeded++
	}

	log.Info().
		Str("filename", filename).
		Int("total", result.Total).
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed).
		Msg("bulk import finished")

	return result, nil
}

// csvHeader is the required column order for CSV uploads
var csvHeader = []string{"title", "description", "publication_year", "author", "genre"}

// parseCSV reads a headered CSV upload into rows
func parseCSV(r io.Reader) ([]importRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read csv header: %v", book.ErrMalformedImport, err)
	}
	if err := checkCSVHeader(header); err != nil {
		return nil, err
	}

	var rows []importRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read csv row %d: %v", book.ErrMalformedImport, len(rows)+1, err)
		}

		year, err := strconv.Atoi(strings.TrimSpace(record[2]))
		if err != nil {
			// Keep the row; validation rejects it with a per-row error
			year = 0
		}

		row := importRow{
			Title:           record[0],
			PublicationYear: year,
			Author:          record[3],
			Genre:           record[4],
		}
		if desc := record[1]; desc != "" {
			row.Description = &desc
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func checkCSVHeader(header []string) error {
	if len(header) != len(csvHeader) {
		return fmt.Errorf("%w: csv header must be exactly: %s", book.ErrMalformedImport, strings.Join(csvHeader, ","))
	}
	for i, col := range header {
		if !strings.EqualFold(strings.TrimSpace(col), csvHeader[i]) {
			return fmt.Errorf("%w: csv header must be exactly: %s", book.ErrMalformedImport, strings.Join(csvHeader, ","))
		}
	}
	return nil
}

// parseJSON reads a JSON array upload into rows
func parseJSON(r io.Reader) ([]importRow, error) {
	var rows []importRow
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("%w: decode json: %v", book.ErrMalformedImport, err)
	}
	return rows, nil
}
