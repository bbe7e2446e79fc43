package model

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"book-catalog-api/internal/domains/book"
	"book-catalog-api/internal/domains/genre"
)

// ========================================
// WRITE DTOs
// ========================================

// CreateBookRequest - POST /books
// Author and Genre arrive as free text and are parsed into relational rows.
type CreateBookRequest struct {
	Title           string  `json:"title" binding:"required"`
	Description     *string `json:"description,omitempty"`
	PublicationYear int     `json:"publication_year" binding:"required"`
	Author          string  `json:"author" binding:"required"`
	Genre           string  `json:"genre" binding:"required"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.PublicationYear,
			validation.Required.Error("publication_year is required"),
			validation.By(publicationYearRule),
		),
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
			validation.By(parsableAuthorsRule),
		),
		validation.Field(&r.Genre,
			validation.Required.Error("genre is required"),
			validation.By(allowedGenresRule),
		),
	)
}

// UpdateBookRequest - PATCH /books/:id
// Absent fields keep their current value; present fields are validated
// with the same rules as create.
type UpdateBookRequest struct {
	Title           *string `json:"title,omitempty"`
	Description     *string `json:"description,omitempty"`
	PublicationYear *int    `json:"publication_year,omitempty"`
	Author          *string `json:"author,omitempty"`
	Genre           *string `json:"genre,omitempty"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.When(r.Title != nil, validation.Length(1, 255)),
		),
		validation.Field(&r.PublicationYear,
			validation.By(func(value interface{}) error {
				if r.PublicationYear == nil {
					return nil
				}
				return publicationYearRule(*r.PublicationYear)
			}),
		),
		validation.Field(&r.Author,
			validation.By(func(value interface{}) error {
				if r.Author == nil {
					return nil
				}
				return parsableAuthorsRule(*r.Author)
			}),
		),
		validation.Field(&r.Genre,
			validation.By(func(value interface{}) error {
				if r.Genre == nil {
					return nil
				}
				return allowedGenresRule(*r.Genre)
			}),
		),
	)
}

// Empty reports whether the patch carries no changes at all
func (r UpdateBookRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.PublicationYear == nil &&
		r.Author == nil && r.Genre == nil
}

// ========================================
// VALIDATION RULES (schema boundary)
// ========================================

// publicationYearRule enforces 1800 < year < current calendar year
func publicationYearRule(value interface{}) error {
	year, ok := value.(int)
	if !ok {
		return validation.NewError("validation_year_type", "publication_year must be an integer")
	}
	if year <= 1800 || year >= time.Now().Year() {
		return validation.NewError("validation_year_range",
			fmt.Sprintf("publication_year must be between 1801 and %d", time.Now().Year()-1))
	}
	return nil
}

// parsableAuthorsRule rejects author text the name parser cannot split
func parsableAuthorsRule(value interface{}) error {
	text, _ := value.(string)
	if _, err := book.ParseAuthors(text); err != nil {
		return validation.NewError("validation_author_unparsable", err.Error())
	}
	return nil
}

// allowedGenresRule checks every parsed genre against the closed vocabulary
func allowedGenresRule(value interface{}) error {
	text, _ := value.(string)
	for _, name := range book.ParseGenres(text) {
		if !genre.IsAllowed(name) {
			return validation.NewError("validation_unknown_genre",
				fmt.Sprintf("%s is not an allowed genre", name))
		}
	}
	return nil
}

// ========================================
// READ DTOs
// ========================================

// ListBooksQuery - GET /books query parameters
type ListBooksQuery struct {
	Title     string `form:"title"`
	Author    string `form:"author"`
	Genre     string `form:"genre"`
	YearFrom  *int   `form:"year_from"`
	YearTo    *int   `form:"year_to"`
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}

// Normalize applies defaults and lower-cases sort_order before validation
func (q *ListBooksQuery) Normalize() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = 10
	}
	if q.SortBy == "" {
		q.SortBy = "title"
	}
	if q.SortOrder == "" {
		q.SortOrder = "asc"
	}
	q.SortOrder = strings.ToLower(q.SortOrder)
}

func (q ListBooksQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Page, validation.Min(1).Error("page must be >= 1")),
		validation.Field(&q.PageSize,
			validation.Min(1).Error("page_size must be >= 1"),
			validation.Max(100).Error("page_size must be <= 100"),
		),
		validation.Field(&q.SortBy,
			validation.In("title", "publication_year").
				Error("sort_by must be one of: title, publication_year"),
		),
		validation.Field(&q.SortOrder,
			validation.In("asc", "desc").Error("sort_order must be asc or desc"),
		),
	)
}

// ToFilter converts the validated query into the storage-level filter
func (q ListBooksQuery) ToFilter() ListFilter {
	return ListFilter{
		Title:     q.Title,
		Author:    q.Author,
		Genre:     q.Genre,
		YearFrom:  q.YearFrom,
		YearTo:    q.YearTo,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
		Limit:     q.PageSize,
		Offset:    (q.Page - 1) * q.PageSize,
	}
}
