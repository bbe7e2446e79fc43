package model

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() CreateBookRequest {
	return CreateBookRequest{
		Title:           "Pride and Prejudice",
		PublicationYear: 1813,
		Author:          "Jane Austen",
		Genre:           "Fiction, Romance",
	}
}

func TestCreateBookRequest_Valid(t *testing.T) {
	assert.NoError(t, validCreateRequest().Validate())
}

func TestCreateBookRequest_YearBounds(t *testing.T) {
	currentYear := time.Now().Year()

	cases := []struct {
		year  int
		valid bool
	}{
		{1799, false},
		{1800, false},
		{1801, true},
		{currentYear - 1, true},
		{currentYear, false},
		{currentYear + 10, false},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("year_%d", tc.year), func(t *testing.T) {
			req := validCreateRequest()
			req.PublicationYear = tc.year
			err := req.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestCreateBookRequest_UnparsableAuthor(t *testing.T) {
	req := validCreateRequest()
	req.Author = "Homer"
	assert.Error(t, req.Validate())
}

func TestCreateBookRequest_UnknownGenre(t *testing.T) {
	req := validCreateRequest()
	req.Genre = "Fiction, Cooking"
	assert.Error(t, req.Validate())
}

func TestCreateBookRequest_GenreIsCaseSensitive(t *testing.T) {
	req := validCreateRequest()
	req.Genre = "fiction"
	assert.Error(t, req.Validate())
}

func TestCreateBookRequest_MissingRequiredFields(t *testing.T) {
	assert.Error(t, CreateBookRequest{}.Validate())
}

func TestUpdateBookRequest_EmptyPatchIsValid(t *testing.T) {
	req := UpdateBookRequest{}
	assert.NoError(t, req.Validate())
	assert.True(t, req.Empty())
}

func TestUpdateBookRequest_PresentFieldsAreValidated(t *testing.T) {
	badYear := 1700
	assert.Error(t, UpdateBookRequest{PublicationYear: &badYear}.Validate())

	badAuthor := "Homer"
	assert.Error(t, UpdateBookRequest{Author: &badAuthor}.Validate())

	badGenre := "Cooking"
	assert.Error(t, UpdateBookRequest{Genre: &badGenre}.Validate())

	goodTitle := "Emma"
	req := UpdateBookRequest{Title: &goodTitle}
	assert.NoError(t, req.Validate())
	assert.False(t, req.Empty())
}

func TestListBooksQuery_NormalizeDefaults(t *testing.T) {
	q := ListBooksQuery{}
	q.Normalize()

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.PageSize)
	assert.Equal(t, "title", q.SortBy)
	assert.Equal(t, "asc", q.SortOrder)
}

func TestListBooksQuery_NormalizeLowercasesSortOrder(t *testing.T) {
	q := ListBooksQuery{SortOrder: "DESC"}
	q.Normalize()
	assert.Equal(t, "desc", q.SortOrder)
}

func TestListBooksQuery_Validate(t *testing.T) {
	q := ListBooksQuery{Page: 1, PageSize: 10, SortBy: "publication_year", SortOrder: "desc"}
	assert.NoError(t, q.Validate())

	q.SortBy = "id"
	require.Error(t, q.Validate())

	q.SortBy = "title"
	q.SortOrder = "sideways"
	require.Error(t, q.Validate())

	q.SortOrder = "asc"
	q.PageSize = 101
	require.Error(t, q.Validate())

	q.PageSize = 10
	q.Page = -1
	require.Error(t, q.Validate())
}

func TestListBooksQuery_ToFilterOffset(t *testing.T) {
	q := ListBooksQuery{Page: 3, PageSize: 20, SortBy: "title", SortOrder: "asc"}
	f := q.ToFilter()

	assert.Equal(t, 20, f.Limit)
	assert.Equal(t, 40, f.Offset)
}
