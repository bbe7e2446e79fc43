package book

import (
	"regexp"
	"strings"

	"book-catalog-api/internal/domains/author"
)

// Free-text author/genre lists split on a comma (with optional surrounding
// whitespace) or the literal lowercase word "and" between whitespace.
var listSeparator = regexp.MustCompile(`\s+and\s+|\s*,\s*`)

// ParseAuthors splits a free-text author string into name candidates.
//
// Per author token, whitespace parts map to the identity key as:
//
//	2 parts:  first_name=parts[0], surname=parts[1]
//	3+ parts: first_name=parts[0], surname=second-to-last, last_name=last
//	          (middle parts are discarded)
//
// Fewer than 2 parts is a validation failure.
func ParseAuthors(text string) ([]author.Name, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	tokens := listSeparator.Split(text, -1)

	names := make([]author.Name, 0, len(tokens))
	for _, token := range tokens {
		parts := strings.Fields(token)
		if len(parts) < 2 {
			return nil, ErrCannotParseAuthor
		}

		name := author.Name{FirstName: parts[0]}
		if len(parts) == 2 {
			name.Surname = parts[1]
		} else {
			name.Surname = parts[len(parts)-2]
			last := parts[len(parts)-1]
			name.LastName = &last
		}

		names = append(names, name)
	}

	return names, nil
}

// ParseGenres splits a free-text genre string into trimmed names.
// Empty tokens are dropped; vocabulary membership is checked at the
// schema boundary, not here.
func ParseGenres(text string) []string {
	tokens := listSeparator.Split(strings.TrimSpace(text), -1)

	genres := make([]string, 0, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		genres = append(genres, token)
	}

	return genres
}
