package book

import "errors"

var (
	ErrBookNotFound = errors.New("book not found")

	// Parser errors - bad input shape, mapped to 400
	ErrEmptyText         = errors.New("text must be a non-empty string")
	ErrCannotParseAuthor = errors.New("cannot parse author name")

	// Bulk import errors - rejected before any row is processed
	ErrUnsupportedFormat = errors.New("unsupported import format, expected .csv or .json")
	ErrImportTooLarge    = errors.New("import exceeds the maximum row count")
	ErrMalformedImport   = errors.New("malformed import file")
)
