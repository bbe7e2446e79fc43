package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"book-catalog-api/internal/domains/book"
	"book-catalog-api/internal/domains/book/model"
	"book-catalog-api/pkg/database"
)

// postgresRepository implements RepositoryInterface on pgxpool
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new book repository instance
func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

// bookProjection is the aggregated read view: display strings are derived
// from the association tables at read time, never stored. LEFT JOINs keep
// books with zero associations in the result (empty string, not null).
const bookProjection = `
    SELECT
        b.id AS book_id,
        b.title,
        b.description,
        b.publication_year,
        COALESCE(STRING_AGG(DISTINCT a.first_name || ' ' || a.surname, ', '), '') AS author,
        COALESCE(STRING_AGG(DISTINCT g.name, ', '), '') AS genre
    FROM books b
    LEFT JOIN book_authors ba ON b.id = ba.book_id
    LEFT JOIN authors a ON ba.author_id = a.id
    LEFT JOIN book_genres bg ON b.id = bg.book_id
    LEFT JOIN genres g ON bg.genre_id = g.id
`

const bookProjectionGroupBy = ` GROUP BY b.id, b.title, b.description, b.publication_year`

// Create inserts the book row plus association rows in one transaction
func (r *postgresRepository) Create(ctx context.Context, b model.NewBook, authorIDs []int64, genres []string) (int64, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (int64, error) {
		query := `
            INSERT INTO books (title, description, publication_year, created_by, updated_by)
            VALUES ($1, $2, $3, $4, $4)
            RETURNING id
        `

		var id int64
		err := tx.QueryRow(ctx, query, b.Title, b.Description, b.PublicationYear, b.ActorID).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("failed to insert book: %w", err)
		}

		if err := insertBookAuthors(ctx, tx, id, authorIDs); err != nil {
			return 0, err
		}

		if _, err := insertBookGenres(ctx, tx, id, genres); err != nil {
			return 0, err
		}

		return id, nil
	})
}

// Update applies the partial update and association replacement in one transaction
func (r *postgresRepository) Update(ctx context.Context, id int64, patch model.BookPatch, actorID int64, assoc AssociationUpdate) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		// COALESCE keeps the stored value for absent fields;
		// updated_by/updated_at refresh unconditionally
		query := `
            UPDATE books
            SET
                title = COALESCE($1, title),
                description = COALESCE($2, description),
                publication_year = COALESCE($3, publication_year),
                updated_by = $4,
                updated_at = CURRENT_TIMESTAMP
            WHERE id = $5
            RETURNING id
        `

		var updatedID int64
		err := tx.QueryRow(ctx, query, patch.Title, patch.Description, patch.PublicationYear, actorID, id).Scan(&updatedID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return book.ErrBookNotFound
			}
			return fmt.Errorf("failed to update book: %w", err)
		}

		// Full replace, no diffing: clear then rewrite the resolved set
		if assoc.ReplaceAuthors {
			if _, err := tx.Exec(ctx, `DELETE FROM book_authors WHERE book_id = $1`, id); err != nil {
				return fmt.Errorf("failed to clear book authors: %w", err)
			}
			if err := insertBookAuthors(ctx, tx, id, assoc.AuthorIDs); err != nil {
				return err
			}
		}

		if assoc.ReplaceGenres {
			if _, err := tx.Exec(ctx, `DELETE FROM book_genres WHERE book_id = $1`, id); err != nil {
				return fmt.Errorf("failed to clear book genres: %w", err)
			}
			if _, err := insertBookGenres(ctx, tx, id, assoc.Genres); err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete removes the book row; FK cascade drops association rows
func (r *postgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete book: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

// GetByID returns the aggregated projection for one book
func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.BookResponse, error) {
	query := bookProjection + ` WHERE b.id = $1` + bookProjectionGroupBy

	var resp model.BookResponse
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&resp.BookID,
		&resp.Title,
		&resp.Description,
		&resp.PublicationYear,
		&resp.Author,
		&resp.Genre,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	return &resp, nil
}

// List executes the filtered, sorted, paginated aggregation query
func (r *postgresRepository) List(ctx context.Context, f model.ListFilter) ([]model.BookResponse, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(bookProjection)
	queryBuilder.WriteString(" WHERE 1=1")

	args := []interface{}{}
	argPos := 1

	// Case-insensitive substring match on title
	if f.Title != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND b.title ILIKE $%d", argPos))
		args = append(args, "%"+f.Title+"%")
		argPos++
	}

	// Author filter matches the displayed "First Surname" pair of any
	// associated author; EXISTS keeps the outer aggregation intact
	if f.Author != "" {
		queryBuilder.WriteString(fmt.Sprintf(`
            AND EXISTS (
                SELECT 1 FROM book_authors fba
                JOIN authors fa ON fba.author_id = fa.id
                WHERE fba.book_id = b.id
                  AND (fa.first_name || ' ' || fa.surname) ILIKE $%d
            )`, argPos))
		args = append(args, "%"+f.Author+"%")
		argPos++
	}

	// Case-insensitive exact match against a single genre name
	if f.Genre != "" {
		queryBuilder.WriteString(fmt.Sprintf(`
            AND EXISTS (
                SELECT 1 FROM book_genres fbg
                JOIN genres fg ON fbg.genre_id = fg.id
                WHERE fbg.book_id = b.id
                  AND LOWER(fg.name) = LOWER($%d)
            )`, argPos))
		args = append(args, f.Genre)
		argPos++
	}

	// Inclusive year bounds, each side optional
	if f.YearFrom != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND b.publication_year >= $%d", argPos))
		args = append(args, *f.YearFrom)
		argPos++
	}
	if f.YearTo != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND b.publication_year <= $%d", argPos))
		args = append(args, *f.YearTo)
		argPos++
	}

	queryBuilder.WriteString(bookProjectionGroupBy)

	// Sort column goes through a switch, never straight into SQL
	sortColumn := "b.title"
	if f.SortBy == "publication_year" {
		sortColumn = "b.publication_year"
	}
	sortOrder := "ASC"
	if f.SortOrder == "desc" {
		sortOrder = "DESC"
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s %s", sortColumn, sortOrder))

	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1))
	args = append(args, f.Limit, f.Offset)

	rows, err := r.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	books := []model.BookResponse{}
	for rows.Next() {
		var resp model.BookResponse
		if err := rows.Scan(
			&resp.BookID,
			&resp.Title,
			&resp.Description,
			&resp.PublicationYear,
			&resp.Author,
			&resp.Genre,
		); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, resp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	return books, nil
}

// insertBookAuthors writes association rows via a single batched round trip.
// ON CONFLICT DO NOTHING keeps repeated author ids idempotent.
func insertBookAuthors(ctx context.Context, tx pgx.Tx, bookID int64, authorIDs []int64) error {
	if len(authorIDs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, authorID := range authorIDs {
		batch.Queue(
			`INSERT INTO book_authors (book_id, author_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			bookID, authorID,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for range authorIDs {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert book author: %w", err)
		}
	}

	return results.Close()
}

// insertBookGenres resolves names against the seeded vocabulary and writes
// association rows, skipping ones that already exist. Returns the names
// actually associated (a subset when duplicates existed).
func insertBookGenres(ctx context.Context, tx pgx.Tx, bookID int64, genres []string) ([]string, error) {
	if len(genres) == 0 {
		return nil, nil
	}

	query := `
        WITH selected_genres AS (
            SELECT id, name
            FROM genres
            WHERE name = ANY($1)
        ),
        inserted_relationships AS (
            INSERT INTO book_genres (book_id, genre_id)
            SELECT $2, id
            FROM selected_genres
            ON CONFLICT DO NOTHING
            RETURNING genre_id
        )
        SELECT sg.name
        FROM inserted_relationships ir
        JOIN selected_genres sg ON ir.genre_id = sg.id
    `

	rows, err := tx.Query(ctx, query, genres, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert book genres: %w", err)
	}
	defer rows.Close()

	var associated []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan associated genre: %w", err)
		}
		associated = append(associated, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating associated genres: %w", err)
	}

	return associated, nil
}
