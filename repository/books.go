package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jvillodre/librarium/data"
)

type books interface {
	SaveBook(book *data.Book) error
	GetBook(id int64) (*data.Book, error)
	GetActiveBook(id int64) (*data.Book, error)
	GetAllBooks(filter data.BookFilter, query data.PaginationQuery) (data.PaginatedResult[data.Book], error)
	BookExists(id int64) (bool, error)
}

// sortColumns whitelists the external sort field names and maps them to the
// columns they order by. Anything else is rejected before it reaches SQL.
var sortColumns = map[string]string{
	"id":              "id",
	"title":           "title",
	"author":          "author",
	"publicationYear": "publication_year",
	"pages":           "pages",
	"createdAt":       "created_at",
	"updatedAt":       "updated_at",
}

// sortColumn resolves a whitelisted sort field or fails with ErrInvalidSortField.
func sortColumn(field string) (string, error) {
	column, ok := sortColumns[field]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidSortField, field)
	}
	return column, nil
}

// escapeLike makes LIKE treat every character of the user's input literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// SaveBook upserts a book record by id. An unset id allocates a new one and
// fills it in on the passed book; a set id fully replaces the existing row.
func (r *repository) SaveBook(book *data.Book) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if book.ID == 0 {
		query := `
			INSERT INTO book (editorial_id, author, title, genre, pages, publication_year, created_at, updated_at, active)
			VALUES (NULLIF($1, 0), $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, 0), NULLIF($6, 0), $7, $8, $9)
			RETURNING id`
		args := []interface{}{book.EditorialID, book.Author, book.Title, string(book.Genre), book.Pages, book.PublicationYear, book.CreatedAt, book.UpdatedAt, book.Active}
		return r.db.QueryRowContext(ctx, query, args...).Scan(&book.ID)
	}
	query := `
		UPDATE book
		SET editorial_id = NULLIF($1, 0), author = $2, title = NULLIF($3, ''), genre = NULLIF($4, ''),
		pages = NULLIF($5, 0), publication_year = NULLIF($6, 0), created_at = $7, updated_at = $8, active = $9
		WHERE id = $10`
	args := []interface{}{book.EditorialID, book.Author, book.Title, string(book.Genre), book.Pages, book.PublicationYear, book.CreatedAt, book.UpdatedAt, book.Active, book.ID}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// GetBook retrieves a book record by its ID regardless of the active flag.
func (r *repository) GetBook(id int64) (*data.Book, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, COALESCE(editorial_id, 0), author, COALESCE(title, ''), COALESCE(genre, ''), COALESCE(pages, 0), COALESCE(publication_year, 0), created_at, updated_at, active
		FROM book
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return r.scanBook(r.db.QueryRowContext(ctx, query, id))
}

// GetActiveBook retrieves a book record iff it exists and has not been soft-deleted.
func (r *repository) GetActiveBook(id int64) (*data.Book, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, COALESCE(editorial_id, 0), author, COALESCE(title, ''), COALESCE(genre, ''), COALESCE(pages, 0), COALESCE(publication_year, 0), created_at, updated_at, active
		FROM book
		WHERE id = $1 AND active = true`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return r.scanBook(r.db.QueryRowContext(ctx, query, id))
}

// GetAllBooks retrieves a paginated window of book records matching the filter,
// together with the total matching count. Every predicate is a fixed
// parameterized clause disabled by its sentinel, so user input never reaches
// the SQL text; the sort column comes from the whitelist and ties always break
// by ascending id to keep the order total across pages.
func (r *repository) GetAllBooks(filter data.BookFilter, pagination data.PaginationQuery) (data.PaginatedResult[data.Book], error) {
	empty := data.PaginatedResult[data.Book]{}
	column, err := sortColumn(pagination.SortBy)
	if err != nil {
		return empty, err
	}
	direction := "ASC"
	if pagination.SortDirection == data.SortDescending {
		direction = "DESC"
	}
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), id, COALESCE(editorial_id, 0), author, COALESCE(title, ''), COALESCE(genre, ''), COALESCE(pages, 0), COALESCE(publication_year, 0), created_at, updated_at, active
		FROM book
		WHERE ($1::boolean IS NULL OR active = $1)
		AND ($2 = '' OR lower(title) LIKE '%%' || lower($2) || '%%' ESCAPE '\')
		AND ($3 = '' OR lower(author) LIKE '%%' || lower($3) || '%%' ESCAPE '\')
		AND ($4 = '' OR genre = $4)
		ORDER BY %s %s, id ASC
		LIMIT $5 OFFSET $6`,
		column, direction,
	)
	args := []interface{}{
		filter.Active,
		escapeLike(filter.Title),
		escapeLike(filter.Author),
		string(filter.Genre),
		pagination.Limit(),
		pagination.Offset(),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return empty, err
	}
	defer rows.Close()
	var totalRecords int64
	content := []data.Book{}
	for rows.Next() {
		var book data.Book
		var genre string
		err := rows.Scan(
			&totalRecords,
			&book.ID,
			&book.EditorialID,
			&book.Author,
			&book.Title,
			&genre,
			&book.Pages,
			&book.PublicationYear,
			&book.CreatedAt,
			&book.UpdatedAt,
			&book.Active,
		)
		if err != nil {
			return empty, err
		}
		book.Genre = data.BookGenre(genre)
		content = append(content, book)
	}
	if err = rows.Err(); err != nil {
		return empty, err
	}
	// A window past the last matching row returns zero rows, so the
	// count(*) OVER() total was never scanned. Re-count with the same
	// predicates so an out-of-range page still reports the true total.
	if len(content) == 0 && pagination.Offset() > 0 {
		countQuery := `
			SELECT count(*)
			FROM book
			WHERE ($1::boolean IS NULL OR active = $1)
			AND ($2 = '' OR lower(title) LIKE '%' || lower($2) || '%' ESCAPE '\')
			AND ($3 = '' OR lower(author) LIKE '%' || lower($3) || '%' ESCAPE '\')
			AND ($4 = '' OR genre = $4)`
		err = r.db.QueryRowContext(ctx, countQuery, args[:4]...).Scan(&totalRecords)
		if err != nil {
			return empty, err
		}
	}
	return data.PaginatedResult[data.Book]{
		Content:       content,
		TotalElements: totalRecords,
		Page:          pagination.Page,
		PageSize:      pagination.PageSize,
	}, nil
}

// BookExists reports whether a book record with the given id exists, active or not.
func (r *repository) BookExists(id int64) (bool, error) {
	if id < 1 {
		return false, nil
	}
	query := `SELECT EXISTS (SELECT 1 FROM book WHERE id = $1)`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	var exists bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	return exists, err
}

func (r *repository) scanBook(row *sql.Row) (*data.Book, error) {
	var book data.Book
	var genre string
	err := row.Scan(
		&book.ID,
		&book.EditorialID,
		&book.Author,
		&book.Title,
		&genre,
		&book.Pages,
		&book.PublicationYear,
		&book.CreatedAt,
		&book.UpdatedAt,
		&book.Active,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	book.Genre = data.BookGenre(genre)
	return &book, nil
}
