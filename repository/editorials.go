package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jvillodre/librarium/data"
)

type editorials interface {
	GetEditorial(id int64) (*data.Editorial, error)
	GetAllEditorials() ([]data.Editorial, error)
	EditorialExists(id int64) (bool, error)
}

// GetEditorial retrieves an editorial record by its ID.
func (r *repository) GetEditorial(id int64) (*data.Editorial, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, name, address, maximum_books, COALESCE(email, ''), created_at, updated_at
		FROM editorial
		WHERE id = $1`
	var editorial data.Editorial
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&editorial.ID,
		&editorial.Name,
		&editorial.Address,
		&editorial.MaximumBooks,
		&editorial.Email,
		&editorial.CreatedAt,
		&editorial.UpdatedAt,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &editorial, nil
}

// GetAllEditorials retrieves every editorial, ordered by name. The set is
// small and bounded; it backs the editorial select on the UI forms.
func (r *repository) GetAllEditorials() ([]data.Editorial, error) {
	query := `
		SELECT id, name, address, maximum_books, COALESCE(email, ''), created_at, updated_at
		FROM editorial
		ORDER BY name ASC, id ASC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	editorials := []data.Editorial{}
	for rows.Next() {
		var editorial data.Editorial
		err := rows.Scan(
			&editorial.ID,
			&editorial.Name,
			&editorial.Address,
			&editorial.MaximumBooks,
			&editorial.Email,
			&editorial.CreatedAt,
			&editorial.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		editorials = append(editorials, editorial)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return editorials, nil
}

// EditorialExists reports whether an editorial with the given id exists.
func (r *repository) EditorialExists(id int64) (bool, error) {
	if id < 1 {
		return false, nil
	}
	query := `SELECT EXISTS (SELECT 1 FROM editorial WHERE id = $1)`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	var exists bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	return exists, err
}
