package service

import (
	"errors"
	"fmt"

	"github.com/jvillodre/librarium/data"
	"github.com/jvillodre/librarium/repository"
)

type books interface {
	SaveBook(book *data.Book) (*data.Book, error)
	GetActiveBook(bookID int64) (*data.Book, error)
	UpdateBook(book *data.Book) (*data.Book, error)
	DeactivateBook(bookID int64) error
	ListBooks(filter data.BookFilter, pagination data.PaginationQuery) (data.PaginatedResult[data.Book], error)
}

// SaveBook service creates a new catalog record. The record starts active and
// both timestamps are stamped with the same instant, so a fresh book always
// satisfies createdAt == updatedAt.
func (s *service) SaveBook(book *data.Book) (*data.Book, error) {
	if book.EditorialID != 0 {
		exists, err := s.repo.EditorialExists(book.EditorialID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, invalidArgument(fmt.Sprintf("editorial %d does not exist", book.EditorialID))
		}
	}
	now := s.now()
	book.Active = true
	book.CreatedAt = now
	book.UpdatedAt = now
	err := s.repo.SaveBook(book)
	if err != nil {
		return nil, err
	}
	return book, nil
}

// GetActiveBook service retrieves a book that has not been soft-deleted.
func (s *service) GetActiveBook(bookID int64) (*data.Book, error) {
	if bookID == 0 {
		return nil, invalidArgument("Book ID cannot be null")
	}
	book, err := s.repo.GetActiveBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return book, nil
}

// UpdateBook service replaces the mutable fields of an existing record, active
// or not. The stored createdAt and active flag are preserved; whatever the
// caller supplied for them is ignored. updatedAt advances to now.
func (s *service) UpdateBook(book *data.Book) (*data.Book, error) {
	if book.ID == 0 {
		return nil, invalidArgument("Book ID cannot be null")
	}
	if book.EditorialID != 0 {
		exists, err := s.repo.EditorialExists(book.EditorialID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, invalidArgument(fmt.Sprintf("editorial %d does not exist", book.EditorialID))
		}
	}
	existing, err := s.repo.GetBook(book.ID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	book.CreatedAt = existing.CreatedAt
	book.Active = existing.Active
	book.UpdatedAt = s.now()
	err = s.repo.SaveBook(book)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return book, nil
}

// DeactivateBook service soft-deletes a record: the row stays in place with
// active=false and a fresh updatedAt. The record may already be inactive;
// deactivation is idempotent.
func (s *service) DeactivateBook(bookID int64) error {
	if bookID == 0 {
		return invalidArgument("Book ID cannot be null")
	}
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	book.Active = false
	book.UpdatedAt = s.now()
	return s.repo.SaveBook(book)
}

// ListBooks service retrieves a paginated window of books matching the filter.
// Pure pass-through to the repository; no side effects.
func (s *service) ListBooks(filter data.BookFilter, pagination data.PaginationQuery) (data.PaginatedResult[data.Book], error) {
	result, err := s.repo.GetAllBooks(filter, pagination)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidSortField):
			return data.PaginatedResult[data.Book]{}, invalidArgument(err.Error())
		default:
			return data.PaginatedResult[data.Book]{}, err
		}
	}
	return result, nil
}
