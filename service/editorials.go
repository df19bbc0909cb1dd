package service

import (
	"errors"

	"github.com/jvillodre/librarium/data"
	"github.com/jvillodre/librarium/repository"
)

type editorials interface {
	GetEditorial(editorialID int64) (*data.Editorial, error)
	ListEditorials() ([]data.Editorial, error)
}

// GetEditorial service retrieves a publishing house by id.
func (s *service) GetEditorial(editorialID int64) (*data.Editorial, error) {
	if editorialID == 0 {
		return nil, invalidArgument("Editorial ID cannot be null")
	}
	editorial, err := s.repo.GetEditorial(editorialID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return editorial, nil
}

// ListEditorials service retrieves every editorial for the UI form selects.
func (s *service) ListEditorials() ([]data.Editorial, error) {
	return s.repo.GetAllEditorials()
}
