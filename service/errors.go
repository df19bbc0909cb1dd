package service

import "errors"

var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

// invalidArgumentError carries a caller-facing message while still matching
// ErrInvalidArgument under errors.Is.
type invalidArgumentError struct {
	message string
}

func (e *invalidArgumentError) Error() string {
	return e.message
}

func (e *invalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func invalidArgument(message string) error {
	return &invalidArgumentError{message: message}
}
