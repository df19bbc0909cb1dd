package data

import (
	"time"

	"github.com/jvillodre/librarium/internal/validator"
)

// The Book struct contains the data fields for a catalog record.
// Optional attributes (EditorialID, Title, Genre, Pages, PublicationYear)
// use their zero value to mean "not recorded".
type Book struct {
	ID              int64     `json:"id"`
	EditorialID     int64     `json:"editorial_id,omitempty"`
	Author          string    `json:"author"`
	Title           string    `json:"title,omitempty"`
	Genre           BookGenre `json:"genre,omitempty"`
	Pages           int32     `json:"pages,omitempty"`
	PublicationYear int32     `json:"publication_year,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Active          bool      `json:"active"`
}

func ValidateBook(v *validator.Validator, book *Book) {
	v.Check(book.Author != "", "author", "must be provided")
	v.Check(len(book.Author) <= 250, "author", "must not be more than 250 bytes long")
	v.Check(len(book.Title) <= 250, "title", "must not be more than 250 bytes long")
	v.Check(book.Pages >= 0, "pages", "must not be negative")
	if book.PublicationYear != 0 {
		v.Check(book.PublicationYear <= int32(time.Now().Year()), "publicationYear", "must not be in the future")
	}
}
