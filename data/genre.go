package data

import (
	"fmt"
	"strings"
)

// BookGenre is the closed set of catalog genres. The zero value means
// "no genre recorded" and is stored as NULL.
type BookGenre string

const (
	GenreFiction           BookGenre = "FICTION"
	GenreNonFiction        BookGenre = "NON_FICTION"
	GenreClassic           BookGenre = "CLASSIC"
	GenreMystery           BookGenre = "MYSTERY"
	GenreHistoricalFiction BookGenre = "HISTORICAL_FICTION"
	GenreFantasy           BookGenre = "FANTASY"
	GenreRomance           BookGenre = "ROMANCE"
	GenreScienceFiction    BookGenre = "SCIENCE_FICTION"
	GenreChildren          BookGenre = "CHILDREN"
	GenreEssay             BookGenre = "ESSAY"
	GenreAdventure         BookGenre = "ADVENTURE"
	GenreOther             BookGenre = "OTHER"
)

var ErrUnknownGenre = fmt.Errorf("unknown book genre")

// Genres returns all genres in declaration order, for enum validation
// and for the UI filter select.
func Genres() []BookGenre {
	return []BookGenre{
		GenreFiction,
		GenreNonFiction,
		GenreClassic,
		GenreMystery,
		GenreHistoricalFiction,
		GenreFantasy,
		GenreRomance,
		GenreScienceFiction,
		GenreChildren,
		GenreEssay,
		GenreAdventure,
		GenreOther,
	}
}

// ParseBookGenre maps a wire or query-string value to a BookGenre.
// Lookup is case-insensitive; the empty string parses to the zero genre.
func ParseBookGenre(s string) (BookGenre, error) {
	if s == "" {
		return "", nil
	}
	candidate := BookGenre(strings.ToUpper(strings.TrimSpace(s)))
	for _, g := range Genres() {
		if g == candidate {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGenre, s)
}

// DisplayName returns the human-readable label for the genre. The catalog
// currently labels genres with their wire spelling, so this is the identity;
// the indirection keeps localized labels possible without touching storage.
func (g BookGenre) DisplayName() string {
	return string(g)
}
