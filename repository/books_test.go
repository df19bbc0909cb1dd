package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortColumnWhitelist(t *testing.T) {
	tests := []struct {
		field  string
		column string
	}{
		{"id", "id"},
		{"title", "title"},
		{"author", "author"},
		{"publicationYear", "publication_year"},
		{"pages", "pages"},
		{"createdAt", "created_at"},
		{"updatedAt", "updated_at"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			column, err := sortColumn(tt.field)
			require.NoError(t, err)
			assert.Equal(t, tt.column, column)
		})
	}
}

func TestSortColumnRejectsUnknownFields(t *testing.T) {
	for _, field := range []string{"genre", "active", "id; DROP TABLE book", ""} {
		t.Run(field, func(t *testing.T) {
			_, err := sortColumn(field)
			assert.ErrorIs(t, err, ErrInvalidSortField)
		})
	}
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "dune", "dune"},
		{"percent escaped", "100% true", `100\% true`},
		{"underscore escaped", "foo_bar", `foo\_bar`},
		{"backslash escaped", `c:\books`, `c:\\books`},
		{"mixed wildcards", `%_\`, `\%\_\\`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeLike(tt.input))
		})
	}
}
