package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBookGenre(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    BookGenre
		wantErr bool
	}{
		{"exact match", "FICTION", GenreFiction, false},
		{"lowercase", "science_fiction", GenreScienceFiction, false},
		{"mixed case with padding", "  Historical_Fiction ", GenreHistoricalFiction, false},
		{"empty means unspecified", "", "", false},
		{"unknown genre", "POETRY", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBookGenre(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownGenre)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenresAreStable(t *testing.T) {
	genres := Genres()
	assert.Len(t, genres, 12)
	assert.Equal(t, GenreFiction, genres[0])
	assert.Equal(t, GenreOther, genres[len(genres)-1])

	// Every listed genre parses back to itself.
	for _, g := range genres {
		parsed, err := ParseBookGenre(string(g))
		require.NoError(t, err)
		assert.Equal(t, g, parsed)
	}
}
