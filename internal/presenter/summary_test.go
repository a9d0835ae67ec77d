package presenter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/bookshelf/internal/catalog"
	"github.com/mrlokans/bookshelf/internal/entities"
)

func TestGenreSummary(t *testing.T) {
	t.Run("empty catalog renders header only", func(t *testing.T) {
		assert.Equal(t, "Authors and genres:\n", GenreSummary(nil, nil))
	})

	t.Run("genres in first-seen order", func(t *testing.T) {
		c := catalog.New()
		c.AddBook(entities.NewBook("Dune", "Frank Herbert", "Sci-Fi"))
		c.AddBook(entities.NewBook("Emma", "Jane Austen", "Romance"))
		c.AddBook(entities.NewBook("Foundation", "Isaac Asimov", "Sci-Fi"))

		expected := "Authors and genres:\n" +
			"Sci-Fi: [Dune (Frank Herbert), Foundation (Isaac Asimov)]\n" +
			"Romance: [Emma (Jane Austen)]\n"
		assert.Equal(t, expected, GenreSummary(c.Genres(), c.BooksByGenre()))
	})

	t.Run("unknown genres are skipped", func(t *testing.T) {
		lines := SummaryLines([]string{"Poetry"}, map[string][]entities.Book{})
		assert.Empty(t, lines)
	})
}
