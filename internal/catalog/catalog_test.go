package catalog

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/entities"
)

var (
	dune       = entities.NewBook("Dune", "Frank Herbert", "Sci-Fi")
	foundation = entities.NewBook("Foundation", "Isaac Asimov", "Sci-Fi")
)

func TestCatalog_New(t *testing.T) {
	c := New()

	assert.Empty(t, c.Books())
	assert.Zero(t, c.Authors().Len())
	assert.Empty(t, c.BooksByGenre())
	assert.Empty(t, c.Genres())
	assert.Zero(t, c.Len())
}

func TestCatalog_AddBook(t *testing.T) {
	t.Run("single book populates all three containers", func(t *testing.T) {
		c := New()
		c.AddBook(dune)

		assert.Equal(t, []entities.Book{dune}, c.Books())
		assert.Equal(t, []string{"Frank Herbert"}, c.Authors().Names())
		assert.Equal(t, []entities.Book{dune}, c.BooksByGenre()["Sci-Fi"])
	})

	t.Run("same genre keeps insertion order", func(t *testing.T) {
		c := New()
		c.AddBook(dune)
		c.AddBook(foundation)

		require.Len(t, c.BooksByGenre()["Sci-Fi"], 2)
		assert.Equal(t, []entities.Book{dune, foundation}, c.BooksByGenre()["Sci-Fi"])
		assert.Equal(t, 2, c.Authors().Len())
	})

	t.Run("same author in two genres", func(t *testing.T) {
		c := New()
		c.AddBook(entities.NewBook("Dune", "Frank Herbert", "Sci-Fi"))
		c.AddBook(entities.NewBook("Soul Catcher", "Frank Herbert", "Thriller"))

		assert.Equal(t, 1, c.Authors().Len())
		grouped := c.BooksByGenre()
		assert.Len(t, grouped, 2)
		assert.Len(t, grouped["Sci-Fi"], 1)
		assert.Len(t, grouped["Thriller"], 1)
		assert.Equal(t, []string{"Sci-Fi", "Thriller"}, c.Genres())
	})

	t.Run("duplicates are stored separately", func(t *testing.T) {
		c := New()
		c.AddBook(dune)
		c.AddBook(dune)

		assert.Equal(t, 2, c.Len())
		assert.Len(t, c.BooksByGenre()["Sci-Fi"], 2)
		assert.Equal(t, 1, c.Authors().Len())
	})

	t.Run("empty fields are accepted", func(t *testing.T) {
		c := New()
		c.AddBook(entities.NewBook("", "", ""))

		assert.Equal(t, 1, c.Len())
		assert.True(t, c.Authors().Contains(""))
		assert.Len(t, c.BooksByGenre()[""], 1)
	})
}

func TestCatalog_ReadsAreIdempotent(t *testing.T) {
	c := New()
	c.AddBook(dune)
	c.AddBook(foundation)

	assert.Equal(t, c.Books(), c.Books())
	assert.Equal(t, c.Authors(), c.Authors())
	assert.Equal(t, c.BooksByGenre(), c.BooksByGenre())
	assert.Equal(t, c.Genres(), c.Genres())
}

func TestCatalog_ReadsDoNotExposeInternals(t *testing.T) {
	c := New()
	c.AddBook(dune)

	books := c.Books()
	books[0] = foundation
	grouped := c.BooksByGenre()
	grouped["Sci-Fi"][0] = foundation
	delete(grouped, "Sci-Fi")
	authors := c.Authors()
	delete(authors, entities.Author{Name: "Frank Herbert"})

	assert.Equal(t, []entities.Book{dune}, c.Books())
	assert.Equal(t, []entities.Book{dune}, c.BooksByGenre()["Sci-Fi"])
	assert.True(t, c.Authors().Contains("Frank Herbert"))
}

func TestCatalog_Invariants(t *testing.T) {
	titles := []string{"A", "B", "C", "D"}
	authors := []string{"Ann", "Bob", "Cid"}
	genres := []string{"Sci-Fi", "Drama", "Poetry", "History"}

	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		c := New()
		n := rng.Intn(40)
		added := make([]entities.Book, 0, n)
		for i := 0; i < n; i++ {
			book := entities.NewBook(
				titles[rng.Intn(len(titles))],
				authors[rng.Intn(len(authors))],
				genres[rng.Intn(len(genres))],
			)
			c.AddBook(book)
			added = append(added, book)
		}

		// book count equals number of calls
		require.Equal(t, n, len(c.Books()))

		// genre buckets sum to the book count
		total := 0
		for _, bucket := range c.BooksByGenre() {
			total += len(bucket)
		}
		require.Equal(t, n, total)

		// each bucket is the in-order subsequence of its genre
		for genre, bucket := range c.BooksByGenre() {
			var expected []entities.Book
			for _, b := range added {
				if b.Genre == genre {
					expected = append(expected, b)
				}
			}
			require.Equal(t, expected, bucket, "genre %s", genre)
		}

		// authors are exactly the distinct names
		distinct := make(map[string]struct{})
		for _, b := range added {
			distinct[b.Author] = struct{}{}
		}
		require.Equal(t, len(distinct), c.Authors().Len())
		for name := range distinct {
			require.True(t, c.Authors().Contains(name))
		}
	}
}

func TestAuthorSet_Names(t *testing.T) {
	set := AuthorSet{
		{Name: "Isaac Asimov"}:  {},
		{Name: "Frank Herbert"}: {},
	}

	assert.Equal(t, []string{"Frank Herbert", "Isaac Asimov"}, set.Names())
	assert.False(t, set.Contains("Ursula K. Le Guin"))
}
