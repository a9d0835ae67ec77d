package catalog

import (
	"sort"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// Reader provides read-only access to the catalog.
type Reader interface {
	Books() []entities.Book
	Authors() AuthorSet
	BooksByGenre() map[string][]entities.Book
	Genres() []string
	Len() int
}

// Store is a Reader that also accepts new books.
type Store interface {
	Reader
	AddBook(book entities.Book)
}

// AuthorSet is the deduplicated set of authors, keyed by value.
type AuthorSet map[entities.Author]struct{}

// Contains reports whether an author with the given name is in the set.
func (s AuthorSet) Contains(name string) bool {
	_, ok := s[entities.Author{Name: name}]
	return ok
}

func (s AuthorSet) Len() int {
	return len(s)
}

// Names returns the author names sorted alphabetically.
func (s AuthorSet) Names() []string {
	names := make([]string, 0, len(s))
	for author := range s {
		names = append(names, author.Name)
	}
	sort.Strings(names)
	return names
}

type Catalog struct {
	books        []entities.Book
	authors      AuthorSet
	booksByGenre map[string][]entities.Book
	// genres records bucket creation order so renderers can iterate
	// deterministically; the map alone has no order.
	genres []string
}

func New() *Catalog {
	return &Catalog{
		books:        []entities.Book{},
		authors:      make(AuthorSet),
		booksByGenre: make(map[string][]entities.Book),
	}
}

// AddBook appends the book and updates both indexes. It never fails and does
// not inspect field contents; validation belongs to the caller.
func (c *Catalog) AddBook(book entities.Book) {
	c.books = append(c.books, book)
	c.authors[entities.Author{Name: book.Author}] = struct{}{}

	if _, ok := c.booksByGenre[book.Genre]; !ok {
		c.booksByGenre[book.Genre] = []entities.Book{}
		c.genres = append(c.genres, book.Genre)
	}
	c.booksByGenre[book.Genre] = append(c.booksByGenre[book.Genre], book)
}

// Books returns the books in insertion order.
func (c *Catalog) Books() []entities.Book {
	books := make([]entities.Book, len(c.books))
	copy(books, c.books)
	return books
}

func (c *Catalog) Authors() AuthorSet {
	authors := make(AuthorSet, len(c.authors))
	for author := range c.authors {
		authors[author] = struct{}{}
	}
	return authors
}

// BooksByGenre returns each genre's books in insertion order. A genre is
// present only once it has received at least one book.
func (c *Catalog) BooksByGenre() map[string][]entities.Book {
	grouped := make(map[string][]entities.Book, len(c.booksByGenre))
	for genre, books := range c.booksByGenre {
		bucket := make([]entities.Book, len(books))
		copy(bucket, books)
		grouped[genre] = bucket
	}
	return grouped
}

// Genres returns genre names in the order their first book arrived.
func (c *Catalog) Genres() []string {
	genres := make([]string, len(c.genres))
	copy(genres, c.genres)
	return genres
}

func (c *Catalog) Len() int {
	return len(c.books)
}

// Snapshot is a point-in-time copy of a catalog.
type Snapshot struct {
	Books        []entities.Book
	Authors      AuthorSet
	BooksByGenre map[string][]entities.Book
	Genres       []string
}

// Snapshot copies all containers at once.
func (c *Catalog) Snapshot() Snapshot {
	return Snapshot{
		Books:        c.Books(),
		Authors:      c.Authors(),
		BooksByGenre: c.BooksByGenre(),
		Genres:       c.Genres(),
	}
}
