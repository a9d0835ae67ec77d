package catalog

import (
	"sync"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// Guarded serializes access to a Catalog with a single RWMutex covering the
// book list and both indexes.
type Guarded struct {
	mu      sync.RWMutex
	catalog *Catalog
}

// NewGuarded wraps c. A nil catalog is replaced with an empty one.
func NewGuarded(c *Catalog) *Guarded {
	if c == nil {
		c = New()
	}
	return &Guarded{catalog: c}
}

func (g *Guarded) AddBook(book entities.Book) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.catalog.AddBook(book)
}

func (g *Guarded) Books() []entities.Book {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.catalog.Books()
}

func (g *Guarded) Authors() AuthorSet {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.catalog.Authors()
}

func (g *Guarded) BooksByGenre() map[string][]entities.Book {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.catalog.BooksByGenre()
}

func (g *Guarded) Genres() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.catalog.Genres()
}

func (g *Guarded) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.catalog.Len()
}

// Snapshot copies all three containers under one read lock, so the result is
// consistent even while writers are active.
func (g *Guarded) Snapshot() Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.catalog.Snapshot()
}
