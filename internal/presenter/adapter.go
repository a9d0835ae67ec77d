// Package presenter turns catalog contents into display rows and text.
//
// BookAdapter is the list binding: it reads the current books from its source
// on every call and must be told when the source changes so that listeners
// (page renderers, counters) can refresh.
package presenter

import (
	"errors"
	"fmt"
	"sync"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// Field labels prefixed to each row line.
const (
	TitleLabel  = "Title: "
	AuthorLabel = "Author: "
	GenreLabel  = "Genre: "
)

var ErrPositionOutOfRange = errors.New("position out of range")

// BookSource is the read side of the catalog the adapter binds to.
type BookSource interface {
	Books() []entities.Book
	Len() int
}

// Row is one rendered list item.
type Row struct {
	Position int
	Title    string
	Author   string
	Genre    string
}

func newRow(position int, book entities.Book) Row {
	return Row{
		Position: position,
		Title:    TitleLabel + book.Title,
		Author:   AuthorLabel + book.Author,
		Genre:    GenreLabel + book.Genre,
	}
}

// Listener is invoked synchronously after each NotifyDataSetChanged.
type Listener func(revision uint64)

type BookAdapter struct {
	source BookSource

	mu        sync.Mutex
	revision  uint64
	listeners []Listener
}

func NewBookAdapter(source BookSource) *BookAdapter {
	return &BookAdapter{source: source}
}

func (a *BookAdapter) ItemCount() int {
	return a.source.Len()
}

// Row renders the book at position.
func (a *BookAdapter) Row(position int) (Row, error) {
	books := a.source.Books()
	if position < 0 || position >= len(books) {
		return Row{}, fmt.Errorf("%w: %d (have %d)", ErrPositionOutOfRange, position, len(books))
	}
	return newRow(position, books[position]), nil
}

// Rows renders every book in list order.
func (a *BookAdapter) Rows() []Row {
	books := a.source.Books()
	rows := make([]Row, len(books))
	for i, book := range books {
		rows[i] = newRow(i, book)
	}
	return rows
}

// OnChange registers a listener for data set changes.
func (a *BookAdapter) OnChange(listener Listener) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listeners = append(a.listeners, listener)
}

// NotifyDataSetChanged bumps the revision and calls every listener in
// registration order before returning.
func (a *BookAdapter) NotifyDataSetChanged() {
	a.mu.Lock()
	a.revision++
	revision := a.revision
	listeners := make([]Listener, len(a.listeners))
	copy(listeners, a.listeners)
	a.mu.Unlock()

	for _, listener := range listeners {
		listener(revision)
	}
}

// Revision counts how many times the adapter has been notified.
func (a *BookAdapter) Revision() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.revision
}
