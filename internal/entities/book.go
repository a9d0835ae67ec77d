package entities

import "fmt"

// Book is an immutable catalog entry. Two books are the same value when all
// three fields match; the catalog still keeps both copies.
type Book struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Genre  string `json:"genre"`
}

func NewBook(title, author, genre string) Book {
	return Book{Title: title, Author: author, Genre: genre}
}

func (b Book) String() string {
	return fmt.Sprintf("%s (%s)", b.Title, b.Author)
}

// Author wraps a name. Comparable, so it can key a map directly.
type Author struct {
	Name string `json:"name"`
}
