// Package catalog holds the in-memory book catalog: the ordered list of books
// plus two indexes derived from it, the set of distinct authors and the books
// grouped by genre.
//
// Catalog itself is not safe for concurrent use. Wrap it in Guarded when more
// than one goroutine can reach it (the HTTP server does).
package catalog
