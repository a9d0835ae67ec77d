package presenter

import (
	"strings"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// SummaryHeader opens the genre summary text.
const SummaryHeader = "Authors and genres:"

// GenreLine is one genre with its books, for templates.
type GenreLine struct {
	Genre string
	Books []entities.Book
}

// SummaryLines pairs each genre with its books. Genres are emitted in the
// order given; genres missing from byGenre are skipped.
func SummaryLines(genres []string, byGenre map[string][]entities.Book) []GenreLine {
	lines := make([]GenreLine, 0, len(genres))
	for _, genre := range genres {
		books, ok := byGenre[genre]
		if !ok {
			continue
		}
		lines = append(lines, GenreLine{Genre: genre, Books: books})
	}
	return lines
}

// String renders the line as "genre: [book, book]".
func (l GenreLine) String() string {
	titles := make([]string, len(l.Books))
	for i, book := range l.Books {
		titles[i] = book.String()
	}
	return l.Genre + ": [" + strings.Join(titles, ", ") + "]"
}

// GenreSummary renders the header followed by one line per genre.
func GenreSummary(genres []string, byGenre map[string][]entities.Book) string {
	var builder strings.Builder
	builder.WriteString(SummaryHeader)
	builder.WriteString("\n")
	for _, line := range SummaryLines(genres, byGenre) {
		builder.WriteString(line.String())
		builder.WriteString("\n")
	}
	return builder.String()
}
