package exporters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mrlokans/bookshelf/internal/catalog"
)

// DefaultFileName is the name used for catalog exports.
const DefaultFileName = "catalog.md"

// MarkdownExporter writes the catalog as a single markdown file in Dir.
type MarkdownExporter struct {
	Dir      string
	FileName string
	Now      func() time.Time
}

func NewMarkdownExporter(dir string) *MarkdownExporter {
	return &MarkdownExporter{
		Dir:      dir,
		FileName: DefaultFileName,
		Now:      time.Now,
	}
}

func (exporter *MarkdownExporter) Export(snap catalog.Snapshot) (ExportResult, error) {
	if info, err := os.Stat(exporter.Dir); err != nil {
		return ExportResult{}, fmt.Errorf("export directory: %w", err)
	} else if !info.IsDir() {
		return ExportResult{}, fmt.Errorf("export directory: %s is not a directory", exporter.Dir)
	}

	outputPath := filepath.Join(exporter.Dir, exporter.FileName)
	content := GenerateMarkdown(snap, exporter.Now())
	if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
		return ExportResult{}, fmt.Errorf("write %s: %w", outputPath, err)
	}

	return ExportResult{
		BooksProcessed:  len(snap.Books),
		GenresProcessed: len(snap.Genres),
		OutputPath:      outputPath,
	}, nil
}

// GenerateMarkdown renders the catalog grouped by genre, genres in first-seen
// order and books in insertion order within each genre.
func GenerateMarkdown(snap catalog.Snapshot, exportedAt time.Time) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "---\n")
	fmt.Fprintf(&builder, "content_type: book_catalog\n")
	fmt.Fprintf(&builder, "created_at: %s\n", exportedAt.Format("2006-01-02"))
	fmt.Fprintf(&builder, "books: %d\n", len(snap.Books))
	fmt.Fprintf(&builder, "authors: %d\n", snap.Authors.Len())
	fmt.Fprintf(&builder, "genres: %d\n", len(snap.Genres))
	fmt.Fprintf(&builder, "---\n\n")
	fmt.Fprintf(&builder, "# Catalog\n")

	for _, genre := range snap.Genres {
		fmt.Fprintf(&builder, "\n## %s\n\n", headingText(genre))
		for _, book := range snap.BooksByGenre[genre] {
			fmt.Fprintf(&builder, "- **%s** by %s\n", escape(book.Title), escape(book.Author))
		}
	}

	if authors := snap.Authors.Names(); len(authors) > 0 {
		fmt.Fprintf(&builder, "\n## Authors\n\n")
		for _, name := range authors {
			fmt.Fprintf(&builder, "- %s\n", escape(name))
		}
	}

	return builder.String()
}

// FileName builds a download name such as "catalog-2024-06-15.md".
func FileName(exportedAt time.Time) string {
	return fmt.Sprintf("catalog-%s.md", exportedAt.Format("2006-01-02"))
}

func headingText(genre string) string {
	if genre == "" {
		return "(no genre)"
	}
	return escape(genre)
}

var markdownEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"*", "\\*",
	"_", "\\_",
	"`", "\\`",
	"[", "\\[",
	"]", "\\]",
	"\n", " ",
)

func escape(s string) string {
	return markdownEscaper.Replace(s)
}
