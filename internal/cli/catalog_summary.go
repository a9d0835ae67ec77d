package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/bookshelf/internal/catalog"
	"github.com/mrlokans/bookshelf/internal/exporters"
	"github.com/mrlokans/bookshelf/internal/importers"
	"github.com/mrlokans/bookshelf/internal/presenter"
	"github.com/mrlokans/bookshelf/internal/services"
)

// CatalogSummaryCommand loads books from CSV into a fresh catalog and prints
// the list rows and the genre summary.
type CatalogSummaryCommand struct {
	File      string
	ExportDir string
	Verbose   bool

	Out   io.Writer
	Stdin io.Reader
}

func NewCatalogSummaryCommand() *CatalogSummaryCommand {
	return &CatalogSummaryCommand{
		Out:   os.Stdout,
		Stdin: os.Stdin,
	}
}

func (cmd *CatalogSummaryCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("catalog-summary", flag.ContinueOnError)

	fs.StringVar(&cmd.File, "file", "", "CSV file with title,author,genre columns, or - for stdin (required)")
	fs.StringVar(&cmd.ExportDir, "export", "", "Directory to write catalog.md into")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Print rejected rows")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s catalog-summary [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Add books from a CSV file to a catalog and print the genre summary.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s catalog-summary -file books.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s catalog-summary -file books.csv -export ./out -verbose\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.File == "" {
		fs.Usage()
		return fmt.Errorf("file is required")
	}

	return nil
}

func (cmd *CatalogSummaryCommand) Run() error {
	input, closeInput, err := cmd.open()
	if err != nil {
		return err
	}
	defer closeInput()

	books := catalog.New()
	adapter := presenter.NewBookAdapter(books)
	pipeline := importers.NewPipeline(services.NewSubmissionService(books, adapter))

	result, err := pipeline.ImportCSV(input, services.Origin{UserAgent: "cli"})
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", cmd.File, err)
	}

	out := cmd.Out
	fmt.Fprintf(out, "=== Import Results ===\n")
	fmt.Fprintf(out, "Rows accepted: %d\n", result.Accepted)
	fmt.Fprintf(out, "Rows rejected: %d\n", result.Rejected)
	if cmd.Verbose {
		for _, rowErr := range result.Errors {
			fmt.Fprintf(out, "  %s\n", rowErr)
		}
	}

	if adapter.ItemCount() > 0 {
		fmt.Fprintf(out, "\n=== Books ===\n")
		for _, row := range adapter.Rows() {
			fmt.Fprintf(out, "%d. %s\n   %s\n   %s\n", row.Position+1, row.Title, row.Author, row.Genre)
		}
	}

	snap := books.Snapshot()
	fmt.Fprintf(out, "\n=== Summary ===\n")
	fmt.Fprintf(out, "Books: %d, authors: %d, genres: %d\n\n", len(snap.Books), snap.Authors.Len(), len(snap.Genres))
	fmt.Fprint(out, presenter.GenreSummary(snap.Genres, snap.BooksByGenre))

	if cmd.ExportDir != "" {
		exported, err := exporters.NewMarkdownExporter(cmd.ExportDir).Export(snap)
		if err != nil {
			return fmt.Errorf("failed to export catalog: %w", err)
		}
		fmt.Fprintf(out, "\nExported %d books to %s\n", exported.BooksProcessed, exported.OutputPath)
	}

	return nil
}

func (cmd *CatalogSummaryCommand) open() (io.Reader, func(), error) {
	if cmd.File == "-" {
		if cmd.Stdin == nil {
			return nil, nil, errors.New("no stdin available")
		}
		return cmd.Stdin, func() {}, nil
	}

	f, err := os.Open(cmd.File)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("file does not exist: %s", cmd.File)
		}
		return nil, nil, fmt.Errorf("failed to open %s: %w", cmd.File, err)
	}
	return f, func() { _ = f.Close() }, nil
}
