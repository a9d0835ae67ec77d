package exporters

import "github.com/mrlokans/bookshelf/internal/catalog"

// CatalogExporter writes a catalog snapshot somewhere.
type CatalogExporter interface {
	Export(snap catalog.Snapshot) (ExportResult, error)
}

type ExportResult struct {
	BooksProcessed  int    `json:"books_processed"`
	GenresProcessed int    `json:"genres_processed"`
	OutputPath      string `json:"output_path,omitempty"`
}
