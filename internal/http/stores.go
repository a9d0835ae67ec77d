package http

import (
	"io"

	"github.com/mrlokans/bookshelf/internal/catalog"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/importers"
	"github.com/mrlokans/bookshelf/internal/presenter"
	"github.com/mrlokans/bookshelf/internal/services"
)

// CatalogReader is the read side the controllers render from.
type CatalogReader interface {
	catalog.Reader
	Snapshot() catalog.Snapshot
}

// BookSubmitter runs a single add-book submission.
type BookSubmitter interface {
	Submit(form services.BookForm, origin services.Origin) (entities.Book, error)
}

// CSVImporter submits every row of a CSV upload.
type CSVImporter interface {
	ImportCSV(r io.Reader, origin services.Origin) (importers.ImportResult, error)
}

// RowSource is the list binding rendered on the books page.
type RowSource interface {
	ItemCount() int
	Rows() []presenter.Row
	Revision() uint64
}

// ExportAuditor records catalog exports.
type ExportAuditor interface {
	LogExport(origin services.Origin, format string, booksCount int, err error)
}

// AuditReader lists recorded audit events.
type AuditReader interface {
	GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error)
	GetEventsByType(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error)
	SubmissionCounts() (accepted, rejected int64, err error)
}

// Compile-time interface checks
var (
	_ CatalogReader = (*catalog.Guarded)(nil)
	_ CatalogReader = (*catalog.Catalog)(nil)
	_ BookSubmitter = (*services.SubmissionService)(nil)
	_ CSVImporter   = (*importers.Pipeline)(nil)
	_ RowSource     = (*presenter.BookAdapter)(nil)
)
