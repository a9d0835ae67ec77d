// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Catalog
//
//   - catalog.Reader: Read-only views of books, authors and genre buckets (internal/catalog/catalog.go)
//   - catalog.Store: Reader plus AddBook, the only mutation (internal/catalog/catalog.go)
//   - presenter.BookSource: What the list adapter renders rows from (internal/presenter/adapter.go)
//
// ## Submission Path
//
//   - services.BookAdder: Receives accepted books (internal/services/submission_service.go)
//   - services.Refresher: Notified after every accepted book (internal/services/submission_service.go)
//   - services.SubmissionAuditor: Records accepted and rejected submissions (internal/services/submission_service.go)
//   - importers.Submitter: Batch submission used by CSV import and demo seeding (internal/importers/pipeline.go)
//
// ## Audit Trail
//
//   - http.ExportAuditor, http.AuditReader: Audit access from controllers (internal/http/stores.go)
//   - tasks.AuditEventCleaner: Retention cleanup run by the task queue (internal/tasks/cleanup_audit.go)
//
// # Adding a New Export Format
//
//  1. Implement CatalogExporter in internal/exporters/
//
//     type JSONExporter struct {
//         Dir string
//     }
//
//     func (e *JSONExporter) Export(snap catalog.Snapshot) (ExportResult, error)
//
//     var _ CatalogExporter = (*JSONExporter)(nil)
//
//  2. Add a download route in internal/http/router.go
//
// # Adding a New Import Source
//
//  1. Parse the source into []services.BookForm in internal/importers/
//
//  2. Hand the forms to Pipeline's Submitter so every row goes through the
//     same validation and audit path as the web form
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
