package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/catalog"
	"github.com/mrlokans/bookshelf/internal/exporters"
	"github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/importers"
	"github.com/mrlokans/bookshelf/internal/presenter"
	"github.com/mrlokans/bookshelf/internal/services"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// =============================================================================
// Catalog
// =============================================================================

// Store implementations
var _ catalog.Store = (*catalog.Catalog)(nil)
var _ catalog.Store = (*catalog.Guarded)(nil)

// BookSource implementations
var _ presenter.BookSource = (*catalog.Guarded)(nil)

// =============================================================================
// Submission Path
// =============================================================================

var _ services.BookAdder = (*catalog.Guarded)(nil)
var _ services.Refresher = (*presenter.BookAdapter)(nil)
var _ services.SubmissionAuditor = (*audit.Service)(nil)
var _ importers.Submitter = (*services.SubmissionService)(nil)

// =============================================================================
// Audit Trail
// =============================================================================

var _ http.ExportAuditor = (*audit.Service)(nil)
var _ http.AuditReader = (*audit.Service)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)

// =============================================================================
// Export
// =============================================================================

var _ exporters.CatalogExporter = (*exporters.MarkdownExporter)(nil)
