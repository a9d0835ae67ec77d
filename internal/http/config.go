package http

import (
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/demo"
	"github.com/mrlokans/bookshelf/internal/session"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Catalog and the paths that change it
	Catalog     CatalogReader
	Rows        RowSource
	Submissions BookSubmitter
	Importer    CSVImporter

	// Audit trail (optional)
	Database      *database.Database
	ExportAuditor ExportAuditor
	AuditReader   AuditReader

	// Sessions and CSRF (optional; without them the form posts unprotected
	// and flash messages are dropped)
	Sessions      *session.Manager
	CSRFSecret    []byte
	SecureCookies bool

	// Per-IP limit on submissions (optional)
	RateLimiter *session.RateLimiter

	DemoMiddleware *demo.Middleware

	// Empty means use the embedded templates
	TemplatesPath string

	// Application info
	Version string
}
