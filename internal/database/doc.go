// Package database provides the SQLite-backed audit store.
//
// The book catalog itself lives in memory (see package catalog); this package
// only holds the audit trail of submissions and exports, plus the session
// table. The default path is a shared-cache in-memory database, so the trail
// also ends with the process unless DATABASE_PATH points at a file.
//
// Sub-packages provide repositories over the shared *gorm.DB:
//
//	db, err := database.NewDatabase("file:bookshelf?mode=memory&cache=shared", "warn")
//	auditRepo := audit.NewRepository(db.DB)
package database
