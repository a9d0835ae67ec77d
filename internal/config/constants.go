package config

// Default database locations. Both are shared in-memory SQLite databases, so
// nothing survives a restart unless the paths are overridden.
const (
	// DefaultDatabasePath holds the audit trail and sessions
	DefaultDatabasePath = "file:bookshelf?mode=memory&cache=shared"

	// DefaultTasksDatabasePath holds the background task queue
	DefaultTasksDatabasePath = "file:bookshelf-tasks?mode=memory&cache=shared"
)
