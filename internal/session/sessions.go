package session

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/mrlokans/bookshelf/internal/config"
)

// Session data keys
const (
	keyFlashSuccess = "flash_success"
	keyFlashError   = "flash_error"
)

// Flash is a one-shot message shown on the next page render.
type Flash struct {
	Success string
	Error   string
}

// Empty reports whether there is nothing to show.
func (f Flash) Empty() bool {
	return f.Success == "" && f.Error == ""
}

// Manager wraps scs.SessionManager with flash helpers.
type Manager struct {
	*scs.SessionManager
}

// NewManager creates a session manager storing sessions in sqlDB.
// The sqlDB parameter should be the underlying *sql.DB from GORM.
func NewManager(sqlDB *sql.DB, cfg config.Session) (*Manager, error) {
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)

	sm.Lifetime = cfg.Lifetime
	sm.Cookie.Name = "bookshelf_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &Manager{SessionManager: sm}, nil
}

// FlashSuccess queues a success message for the next page.
func (m *Manager) FlashSuccess(ctx context.Context, msg string) {
	m.Put(ctx, keyFlashSuccess, msg)
}

// FlashError queues an error message for the next page.
func (m *Manager) FlashError(ctx context.Context, msg string) {
	m.Put(ctx, keyFlashError, msg)
}

// PopFlash returns and clears any queued messages.
func (m *Manager) PopFlash(ctx context.Context) Flash {
	return Flash{
		Success: m.PopString(ctx, keyFlashSuccess),
		Error:   m.PopString(ctx, keyFlashError),
	}
}
