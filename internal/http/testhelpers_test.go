package http

import (
	"html"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/catalog"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	dbaudit "github.com/mrlokans/bookshelf/internal/database/audit"
	"github.com/mrlokans/bookshelf/internal/demo"
	"github.com/mrlokans/bookshelf/internal/importers"
	"github.com/mrlokans/bookshelf/internal/presenter"
	"github.com/mrlokans/bookshelf/internal/services"
	"github.com/mrlokans/bookshelf/internal/session"
)

var testCSRFSecret = []byte("test-secret-key-32-bytes-long!!!")

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	catalog *catalog.Guarded
	adapter *presenter.BookAdapter
	audit   *audit.Service
	db      *database.Database
	router  *gin.Engine
}

// newTestApp wires the full router over an in-memory audit store.
func newTestApp(t *testing.T, configure ...func(*RouterConfig)) *testApp {
	t.Helper()

	db, err := database.NewDatabase(":memory:", "silent")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	sessions, err := session.NewManager(sqlDB, config.Session{Lifetime: time.Hour})
	require.NoError(t, err)

	auditService := audit.NewService(dbaudit.NewRepository(db.DB))
	t.Cleanup(auditService.Wait)

	books := catalog.NewGuarded(nil)
	adapter := presenter.NewBookAdapter(books)
	submissions := services.NewSubmissionService(books, adapter)
	submissions.SetAuditor(auditService)

	cfg := RouterConfig{
		Catalog:        books,
		Rows:           adapter,
		Submissions:    submissions,
		Importer:       importers.NewPipeline(submissions),
		Database:       db,
		ExportAuditor:  auditService,
		AuditReader:    auditService,
		Sessions:       sessions,
		CSRFSecret:     testCSRFSecret,
		DemoMiddleware: demo.NewMiddleware(false),
		Version:        "test",
	}
	for _, fn := range configure {
		fn(&cfg)
	}

	return &testApp{
		catalog: books,
		adapter: adapter,
		audit:   auditService,
		db:      db,
		router:  NewRouter(cfg),
	}
}

func (app *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

func (app *testApp) get(path string) *httptest.ResponseRecorder {
	return app.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (app *testApp) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return app.do(req)
}

// browser keeps cookies between requests like a user agent would.
type browser struct {
	app     *testApp
	cookies map[string]*http.Cookie
}

func newBrowser(app *testApp) *browser {
	return &browser{app: app, cookies: make(map[string]*http.Cookie)}
}

func (b *browser) send(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	w := b.app.do(req)
	for _, c := range w.Result().Cookies() {
		b.cookies[c.Name] = c
	}
	return w
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.send(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.send(req)
}

var csrfInput = regexp.MustCompile(`name="gorilla\.csrf\.Token" value="([^"]+)"`)

func csrfTokenFrom(t *testing.T, body io.Reader) string {
	t.Helper()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	m := csrfInput.FindSubmatch(data)
	require.NotNil(t, m, "page has no CSRF field")
	return html.UnescapeString(string(m[1]))
}
