package http

import (
	"embed"
	"html/template"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/session"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// loadTemplates parses templates from dir, or the embedded set when dir is empty.
func loadTemplates(dir string) *template.Template {
	funcMap := template.FuncMap{
		"inc": func(i int) int {
			return i + 1
		},
	}

	tmpl := template.New("").Funcs(funcMap)
	if dir == "" {
		return template.Must(tmpl.ParseFS(embeddedTemplates, "templates/*.html"))
	}
	return template.Must(tmpl.ParseGlob(dir + "/*.html"))
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(session.SecurityHeadersMiddleware())

	if cfg.Sessions != nil {
		router.Use(cfg.Sessions.LoadSave())
	}

	if cfg.DemoMiddleware.IsEnabled() {
		router.Use(cfg.DemoMiddleware.InjectContext())
		router.Use(cfg.DemoMiddleware.Handler())
	}

	router.SetHTMLTemplate(loadTemplates(cfg.TemplatesPath))

	var pinger Pinger
	if cfg.Database != nil {
		pinger = cfg.Database
	}
	health := NewHealthController(pinger, cfg.Catalog, cfg.Version)
	booksController := NewBooksController(cfg.Catalog, cfg.Submissions, cfg.Importer, cfg.AuditReader)
	uiController := NewUIController(cfg.Catalog, cfg.Rows, cfg.Submissions, cfg.Sessions, cfg.ExportAuditor)
	demoController := NewDemoController(cfg.DemoMiddleware)

	// Write routes go through the per-IP submission limit when one is set
	limited := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		if cfg.RateLimiter == nil {
			return []gin.HandlerFunc{handler}
		}
		return []gin.HandlerFunc{cfg.RateLimiter.Middleware(), handler}
	}

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", Ping)

	// Catalog API
	router.GET("/api/books", booksController.GetBooks)
	router.POST("/api/books", limited(booksController.CreateBook)...)
	router.POST("/api/books/import", limited(booksController.ImportBooks)...)
	router.GET("/api/authors", booksController.GetAuthors)
	router.GET("/api/genres", booksController.GetGenres)
	router.GET("/api/genres/summary", booksController.GetGenreSummary)
	router.GET("/api/stats", booksController.GetStats)
	router.GET("/api/demo/status", demoController.GetStatus)

	if cfg.AuditReader != nil {
		auditController := NewAuditController(cfg.AuditReader)
		router.GET("/api/audit", auditController.GetAuditEvents)
	}

	// UI routes; the form is CSRF-protected when a secret is configured
	ui := router.Group("")
	if len(cfg.CSRFSecret) > 0 {
		ui.Use(session.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	} else {
		log.Printf("WARNING: CSRF protection disabled for the book form")
	}
	ui.GET("/", uiController.BooksPage)
	ui.POST("/books", limited(uiController.AddBook)...)
	ui.GET("/ui/download", uiController.DownloadMarkdown)

	return router
}
