package http

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/demo"
	"github.com/mrlokans/bookshelf/internal/exporters"
	"github.com/mrlokans/bookshelf/internal/presenter"
	"github.com/mrlokans/bookshelf/internal/services"
	"github.com/mrlokans/bookshelf/internal/session"
)

type UIController struct {
	reader    CatalogReader
	rows      RowSource
	submitter BookSubmitter
	sessions  *session.Manager
	exports   ExportAuditor
	now       func() time.Time
}

func NewUIController(reader CatalogReader, rows RowSource, submitter BookSubmitter, sessions *session.Manager, exports ExportAuditor) *UIController {
	return &UIController{
		reader:    reader,
		rows:      rows,
		submitter: submitter,
		sessions:  sessions,
		exports:   exports,
		now:       time.Now,
	}
}

// BooksPage renders the add-book form, the list rows and the genre summary.
// GET /
func (controller *UIController) BooksPage(c *gin.Context) {
	snap := controller.reader.Snapshot()

	var flash session.Flash
	if controller.sessions != nil {
		flash = controller.sessions.PopFlash(c.Request.Context())
	}

	c.HTML(http.StatusOK, "books", gin.H{
		"Rows":          controller.rows.Rows(),
		"ItemCount":     controller.rows.ItemCount(),
		"Revision":      controller.rows.Revision(),
		"SummaryHeader": presenter.SummaryHeader,
		"Summary":       presenter.SummaryLines(snap.Genres, snap.BooksByGenre),
		"TotalAuthors":  snap.Authors.Len(),
		"TotalGenres":   len(snap.Genres),
		"Flash":         flash,
		"CSRFToken":     session.CSRFToken(c),
		"CSRFField":     session.CSRFFieldName,
		"DemoMode":      c.GetBool(demo.ContextKeyDemoMode),
	})
}

// AddBook handles the form post and redirects back to the list.
// POST /books
func (controller *UIController) AddBook(c *gin.Context) {
	form := services.BookForm{
		Title:  c.PostForm("title"),
		Author: c.PostForm("author"),
		Genre:  c.PostForm("genre"),
	}

	book, err := controller.submitter.Submit(form, requestOrigin(c))
	if err != nil {
		var validationErr *services.ValidationError
		if !errors.As(err, &validationErr) {
			respondInternalError(c, err, "add book")
			return
		}
		controller.flashError(c, validationMessage(validationErr))
	} else {
		controller.flashSuccess(c, fmt.Sprintf("Added %s", book))
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// DownloadMarkdown exports the whole catalog grouped by genre.
// GET /ui/download
func (controller *UIController) DownloadMarkdown(c *gin.Context) {
	snap := controller.reader.Snapshot()
	exportedAt := controller.now()

	markdown := exporters.GenerateMarkdown(snap, exportedAt)

	if controller.exports != nil {
		controller.exports.LogExport(requestOrigin(c), "markdown", len(snap.Books), nil)
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", exporters.FileName(exportedAt)))
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(markdown))
}

func (controller *UIController) flashSuccess(c *gin.Context, msg string) {
	if controller.sessions != nil {
		controller.sessions.FlashSuccess(c.Request.Context(), msg)
	}
}

func (controller *UIController) flashError(c *gin.Context, msg string) {
	if controller.sessions != nil {
		controller.sessions.FlashError(c.Request.Context(), msg)
	}
}

// validationMessage renders field errors as "Title is required. Genre is required."
func validationMessage(err *services.ValidationError) string {
	order := map[string]int{"title": 0, "author": 1, "genre": 2}
	fields := make([]string, 0, len(err.Fields))
	for field := range err.Fields {
		fields = append(fields, field)
	}
	sort.Slice(fields, func(i, j int) bool {
		oi, iok := order[fields[i]]
		oj, jok := order[fields[j]]
		if iok != jok {
			return iok
		}
		if oi != oj {
			return oi < oj
		}
		return fields[i] < fields[j]
	})

	parts := make([]string, len(fields))
	for i, field := range fields {
		name := field
		if name != "" {
			name = strings.ToUpper(name[:1]) + name[1:]
		}
		parts[i] = name + " " + err.Fields[field] + "."
	}
	return strings.Join(parts, " ")
}
