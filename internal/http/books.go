package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/importers"
	"github.com/mrlokans/bookshelf/internal/presenter"
	"github.com/mrlokans/bookshelf/internal/services"
)

// maxImportBytes caps CSV uploads.
const maxImportBytes = 4 << 20

type BooksController struct {
	reader    CatalogReader
	submitter BookSubmitter
	importer  CSVImporter
	audits    AuditReader
}

func NewBooksController(reader CatalogReader, submitter BookSubmitter, importer CSVImporter, audits AuditReader) *BooksController {
	return &BooksController{
		reader:    reader,
		submitter: submitter,
		importer:  importer,
		audits:    audits,
	}
}

// GenreResponse is one genre bucket in insertion order.
type GenreResponse struct {
	Genre string          `json:"genre"`
	Count int             `json:"count"`
	Books []entities.Book `json:"books"`
}

// GET /api/books
func (controller *BooksController) GetBooks(c *gin.Context) {
	books := controller.reader.Books()
	c.IndentedJSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

// POST /api/books
func (controller *BooksController) CreateBook(c *gin.Context) {
	var form services.BookForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	book, err := controller.submitter.Submit(form, requestOrigin(c))
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			respondValidationError(c, validationErr)
			return
		}
		respondInternalError(c, err, "create book")
		return
	}

	respondCreated(c, gin.H{"book": book, "count": controller.reader.Len()})
}

// POST /api/books/import
// Accepts a multipart "file" field or a raw text/csv body. Uploads over
// maxImportBytes are refused whole.
func (controller *BooksController) ImportBooks(c *gin.Context) {
	if controller.importer == nil {
		respondError(c, http.StatusNotImplemented, "import is not configured")
		return
	}

	if c.Request.ContentLength > maxImportBytes {
		respondPayloadTooLarge(c)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes)

	var body io.Reader = c.Request.Body
	file, err := c.FormFile("file")
	switch {
	case err == nil:
		f, err := file.Open()
		if err != nil {
			respondBadRequest(c, "failed to read uploaded file")
			return
		}
		defer f.Close()
		body = f
	case isTooLarge(err):
		respondPayloadTooLarge(c)
		return
	case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingFile):
		// raw body
	default:
		respondBadRequest(c, "failed to read upload")
		return
	}

	data, err := io.ReadAll(io.LimitReader(body, maxImportBytes+1))
	if err != nil {
		if isTooLarge(err) {
			respondPayloadTooLarge(c)
			return
		}
		respondBadRequest(c, "failed to read upload")
		return
	}
	if len(data) > maxImportBytes {
		respondPayloadTooLarge(c)
		return
	}

	result, err := controller.importer.ImportCSV(bytes.NewReader(data), requestOrigin(c))
	if err != nil {
		if errors.Is(err, importers.ErrMissingHeader) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "invalid_csv"})
			return
		}
		respondBadRequest(c, "failed to parse CSV: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accepted": result.Accepted,
		"rejected": result.Rejected,
		"errors":   result.Errors,
		"count":    controller.reader.Len(),
	})
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func respondPayloadTooLarge(c *gin.Context) {
	c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
		Error: fmt.Sprintf("upload exceeds %d bytes", maxImportBytes),
		Code:  "payload_too_large",
	})
}

// GET /api/authors
func (controller *BooksController) GetAuthors(c *gin.Context) {
	names := controller.reader.Authors().Names()
	c.IndentedJSON(http.StatusOK, gin.H{"authors": names, "count": len(names)})
}

// GET /api/genres
func (controller *BooksController) GetGenres(c *gin.Context) {
	snap := controller.reader.Snapshot()

	genres := make([]GenreResponse, 0, len(snap.Genres))
	for _, line := range presenter.SummaryLines(snap.Genres, snap.BooksByGenre) {
		genres = append(genres, GenreResponse{Genre: line.Genre, Count: len(line.Books), Books: line.Books})
	}

	c.IndentedJSON(http.StatusOK, gin.H{"genres": genres, "count": len(genres)})
}

// GET /api/genres/summary
func (controller *BooksController) GetGenreSummary(c *gin.Context) {
	snap := controller.reader.Snapshot()
	c.String(http.StatusOK, presenter.GenreSummary(snap.Genres, snap.BooksByGenre))
}

// GET /api/stats
func (controller *BooksController) GetStats(c *gin.Context) {
	snap := controller.reader.Snapshot()

	stats := gin.H{
		"total_books":   len(snap.Books),
		"total_authors": snap.Authors.Len(),
		"total_genres":  len(snap.Genres),
	}

	if controller.audits != nil {
		accepted, rejected, err := controller.audits.SubmissionCounts()
		if err != nil {
			respondInternalError(c, err, "submission counts")
			return
		}
		stats["submissions_accepted"] = accepted
		stats["submissions_rejected"] = rejected
	}

	c.IndentedJSON(http.StatusOK, stats)
}
