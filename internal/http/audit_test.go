package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/entities"
)

type auditPage struct {
	Data       []entities.AuditEvent `json:"data"`
	Total      int64                 `json:"total"`
	Limit      int                   `json:"limit"`
	Offset     int                   `json:"offset"`
	HasMore    bool                  `json:"has_more"`
	TotalPages int                   `json:"total_pages"`
}

func TestAuditController_GetAuditEvents(t *testing.T) {
	app := newTestApp(t)

	app.postJSON("/api/books", `{"title":"Dune","author":"Frank Herbert","genre":"Sci-Fi"}`)
	app.postJSON("/api/books", `{"title":"","author":"Jane Austen","genre":"Romance"}`)
	app.get("/ui/download")
	app.audit.Wait()

	t.Run("all events", func(t *testing.T) {
		w := app.get("/api/audit")
		require.Equal(t, http.StatusOK, w.Code)

		var page auditPage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Equal(t, int64(3), page.Total)
		assert.Len(t, page.Data, 3)
		assert.Equal(t, 25, page.Limit)
		assert.False(t, page.HasMore)
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("filtered by type", func(t *testing.T) {
		w := app.get("/api/audit?type=submission")
		require.Equal(t, http.StatusOK, w.Code)

		var page auditPage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Equal(t, int64(2), page.Total)
		for _, event := range page.Data {
			assert.Equal(t, entities.AuditEventSubmission, event.EventType)
		}
	})

	t.Run("paginates", func(t *testing.T) {
		w := app.get("/api/audit?limit=2&page=1")

		var page auditPage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Len(t, page.Data, 2)
		assert.True(t, page.HasMore)
		assert.Equal(t, 2, page.TotalPages)

		w = app.get("/api/audit?limit=2&page=2")
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Len(t, page.Data, 1)
		assert.Equal(t, 2, page.Offset)
		assert.False(t, page.HasMore)
	})

	t.Run("unknown type", func(t *testing.T) {
		w := app.get("/api/audit?type=login")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
