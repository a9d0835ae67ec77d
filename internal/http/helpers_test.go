package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/", func(c *gin.Context) {
		seen = c.GetString(ContextKeyRequestID)
		c.Status(http.StatusOK)
	})

	t.Run("generates an ID", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
		assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
	})

	t.Run("reuses a valid incoming ID", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, id)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, id, seen)
		assert.Equal(t, id, w.Header().Get(RequestIDHeader))
	})

	t.Run("replaces a malformed incoming ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "<script>")

		router.ServeHTTP(httptest.NewRecorder(), req)

		assert.NotEqual(t, "<script>", seen)
	})
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query      string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"", 1, 25, 0},
		{"page=3&limit=10", 3, 10, 20},
		{"page=0&limit=0", 1, 25, 0},
		{"page=-2&limit=1000", 1, 25, 0},
		{"page=abc&limit=xyz", 1, 25, 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)

			page, limit, offset := parsePagination(c, 25, 100)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, totalPages(0, 25))
	assert.Equal(t, 1, totalPages(25, 25))
	assert.Equal(t, 2, totalPages(26, 25))
}
