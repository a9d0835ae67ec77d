package demo

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/catalog"
	"github.com/mrlokans/bookshelf/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewMiddleware(t *testing.T) {
	assert.True(t, NewMiddleware(true).IsEnabled())
	assert.False(t, NewMiddleware(false).IsEnabled())

	var m *Middleware
	assert.False(t, m.IsEnabled())
}

func newRouter(m *Middleware) *gin.Engine {
	router := gin.New()
	router.Use(m.InjectContext(), m.Handler())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "demo=%v", c.GetBool(ContextKeyDemoMode))
	})
	router.POST("/books", func(c *gin.Context) { c.Status(http.StatusSeeOther) })
	router.POST("/api/books", func(c *gin.Context) { c.Status(http.StatusCreated) })
	return router
}

func TestMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		enabled  bool
		method   string
		path     string
		accept   string
		wantCode int
		wantBody string
	}{
		{name: "GET allowed", enabled: true, method: http.MethodGet, path: "/", wantCode: http.StatusOK, wantBody: "demo=true"},
		{name: "form POST blocked", enabled: true, method: http.MethodPost, path: "/books", wantCode: http.StatusForbidden, wantBody: blockedMessage},
		{name: "API POST blocked with JSON", enabled: true, method: http.MethodPost, path: "/api/books", wantCode: http.StatusForbidden, wantBody: `"demo_mode":true`},
		{name: "JSON accept blocked with JSON", enabled: true, method: http.MethodPost, path: "/books", accept: "application/json", wantCode: http.StatusForbidden, wantBody: `"demo_mode":true`},
		{name: "disabled passes writes", enabled: false, method: http.MethodPost, path: "/api/books", wantCode: http.StatusCreated},
		{name: "disabled flag in context", enabled: false, method: http.MethodGet, path: "/", wantCode: http.StatusOK, wantBody: "demo=false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(NewMiddleware(tt.enabled))

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestSeed(t *testing.T) {
	c := catalog.New()

	result, err := Seed(services.NewSubmissionService(c))
	require.NoError(t, err)

	assert.Equal(t, 8, result.Accepted)
	assert.Zero(t, result.Rejected)
	assert.Equal(t, 8, c.Len())
	assert.Equal(t, []string{"Science Fiction", "Romance", "Fantasy", "Mystery"}, c.Genres())
	assert.True(t, c.Authors().Contains("Ursula K. Le Guin"))
	assert.Equal(t, 6, c.Authors().Len())
}

func TestSampleCSVIsCopy(t *testing.T) {
	data := SampleCSV()
	data[0] = 'X'
	assert.Equal(t, byte('t'), SampleCSV()[0])
}
