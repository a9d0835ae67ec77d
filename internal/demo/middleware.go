package demo

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextKeyDemoMode marks requests served in demo mode, for templates.
const ContextKeyDemoMode = "demo_mode"

const blockedMessage = "Adding books is disabled in demo mode"

// Middleware blocks write operations in demo mode.
// Safe methods (GET, HEAD, OPTIONS) are always allowed.
type Middleware struct {
	enabled bool
}

// NewMiddleware creates a demo mode middleware.
func NewMiddleware(enabled bool) *Middleware {
	return &Middleware{enabled: enabled}
}

// IsEnabled returns whether demo mode is active.
func (m *Middleware) IsEnabled() bool {
	return m != nil && m.enabled
}

// Handler returns a Gin middleware that blocks write operations.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.IsEnabled() {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		m.respondBlocked(c)
	}
}

func (m *Middleware) respondBlocked(c *gin.Context) {
	if strings.Contains(c.GetHeader("Accept"), "application/json") || strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     blockedMessage,
			"demo_mode": true,
		})
		return
	}

	c.String(http.StatusForbidden, blockedMessage)
	c.Abort()
}

// InjectContext adds the demo mode flag to the context for template rendering.
func (m *Middleware) InjectContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyDemoMode, m.IsEnabled())
		c.Next()
	}
}
