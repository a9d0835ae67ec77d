package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

// CSRFFieldName is the form field carrying the token.
const CSRFFieldName = "gorilla.csrf.Token"

const csrfContextKey = "csrf_token"

// ResolveSecret decodes a configured secret (hex, or raw bytes otherwise).
// An empty value yields a random 32-byte secret and generated=true.
func ResolveSecret(configured string) (secret []byte, generated bool, err error) {
	if configured != "" {
		if decoded, err := hex.DecodeString(configured); err == nil {
			return decoded, false, nil
		}
		return []byte(configured), false, nil
	}

	secret = make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, false, fmt.Errorf("generate session secret: %w", err)
	}
	return secret, true, nil
}

// CSRFMiddleware creates a Gin middleware for CSRF protection of form posts.
// Safe methods pass through and receive a token for templates.
func CSRFMiddleware(secret []byte, secure bool) gin.HandlerFunc {
	protect := csrf.Protect(
		secret,
		csrf.Secure(secure),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.Path("/"),
		csrf.FieldName(CSRFFieldName),
		csrf.ErrorHandler(http.HandlerFunc(csrfErrorHandler)),
	)

	return func(c *gin.Context) {
		passed := false
		handler := protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Set(csrfContextKey, csrf.Token(r))
			c.Request = r
			c.Next()
		}))

		r := c.Request
		if !secure {
			r = csrf.PlaintextHTTPRequest(r)
		}
		handler.ServeHTTP(c.Writer, r)

		if !passed {
			c.Abort()
		}
	}
}

func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"CSRF token invalid or missing"}`))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Form expired</title></head>
<body style="font-family: system-ui; max-width: 400px; margin: 100px auto; text-align: center;">
<h1>Form expired</h1>
<p>The book form was stale or incomplete.</p>
<p><a href="/">Back to the catalog</a></p>
</body>
</html>`))
}

// CSRFToken retrieves the CSRF token from the Gin context.
func CSRFToken(c *gin.Context) string {
	if token, exists := c.Get(csrfContextKey); exists {
		if t, ok := token.(string); ok {
			return t
		}
	}
	return ""
}
