package middleware

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// VisitorKey is the gin context key holding the resolved visitor id.
const VisitorKey = "visitor_id"

const (
	visitorCookie = "ca_visitor"
	// Durable for about a year; the identity expires passively.
	visitorMaxAge = 365 * 24 * 60 * 60
)

// ResolveOrIssue returns the caller's anonymous visitor id. A cookie
// whose value parses as a canonical UUID is recognized and reused;
// anything else gets a fresh token with isNew = true. Cannot fail.
func ResolveOrIssue(c *gin.Context) (visitorID string, isNew bool) {
	if value, err := c.Cookie(visitorCookie); err == nil {
		if parsed, err := uuid.Parse(value); err == nil {
			return parsed.String(), false
		}
	}
	return uuid.NewString(), true
}

// VisitorIdentity resolves the identity for every request and, only when
// a new one was issued, attaches it as a persistent HttpOnly cookie.
// Re-setting the cookie on every response would reset nothing but is
// avoided so issuance stays idempotent.
func VisitorIdentity() gin.HandlerFunc {
	secure := os.Getenv("COOKIE_SECURE") == "true"
	return func(c *gin.Context) {
		visitorID, isNew := ResolveOrIssue(c)
		if isNew {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(visitorCookie, visitorID, visitorMaxAge, "/", "", secure, true)
		}
		c.Set(VisitorKey, visitorID)
		c.Next()
	}
}

// VisitorID reads the resolved id from the context. Empty only when the
// middleware did not run.
func VisitorID(c *gin.Context) string {
	if v, ok := c.Get(VisitorKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
