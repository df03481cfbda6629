package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func visitorTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(VisitorIdentity())
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, VisitorID(c))
	})
	return r
}

func TestIssuesIdentityOnce(t *testing.T) {
	r := visitorTestRouter()

	// First request: no cookie, a fresh identity is issued and set.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	r.ServeHTTP(w, req)

	issued := w.Body.String()
	_, err := uuid.Parse(issued)
	require.NoError(t, err, "issued id is a canonical UUID")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, issued, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 365*24*60*60, cookie.MaxAge)

	// Second request with the cookie: same id, no re-issue.
	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req2.AddCookie(cookie)
	r.ServeHTTP(w2, req2)

	assert.Equal(t, issued, w2.Body.String(), "resolveOrIssue is idempotent")
	assert.Empty(t, w2.Result().Cookies(), "recognized identities are not re-set")
}

func TestUnrecognizedCookieReissued(t *testing.T) {
	r := visitorTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "ca_visitor", Value: "garbage-token"})
	r.ServeHTTP(w, req)

	fresh := w.Body.String()
	_, err := uuid.Parse(fresh)
	require.NoError(t, err)
	assert.NotEqual(t, "garbage-token", fresh)
	require.Len(t, w.Result().Cookies(), 1, "a replacement cookie is attached")
}
