package httptransport

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordedCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestSetSessionCookieAttributes(t *testing.T) {
	rr := httptest.NewRecorder()
	CookieConfig{}.SetSessionCookie(rr, "the-key")

	c := recordedCookie(t, rr)
	assert.Equal(t, SessionCookieName, c.Name)
	assert.Equal(t, "the-key", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Empty(t, c.Domain)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.True(t, c.Expires.IsZero())
	assert.Zero(t, c.MaxAge)
}

func TestSetSessionCookieWithDomain(t *testing.T) {
	rr := httptest.NewRecorder()
	CookieConfig{Domain: "example.com"}.SetSessionCookie(rr, "the-key")

	assert.Equal(t, "example.com", recordedCookie(t, rr).Domain)
}

func TestClearSessionCookie(t *testing.T) {
	rr := httptest.NewRecorder()
	CookieConfig{}.ClearSessionCookie(rr)

	c := recordedCookie(t, rr)
	assert.Equal(t, SessionCookieName, c.Name)
	assert.Empty(t, c.Value)
	assert.Negative(t, c.MaxAge)
}

func TestCallerCookieKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, callerCookieKey(req))

	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "the-key"})
	assert.Equal(t, "the-key", callerCookieKey(req))
}
