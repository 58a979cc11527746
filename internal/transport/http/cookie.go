package httptransport

import "net/http"

// SessionCookieName is the fixed name of the session cookie.
const SessionCookieName = "SESSION"

// CookieConfig controls the attributes of the session cookie. Domain left
// empty scopes the cookie to the request host; in deployment it is set to
// the parent domain shared by sibling services.
type CookieConfig struct {
	Domain string
}

// SetSessionCookie issues the session cookie. No Expires is set: the cookie
// lives for the browser session while the server-side record enforces the
// real TTL.
func (c CookieConfig) SetSessionCookie(w http.ResponseWriter, key string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    key,
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie removes the session cookie client-side.
func (c CookieConfig) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   c.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// callerCookieKey extracts the session key from the request cookie, if any.
func callerCookieKey(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
