package auth

import (
	"net/http"
	"strings"
)

const (
	TokenParam     = "token"
	SessionIDParam = "sessionId"
)

// TokenFromRequest looks for a bearer token in the Authorization header,
// then the token query parameter, then the token cookie.
func TokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return strings.TrimSpace(parts[1])
		}
	}
	if token := r.URL.Query().Get(TokenParam); token != "" {
		return token
	}
	if cookie, err := r.Cookie(TokenParam); err == nil {
		return cookie.Value
	}
	return ""
}

// SessionIDFromRequest prefers the sessionId query parameter over the cookie.
func SessionIDFromRequest(r *http.Request) string {
	if id := r.URL.Query().Get(SessionIDParam); id != "" {
		return id
	}
	if cookie, err := r.Cookie(SessionIDParam); err == nil {
		return cookie.Value
	}
	return ""
}

// SetCookie stores an identity proof for browser clients.
func SetCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
