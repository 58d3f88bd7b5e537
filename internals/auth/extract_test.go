package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenFromRequest_Priority(t *testing.T) {
	tests := []struct {
		name   string
		header string
		query  string
		cookie string
		want   string
	}{
		{"none", "", "", "", ""},
		{"cookie only", "", "", "c", "c"},
		{"query beats cookie", "", "q", "c", "q"},
		{"header beats query", "Bearer h", "q", "c", "h"},
		{"non-bearer header ignored", "Basic xyz", "q", "", "q"},
		{"bare bearer ignored", "Bearer", "", "c", "c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/hello"
			if tt.query != "" {
				target += "?token=" + tt.query
			}
			r := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: TokenParam, Value: tt.cookie})
			}
			assert.Equal(t, tt.want, TokenFromRequest(r))
		})
	}
}

func TestSessionIDFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?sessionId=abc", nil)
	r.AddCookie(&http.Cookie{Name: SessionIDParam, Value: "cookie"})
	assert.Equal(t, "abc", SessionIDFromRequest(r))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: SessionIDParam, Value: "cookie"})
	assert.Equal(t, "cookie", SessionIDFromRequest(r))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, SessionIDFromRequest(r))
}

func TestSetAndClearCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	SetCookie(rec, TokenParam, "value")
	ClearCookie(rec, SessionIDParam)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	assert.Equal(t, "value", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, SessionIDParam, cookies[1].Name)
	assert.Equal(t, -1, cookies[1].MaxAge)
}
