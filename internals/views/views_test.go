package views

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Hello-Servers/internals/models"
)

var fixedNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func newRenderer(t *testing.T, legacy bool) *Renderer {
	t.Helper()
	r, err := NewRenderer(3000, legacy)
	require.NoError(t, err)
	return r.WithClock(func() time.Time { return fixedNow })
}

var admin = models.User{ID: 1, Username: "admin", Name: "Administrator"}

func TestLogin(t *testing.T) {
	r := newRenderer(t, false)
	rec := httptest.NewRecorder()

	err := r.Login(rec, http.StatusUnauthorized, LoginPage{
		Title:   "Login",
		Heading: "Session Login",
		Action:  "/login",
		Error:   "Invalid username or password",
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, `<form method="POST" action="/login">`)
	assert.Contains(t, body, `<div class="error">Invalid username or password</div>`)
	assert.Contains(t, body, "<strong>admin</strong> / password")
	assert.Contains(t, body, "<strong>user</strong> / 123456")
	assert.Contains(t, body, "<strong>demo</strong> / demo")
	assert.Contains(t, body, "Current time: 2026-10-18T12:00:00Z")
}

func TestLogin_NoError(t *testing.T) {
	r := newRenderer(t, false)
	rec := httptest.NewRecorder()

	require.NoError(t, r.Login(rec, http.StatusOK, LoginPage{Action: "/api/login"}))
	assert.NotContains(t, rec.Body.String(), `class="error"`)
}

func TestGreeting_DisplayNameFallback(t *testing.T) {
	r := newRenderer(t, false)
	rec := httptest.NewRecorder()

	require.NoError(t, r.Greeting(rec, GreetingPage{
		User:       admin,
		ProofParam: "sessionId",
		Proof:      "abc-123",
	}))

	body := rec.Body.String()
	assert.Contains(t, body, "Welcome, <strong>Administrator</strong> (ID: 1)!")
	assert.Contains(t, body, `<div class="greeting">Hello, Administrator!</div>`)
	assert.Contains(t, body, `<input type="hidden" name="sessionId" value="abc-123" />`)
	assert.Contains(t, body, "Server is running on port 3000")
	assert.NotContains(t, body, "JWT Token")
}

func TestGreeting_EscapesByDefault(t *testing.T) {
	r := newRenderer(t, false)
	rec := httptest.NewRecorder()

	require.NoError(t, r.Greeting(rec, GreetingPage{
		User:       admin,
		Name:       "<b>Bob</b>",
		ProofParam: "token",
		Proof:      "<tok>",
		ShowProof:  true,
	}))

	body := rec.Body.String()
	assert.Contains(t, body, "Hello, &lt;b&gt;Bob&lt;/b&gt;!")
	assert.NotContains(t, body, "<b>Bob</b>")
	assert.Contains(t, body, "&lt;tok&gt;")
	assert.Contains(t, body, "JWT Token")
}

func TestGreeting_LegacyUnescaped(t *testing.T) {
	r := newRenderer(t, true)
	rec := httptest.NewRecorder()

	require.NoError(t, r.Greeting(rec, GreetingPage{
		User:       admin,
		Name:       "<b>Bob</b>",
		ProofParam: "token",
		Proof:      "<i>tok</i>",
		ShowProof:  true,
	}))

	body := rec.Body.String()
	assert.Contains(t, body, "Hello, <b>Bob</b>!")
	assert.Contains(t, body, "<i>tok</i>")
}

func TestHello(t *testing.T) {
	r := newRenderer(t, false)

	rec := httptest.NewRecorder()
	require.NoError(t, r.Hello(rec, HelloPage{Heading: "Hello World"}))
	assert.Contains(t, rec.Body.String(), "Hello, World!")
	assert.NotContains(t, rec.Body.String(), "<form")

	rec = httptest.NewRecorder()
	require.NoError(t, r.Hello(rec, HelloPage{Name: "Alice & Bob", ShowForm: true}))
	assert.Contains(t, rec.Body.String(), "Hello, Alice &amp; Bob!")
	assert.Contains(t, rec.Body.String(), `<form method="GET" action="/hello">`)
}

func TestLogoutURL(t *testing.T) {
	assert.Equal(t, "/logout", logoutURL("", ""))
	assert.Equal(t, "/logout", logoutURL("sessionId", ""))
	assert.Equal(t, "/logout?sessionId=abc-123", logoutURL("sessionId", "abc-123"))

	got := logoutURL("sessionId", "a b&c")
	assert.Equal(t, "/logout?sessionId=a+b%26c", got)
	parsed, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "a b&c", parsed.Query().Get("sessionId"))
}
