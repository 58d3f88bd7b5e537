// Package session serves the login flow backed by the in-memory session map.
// The session identifier travels in the sessionId query parameter, with the
// cookie of the same name as a fallback.
package session

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"Hello-Servers/internals/auth"
	"Hello-Servers/internals/handlers"
	"Hello-Servers/internals/models"
	"Hello-Servers/internals/store"
	"Hello-Servers/internals/views"
)

// AuthedHandler is a handler that runs after the session check passed.
type AuthedHandler func(w http.ResponseWriter, r *http.Request, user *models.User, sessionID string)

// RequireSession resolves the request's session to a user, or redirects to
// the login page.
func RequireSession(users store.UserStore, sessions *store.SessionStore, logger *slog.Logger, next AuthedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := auth.SessionIDFromRequest(r)
		username, err := sessions.Get(id)
		if errors.Is(err, store.ErrSessionNotFound) {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		} else if err != nil {
			handlers.ServerError(w, r, logger, err)
			return
		}

		user, err := users.GetUser(r.Context(), username)
		if errors.Is(err, store.ErrUserNotFound) {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		} else if err != nil {
			handlers.ServerError(w, r, logger, err)
			return
		}
		next(w, r, user, id)
	}
}

func LoginPageHandler(v *views.Renderer, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := v.Login(w, http.StatusOK, loginPage("")); err != nil {
			handlers.ServerError(w, r, logger, err)
		}
	}
}

// LoginHandler checks the submitted credentials and starts a session.
func LoginHandler(users store.UserStore, sessions *store.SessionStore, v *views.Renderer, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fail := func(status int, msg string) {
			if err := v.Login(w, status, loginPage(msg)); err != nil {
				handlers.ServerError(w, r, logger, err)
			}
		}

		username, password, ok := handlers.Credentials(r)
		if !ok {
			fail(http.StatusBadRequest, handlers.MsgMissingCredentials)
			return
		}

		user, err := store.Authenticate(r.Context(), users, username, password)
		if errors.Is(err, store.ErrUserNotFound) {
			logger.Info("login rejected", "username", username)
			fail(http.StatusUnauthorized, handlers.MsgInvalidCredentials)
			return
		} else if err != nil {
			handlers.ServerError(w, r, logger, err)
			return
		}

		id, err := sessions.Create(user.Username)
		if err != nil {
			handlers.ServerError(w, r, logger, err)
			return
		}
		logger.Info("session created", "username", user.Username)

		auth.SetCookie(w, auth.SessionIDParam, id)
		http.Redirect(w, r, "/?"+auth.SessionIDParam+"="+url.QueryEscape(id), http.StatusFound)
	}
}

// GreetingHandler renders the greeting page for the session's user.
func GreetingHandler(v *views.Renderer, logger *slog.Logger) AuthedHandler {
	return func(w http.ResponseWriter, r *http.Request, user *models.User, sessionID string) {
		err := v.Greeting(w, views.GreetingPage{
			Title:      "Session Protected - Hello World",
			Heading:    "Session Protected Hello World",
			User:       *user,
			Name:       r.URL.Query().Get("name"),
			ProofParam: auth.SessionIDParam,
			Proof:      sessionID,
			Footer:     "Welcome to your session-protected Go web server!",
		})
		if err != nil {
			handlers.ServerError(w, r, logger, err)
		}
	}
}

// LogoutHandler ends the session, if any, and returns to the login page.
func LogoutHandler(sessions *store.SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if id := auth.SessionIDFromRequest(r); id != "" {
			sessions.Delete(id)
		}
		auth.ClearCookie(w, auth.SessionIDParam)
		http.Redirect(w, r, "/login", http.StatusFound)
	}
}

func NewRouter(users store.UserStore, sessions *store.SessionStore, v *views.Renderer, logger *slog.Logger) http.Handler {
	greeting := RequireSession(users, sessions, logger, GreetingHandler(v, logger))

	router := http.NewServeMux()
	router.HandleFunc("GET /login", LoginPageHandler(v, logger))
	router.HandleFunc("POST /login", LoginHandler(users, sessions, v, logger))
	router.HandleFunc("GET /{$}", greeting)
	router.HandleFunc("GET /hello", greeting)
	router.HandleFunc("GET /logout", LogoutHandler(sessions))
	router.HandleFunc("/", handlers.RedirectTo("/login"))
	return router
}

func loginPage(errMsg string) views.LoginPage {
	return views.LoginPage{
		Title:   "Session Login - Go Server",
		Heading: "Session Authentication Login",
		Action:  "/login",
		Error:   errMsg,
		Footer:  "Sessions are kept in server memory until logout",
	}
}
