// Package jwtauth serves the stateless login flow. A successful login issues
// a signed token that every protected route verifies on its own; logout only
// drops the browser cookie, so a token stays valid until it expires.
package jwtauth

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"Hello-Servers/internals/auth"
	"Hello-Servers/internals/handlers"
	"Hello-Servers/internals/store"
	"Hello-Servers/internals/views"
)

// AuthedHandler runs after the request's token verified.
type AuthedHandler func(w http.ResponseWriter, r *http.Request, claims *auth.Claims, token string)

// RequireToken verifies the request's token or redirects to the login page.
func RequireToken(issuer *auth.Issuer, logger *slog.Logger, next AuthedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := auth.TokenFromRequest(r)
		claims, err := issuer.Parse(token)
		if err != nil {
			if !errors.Is(err, auth.ErrMissingToken) {
				logger.Debug("token rejected", "path", r.URL.Path, "error", err)
			}
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next(w, r, claims, token)
	}
}

func LoginPageHandler(v *views.Renderer, issuer *auth.Issuer, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := v.Login(w, http.StatusOK, loginPage(issuer, "")); err != nil {
			handlers.ServerError(w, r, logger, err)
		}
	}
}

// LoginHandler checks the submitted credentials and issues a token.
func LoginHandler(users store.UserStore, issuer *auth.Issuer, v *views.Renderer, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fail := func(status int, msg string) {
			if err := v.Login(w, status, loginPage(issuer, msg)); err != nil {
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

		token, err := issuer.Sign(*user)
		if err != nil {
			handlers.ServerError(w, r, logger, err)
			return
		}
		logger.Info("token issued", "username", user.Username)

		auth.SetCookie(w, auth.TokenParam, token)
		http.Redirect(w, r, "/hello?"+auth.TokenParam+"="+url.QueryEscape(token), http.StatusFound)
	}
}

func GreetingHandler(v *views.Renderer, logger *slog.Logger) AuthedHandler {
	return func(w http.ResponseWriter, r *http.Request, claims *auth.Claims, token string) {
		err := v.Greeting(w, views.GreetingPage{
			Title:      "JWT Protected - Hello World",
			Heading:    "JWT Protected Hello World",
			User:       claims.User(),
			Name:       r.URL.Query().Get("name"),
			ProofParam: auth.TokenParam,
			Proof:      token,
			ShowProof:  true,
			Footer:     "Welcome to your JWT-protected Go web server!",
		})
		if err != nil {
			handlers.ServerError(w, r, logger, err)
		}
	}
}

type verifyResponse struct {
	Message   string       `json:"message"`
	User      *auth.Claims `json:"user"`
	Timestamp string       `json:"timestamp"`
}

// VerifyHandler echoes the decoded claims of a valid token.
func VerifyHandler(logger *slog.Logger) AuthedHandler {
	return func(w http.ResponseWriter, r *http.Request, claims *auth.Claims, _ string) {
		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(verifyResponse{
			Message:   "JWT token is valid",
			User:      claims,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
		if err != nil {
			logger.Error("failed to encode verify response", "error", err)
		}
	}
}

// LogoutHandler forgets the browser cookie. Issued tokens are not tracked,
// so there is nothing to revoke.
func LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth.ClearCookie(w, auth.TokenParam)
		http.Redirect(w, r, "/login", http.StatusFound)
	}
}

func NewRouter(users store.UserStore, issuer *auth.Issuer, v *views.Renderer, logger *slog.Logger) http.Handler {
	greeting := RequireToken(issuer, logger, GreetingHandler(v, logger))
	login := LoginHandler(users, issuer, v, logger)

	router := http.NewServeMux()
	router.HandleFunc("GET /login", LoginPageHandler(v, issuer, logger))
	router.HandleFunc("POST /login", login)
	router.HandleFunc("POST /api/login", login)
	router.HandleFunc("GET /{$}", greeting)
	router.HandleFunc("GET /hello", greeting)
	router.HandleFunc("GET /logout", LogoutHandler())
	router.HandleFunc("GET /api/verify", RequireToken(issuer, logger, VerifyHandler(logger)))
	router.HandleFunc("/", handlers.RedirectTo("/login"))
	return router
}

func loginPage(issuer *auth.Issuer, errMsg string) views.LoginPage {
	return views.LoginPage{
		Title:   "JWT Login - Go Server",
		Heading: "JWT Authentication Login",
		Action:  "/api/login",
		Error:   errMsg,
		Footer:  fmt.Sprintf("Tokens are signed with HS256 and expire after %s", issuer.TTL()),
	}
}
