// Package greeting serves the two variants without login: a static
// "Hello, World!" page and a page greeting the name query parameter.
package greeting

import (
	"log/slog"
	"net/http"

	"Hello-Servers/internals/handlers"
	"Hello-Servers/internals/views"
)

// StaticHandler always greets the world.
func StaticHandler(v *views.Renderer, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := v.Hello(w, views.HelloPage{
			Title:   "Hello World - Go Server",
			Heading: "Hello World",
		})
		if err != nil {
			handlers.ServerError(w, r, logger, err)
		}
	}
}

// QueryHandler greets the name query parameter, defaulting to World.
func QueryHandler(v *views.Renderer, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := v.Hello(w, views.HelloPage{
			Title:    "Hello - Go Server",
			Heading:  "Personalized Hello World",
			Name:     r.URL.Query().Get("name"),
			ShowForm: true,
		})
		if err != nil {
			handlers.ServerError(w, r, logger, err)
		}
	}
}

func NewStaticRouter(v *views.Renderer, logger *slog.Logger) http.Handler {
	return newRouter(StaticHandler(v, logger))
}

func NewQueryRouter(v *views.Renderer, logger *slog.Logger) http.Handler {
	return newRouter(QueryHandler(v, logger))
}

// Unknown paths redirect to /login like the login variants; with nothing to
// log into, /login serves the greeting itself.
func newRouter(page http.HandlerFunc) http.Handler {
	router := http.NewServeMux()
	router.HandleFunc("GET /{$}", page)
	router.HandleFunc("GET /hello", page)
	router.HandleFunc("GET /login", page)
	router.HandleFunc("/", handlers.RedirectTo("/login"))
	return router
}
