// Package handlers holds the response helpers shared by the variant routers
// in its subpackages.
package handlers

import (
	"log/slog"
	"net/http"
)

// RedirectTo answers every request with a 302 to path.
func RedirectTo(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, path, http.StatusFound)
	}
}

// ServerError logs err and writes a bare 500.
func ServerError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
