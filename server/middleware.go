package server

import (
	"net/http"

	"github.com/caasmo/vitesec/headers"
)

// SecurityHeaders sets the canonical security headers on every response,
// before the next handler runs so they are present even when it errors.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers.Apply(w.Header())
		next.ServeHTTP(w, r)
	})
}
