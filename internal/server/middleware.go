package server

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// KeyAuth gates a route group behind a shared secret. The key is read from
// the given header, falling back to the query parameter so scanned staff
// links keep working. An unconfigured key fails closed.
func KeyAuth(header, queryParam, key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			supplied := r.Header.Get(header)
			if supplied == "" && queryParam != "" {
				supplied = r.URL.Query().Get(queryParam)
			}

			if key == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(key)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{
					"error":   "UNAUTHORIZED",
					"message": "missing or invalid key",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
