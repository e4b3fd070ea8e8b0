package middleware

import (
	"log"
	"net/http"
)

// CORSDebugMiddleware logs origin and preflight traffic. Only attached when
// CORS_DEBUG is set; useful when the dashboard dev server misbehaves.
func CORSDebugMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("[CORS Debug] %s %s from Origin: %s", r.Method, r.URL.Path, r.Header.Get("Origin"))

		if r.Method == http.MethodOptions {
			log.Printf("[CORS Debug] Handling preflight request")
		}

		next.ServeHTTP(w, r)
	})
}
