package server

import (
	"net/http"
	"time"

	"github.com/mfcarvalho/cv-generator/internal/obs"
)

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		// Assign the correlation id here so handlers and the access log
		// agree on it, and echo it back to the caller.
		scope := obs.ScopeFromRequest(r)
		r.Header.Set(obs.RequestIDHeader, scope.RequestID)
		w.Header().Set(obs.RequestIDHeader, scope.RequestID)

		next.ServeHTTP(rec, r)

		s.logger.Event(scope, "http_request", map[string]any{
			"status":      rec.status,
			"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
		})
	})
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+obs.RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
