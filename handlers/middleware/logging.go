// Package middleware provides handler middleware not covered by
// gorilla/handlers.
package middleware

import (
	"net/http"
	"time"

	"github.com/felixge/httpsnoop"
	log "github.com/sirupsen/logrus"
)

type responseRecorder struct {
	status int
	size   int
}

// LoggingHandler emits one structured log line per request, capturing the
// response status and size through httpsnoop hooks.
func LoggingHandler(h http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rec := &responseRecorder{status: http.StatusOK}

		wrapped := httpsnoop.Wrap(rw, httpsnoop.Hooks{
			Write: func(next httpsnoop.WriteFunc) httpsnoop.WriteFunc {
				return func(b []byte) (int, error) {
					size, err := next(b)
					rec.size += size
					return size, err
				}
			},
			WriteHeader: func(next httpsnoop.WriteHeaderFunc) httpsnoop.WriteHeaderFunc {
				return func(status int) {
					next(status)
					rec.status = status
				}
			},
		})

		h.ServeHTTP(wrapped, r)

		log.WithFields(log.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"remote":     r.RemoteAddr,
			"user-agent": r.UserAgent(),
			"status":     rec.status,
			"size":       rec.size,
			"durationMs": float64(time.Since(start).Microseconds()) / float64(1000),
		}).Info("HTTP request")
	})
}
