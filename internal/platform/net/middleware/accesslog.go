// Package middleware holds the HTTP middleware the API mounts
package middleware

import (
	"net/http"
	"time"

	"bazi/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// AccessLogOptions configures AccessLog
type AccessLogOptions struct {
	// Slow logs requests at or above this latency at warn. Zero disables.
	Slow time.Duration
}

// recorder remembers the first status written and counts body bytes
type recorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (rw *recorder) WriteHeader(code int) {
	if rw.status == 0 {
		rw.status = code
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *recorder) Write(b []byte) (int, error) {
	if rw.status == 0 {
		rw.status = http.StatusOK
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer
func (rw *recorder) Unwrap() http.ResponseWriter { return rw.ResponseWriter }

// AccessLog writes one line per request through the request scoped logger.
// Server errors log at error, slow requests at warn. The line carries the
// matched route pattern and the Content-Language the handler chose.
func AccessLog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &recorder{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(rw, r)

			elapsed := time.Since(start)
			status := rw.status
			if status == 0 {
				status = http.StatusOK
			}

			log := logger.C(r.Context())
			var evt *zerolog.Event
			switch {
			case status >= http.StatusInternalServerError:
				evt = log.Error()
			case opt.Slow > 0 && elapsed >= opt.Slow:
				evt = log.Warn().Bool("slow", true)
			default:
				evt = log.Info()
			}
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				evt = evt.Str("route", rc.RoutePattern())
			}
			if lang := w.Header().Get("Content-Language"); lang != "" {
				evt = evt.Str("lang", lang)
			}
			evt.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", rw.bytes).
				Dur("elapsed", elapsed).
				Msg("request done")
		})
	}
}
