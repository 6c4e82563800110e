package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"bazi/internal/platform/config"
	"bazi/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	// Slow is the access log warn threshold
	Slow time.Duration
	// MaxInFlight caps concurrent requests, 0 means unlimited
	MaxInFlight int
	// Backlog is how many requests may wait for a slot, for at most QueueWait
	Backlog   int
	QueueWait time.Duration
	// Timeout bounds every request in the scope
	Timeout time.Duration
	// Origins allowed by CORS, "*" when empty
	Origins []string
}

// StackFromConfig reads SLOW_REQUEST, MAX_INFLIGHT, BACKLOG, QUEUE_WAIT,
// REQUEST_TIMEOUT and CORS_ORIGINS from cfg
func StackFromConfig(cfg config.Conf) StackOptions {
	return StackOptions{
		Slow:        cfg.MayDuration("SLOW_REQUEST", 2*time.Second),
		MaxInFlight: cfg.MayInt("MAX_INFLIGHT", 64),
		Backlog:     cfg.MayInt("BACKLOG", 128),
		QueueWait:   cfg.MayDuration("QUEUE_WAIT", 5*time.Second),
		Timeout:     cfg.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
		Origins:     cfg.MayCSV("CORS_ORIGINS", nil),
	}
}

// CommonStack returns the baseline middleware for the versioned API.
// Order matters: the request id and logger context come first so the
// panic envelope and the access log both carry them.
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	origins := o.Origins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RequestContext,
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.Slow}),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: origins, ExposedHeaders: []string{"Content-Language", "API-Version"}}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
		middleware.Throttle(o.MaxInFlight, o.Backlog, o.QueueWait),
		middleware.Timeout(timeout),
	}
}
