package middleware

import (
	"net/http"

	"bazi/internal/platform/logger"
	pnet "bazi/internal/platform/net"
)

// RequestContext copies the request id into the logger context and records Accept-Language
// Mount it after RequestID so the id is already on the context
func RequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), "")
		ctx = pnet.WithLanguage(ctx, r.Header.Get("Accept-Language"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
