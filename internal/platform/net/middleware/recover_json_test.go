package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "bazi/internal/platform/errors"
	"bazi/internal/platform/net/middleware"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverJSONWritesEnvelope(t *testing.T) {
	boom := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("ephemeris table corrupt") })
	h, buf := capture(chimw.RequestID(middleware.RecoverJSON(boom)))

	req := httptest.NewRequest(http.MethodPost, "/chart/bazi", nil)
	req.Header.Set("X-Request-ID", "rid-panic")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "rid-panic", rec.Header().Get("X-Request-ID"))

	var body struct {
		Code      perr.ErrorCode `json:"code"`
		Kind      string         `json:"kind"`
		Error     string         `json:"error"`
		RequestID string         `json:"request_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, perr.ErrorCodePanic, body.Code)
	assert.Equal(t, "Panic", body.Kind)
	assert.Equal(t, "internal error", body.Error)
	assert.Equal(t, "rid-panic", body.RequestID)

	got := line(t, buf)
	assert.Equal(t, "error", got["level"])
	assert.Equal(t, "ephemeris table corrupt", got["panic"])
}

func TestRecoverJSONReraisesAbort(t *testing.T) {
	abort := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic(http.ErrAbortHandler) })
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		middleware.RecoverJSON(abort).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestRecoverJSONPassThrough(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	rec := httptest.NewRecorder()
	middleware.RecoverJSON(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
