package httpkit

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "bazi/internal/platform/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chartIn struct {
	BirthLocal string `json:"birth_local" validate:"required"`
	Timezone   string `json:"timezone" validate:"required"`
}

// run executes h and decodes the envelope
func run(t *testing.T, h Handler, r *http.Request) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h(rec, r)
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func body(s string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/chart/bazi", strings.NewReader(s))
}

func TestCallResults(t *testing.T) {
	cases := []struct {
		name   string
		fn     func(*http.Request) (any, error)
		status int
		kind   string
	}{
		{"plain value", func(*http.Request) (any, error) { return map[string]int{"year": 2024}, nil }, http.StatusOK, ""},
		{"response passes through", func(*http.Request) (any, error) {
			return Response{Status: http.StatusAccepted, Body: "queued"}, nil
		}, http.StatusAccepted, ""},
		{"project error", func(*http.Request) (any, error) { return nil, perr.InvalidArgf("year out of range") }, http.StatusUnprocessableEntity, "InvalidArgument"},
		{"foreign error", func(*http.Request) (any, error) { return nil, errors.New("boom") }, http.StatusInternalServerError, "Unknown"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec, env := run(t, Call(c.fn), httptest.NewRequest(http.MethodGet, "/chart/terms", nil))
			assert.Equal(t, c.status, rec.Code)
			assert.Equal(t, c.status, env.StatusCode)
			assert.Equal(t, c.kind, env.Kind)
		})
	}
}

func TestCallKeepsHeaders(t *testing.T) {
	h := Call(func(*http.Request) (any, error) {
		return OK("JiaChen").WithHeader("Content-Language", "zh-Latn-pinyin"), nil
	})
	rec, env := run(t, h, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "zh-Latn-pinyin", rec.Header().Get("Content-Language"))
	assert.Equal(t, "JiaChen", env.Data)
}

func TestJSONBindsBody(t *testing.T) {
	var got chartIn
	h := JSON(func(_ *http.Request, in chartIn) (any, error) {
		got = in
		return map[string]string{"tz": in.Timezone}, nil
	})
	rec, env := run(t, h, body(`{"birth_local":"2024-02-10T14:30:00","timezone":"Europe/Berlin"}`))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, chartIn{BirthLocal: "2024-02-10T14:30:00", Timezone: "Europe/Berlin"}, got)
	assert.Equal(t, map[string]any{"tz": "Europe/Berlin"}, env.Data)
}

func TestJSONRejectsBeforeHandler(t *testing.T) {
	cases := []struct {
		name, body string
		status     int
		kind       string
		field      string
	}{
		{"invalid json", `{"birth_local":`, http.StatusBadRequest, "JSON", ""},
		{"unknown field", `{"birth_local":"x","timezone":"UTC","tz":"UTC"}`, http.StatusBadRequest, "JSON", "tz"},
		{"validation", `{"birth_local":"x"}`, http.StatusBadRequest, "Validation", "timezone"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			called := false
			h := JSON(func(*http.Request, chartIn) (any, error) {
				called = true
				return nil, nil
			})
			rec, env := run(t, h, body(c.body))
			assert.False(t, called)
			assert.Equal(t, c.status, rec.Code)
			assert.Equal(t, c.kind, env.Kind)
			assert.Equal(t, c.field, env.Field)
		})
	}
}

func TestJSONHandlerErrorCarriesStage(t *testing.T) {
	h := JSON(func(*http.Request, chartIn) (any, error) {
		return nil, perr.WithOp(perr.WithField(perr.TimeResolutionf("nonexistent local time"), "birth_local"), "ResolveLocalTime")
	})
	rec, env := run(t, h, body(`{"birth_local":"2024-03-31T02:30:00","timezone":"Europe/Berlin"}`))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "TimeResolutionError", env.Kind)
	assert.Equal(t, "ResolveLocalTime", env.Stage)
	assert.Equal(t, "birth_local", env.Field)
}
