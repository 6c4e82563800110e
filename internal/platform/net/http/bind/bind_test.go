package bind

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "bazi/internal/platform/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type anchor struct {
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
	Index int    `json:"index" validate:"min=0,max=59"`
}

type request struct {
	BirthLocal string  `json:"birth_local" validate:"required"`
	Longitude  float64 `json:"longitude_deg" validate:"min=-180,max=180"`
	Boundary   string  `json:"day_boundary,omitempty" validate:"omitempty,oneof=midnight zi"`
	Accuracy   float64 `json:"accuracy_seconds,omitempty" validate:"omitempty,gt=0"`
	Anchor     *anchor `json:"day_anchor,omitempty"`
	Internal   string  `json:"-"`
}

type fileEntry struct {
	Timezone string `yaml:"timezone" validate:"required"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

// fail asserts err is a perr error with code and field
func fail(t *testing.T, err error, code perr.ErrorCode, field string) *perr.Error {
	t.Helper()
	pe, ok := perr.As(err)
	require.True(t, ok, "not a project error: %v", err)
	assert.Equal(t, code, pe.Code(), "error: %v", err)
	assert.Equal(t, field, pe.Field())
	return pe
}

func TestParseJSONDecodesAndValidates(t *testing.T) {
	got, err := ParseJSON[request](post(`{"birth_local":"2024-02-10T14:30:00","longitude_deg":13.405,"day_anchor":{"date":"1949-10-01","index":0}}`))
	require.NoError(t, err)
	assert.Equal(t, "2024-02-10T14:30:00", got.BirthLocal)
	assert.InDelta(t, 13.405, got.Longitude, 1e-12)
	require.NotNil(t, got.Anchor)
	assert.Equal(t, "1949-10-01", got.Anchor.Date)
}

func TestParseJSONDecodeFailures(t *testing.T) {
	cases := []struct {
		name, body, field, msg string
	}{
		{"empty", ``, "", "empty body"},
		{"truncated", `{"birth_local":`, "", "truncated JSON"},
		{"syntax", `{"birth_local" 1}`, "", "invalid JSON at offset"},
		{"type", `{"birth_local":"x","longitude_deg":"east"}`, "longitude_deg", "longitude_deg must be a JSON number"},
		{"nested type", `{"birth_local":"x","day_anchor":{"date":7}}`, "day_anchor.date", "must be a JSON string"},
		{"unknown", `{"birth_local":"x","tz":"UTC"}`, "tz", "unknown field tz"},
		{"trailing", `{"birth_local":"x"} {"birth_local":"y"}`, "", "unexpected data"},
		{"ignored tag", `{"birth_local":"x","Internal":"y"}`, "Internal", "unknown field"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseJSON[request](post(c.body))
			pe := fail(t, err, perr.ErrorCodeJSON, c.field)
			assert.Contains(t, pe.Error(), c.msg)
		})
	}
}

func TestParseJSONBodyLimit(t *testing.T) {
	body := `{"birth_local":"` + strings.Repeat("x", 200) + `"}`
	_, err := ParseJSON[request](post(body), Options{MaxBytes: 64})
	pe := fail(t, err, perr.ErrorCodeJSON, "")
	assert.Equal(t, "body exceeds 64 bytes", pe.Error())

	_, err = ParseJSON[request](post(body))
	assert.NoError(t, err)
}

func TestParseJSONValidationMessages(t *testing.T) {
	cases := []struct {
		name, body, field, msg string
	}{
		{"required", `{}`, "birth_local", "birth_local is required"},
		{"max", `{"birth_local":"x","longitude_deg":200}`, "longitude_deg", "longitude_deg must be at most 180"},
		{"min", `{"birth_local":"x","longitude_deg":-200}`, "longitude_deg", "longitude_deg must be at least -180"},
		{"oneof", `{"birth_local":"x","day_boundary":"dawn"}`, "day_boundary", "day_boundary must be one of [midnight zi]"},
		{"gt", `{"birth_local":"x","accuracy_seconds":-1}`, "accuracy_seconds", "accuracy_seconds must be greater than 0"},
		{"datetime", `{"birth_local":"x","day_anchor":{"date":"01/10/1949"}}`, "day_anchor.date", "date must match the layout 2006-01-02"},
		{"nested max", `{"birth_local":"x","day_anchor":{"date":"1949-10-01","index":60}}`, "day_anchor.index", "index must be at most 59"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseJSON[request](post(c.body))
			pe := fail(t, err, perr.ErrorCodeValidation, c.field)
			assert.Equal(t, c.msg, pe.Error())
		})
	}
}

func TestCustomTag(t *testing.T) {
	type stamped struct {
		At string `json:"at" validate:"bindtest_noon"`
	}
	require.NoError(t, RegisterValidation("bindtest_noon", func(fl FieldLevel) bool {
		return strings.HasSuffix(fl.Field().String(), "T12:00:00")
	}))
	require.NoError(t, RegisterTranslation("bindtest_noon", "{0} must fall on noon"))

	_, err := ParseJSON[stamped](post(`{"at":"2024-02-10T12:00:00"}`))
	require.NoError(t, err)

	_, err = ParseJSON[stamped](post(`{"at":"2024-02-10T14:30:00"}`))
	pe := fail(t, err, perr.ErrorCodeValidation, "at")
	assert.Equal(t, "at must fall on noon", pe.Error())
}

func TestStructUsesYAMLNames(t *testing.T) {
	require.NoError(t, Struct(fileEntry{Timezone: "UTC"}))
	pe := fail(t, Struct(fileEntry{}), perr.ErrorCodeValidation, "timezone")
	assert.Equal(t, "timezone is required", pe.Error())
}

func TestStructRejectsNonStruct(t *testing.T) {
	fail(t, Struct(42), perr.ErrorCodeUnknown, "")
}
