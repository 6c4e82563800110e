package swaggerkit

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	phttp "bazi/internal/platform/net/http"
	"bazi/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	OpenAPI string `json:"openapi"`
	Info    struct {
		Title string `json:"title"`
	} `json:"info"`
	Servers []struct {
		URL string `json:"url"`
	} `json:"servers"`
	Paths      map[string]map[string]map[string]any `json:"paths"`
	Components struct {
		Schemas map[string]any `json:"schemas"`
	} `json:"components"`
}

func fetch(t *testing.T, o Options, path string) *httptest.ResponseRecorder {
	t.Helper()
	m := chi.NewRouter()
	Mount(phttp.AdaptChi(m), o)
	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, path, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) doc {
	t.Helper()
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	var d doc
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	return d
}

func TestMountDisabled(t *testing.T) {
	rec := fetch(t, Options{}, "/api/docs/doc.json")
	assert.Equal(t, stdhttp.StatusNotFound, rec.Code)
}

func TestMountRedirectsBarePath(t *testing.T) {
	rec := fetch(t, Options{Enabled: true}, "/api/docs")
	assert.Equal(t, stdhttp.StatusPermanentRedirect, rec.Code)
	assert.Equal(t, "/api/docs/", rec.Header().Get("Location"))
}

func TestMountServesEmbeddedDocument(t *testing.T) {
	rec := fetch(t, Options{Enabled: true, BasePath: "/api/v1", TitleSuffix: "(staging)"}, "/api/docs/doc.json")
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	d := decode(t, rec)

	assert.Equal(t, "3.0.3", d.OpenAPI)
	assert.Equal(t, "BaZi API (staging)", d.Info.Title)
	require.Len(t, d.Servers, 1)
	assert.Equal(t, "/api/v1", d.Servers[0].URL)
	for _, p := range []string{"/chart/bazi", "/chart/terms", "/chart/backends", "/meta/health", "/meta/routes"} {
		assert.Contains(t, d.Paths, p)
	}
	assert.Contains(t, d.Components.Schemas, "ErrorResponse")
	assert.Contains(t, d.Components.Schemas, "ChartRequest")

	// declared 422 survives, defaults fill the rest
	bazi := d.Paths["/chart/bazi"]["post"]["responses"].(map[string]any)
	assert.Contains(t, bazi, "422")
	assert.Contains(t, bazi, "400")
	assert.Contains(t, bazi, "500")
}

func TestMountAppliesMutators(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &mutators, nil)
	Register(nil)
	Register(func(spec map[string]any) {
		spec["info"].(map[string]any)["version"] = "9.9.9"
	})

	rec := fetch(t, Options{Enabled: true}, "/api/docs/doc.json")
	var raw struct {
		Info map[string]any `json:"info"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Equal(t, "9.9.9", raw.Info["version"])
	require.Len(t, mutators, 1)
}

func TestMountServesReaderOutput(t *testing.T) {
	testkit.Serial(t)
	// yaml.v3 accepts the JSON subset
	testkit.Swap(t, &docReader, func() string { return `{"openapi":"3.0.3","paths":{"/x":{"get":{}}}}` })

	d := decode(t, fetch(t, Options{Enabled: true}, "/api/docs/doc.json"))
	assert.Equal(t, "3.0.3", d.OpenAPI)
	require.Len(t, d.Servers, 1)
	assert.Equal(t, "/api/v1", d.Servers[0].URL)
	assert.Contains(t, d.Paths["/x"]["get"]["responses"], "500")
	assert.Contains(t, d.Components.Schemas, "ErrorResponse")
}

func TestMountReportsParseErrors(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &docReader, func() string { return "openapi: [" })

	rec := fetch(t, Options{Enabled: true}, "/api/docs/doc.json")
	assert.Equal(t, stdhttp.StatusInternalServerError, rec.Code)
}
