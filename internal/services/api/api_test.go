package api

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	_ "time/tzdata"

	"bazi/internal/core/chart"
	"bazi/internal/core/ephemeris"
	"bazi/internal/core/ephemeris/vsop87"
	"bazi/internal/modkit/module"
	"bazi/internal/modkit/swaggerkit"
	"bazi/internal/platform/config"
	phttp "bazi/internal/platform/net/http"
	chartmod "bazi/internal/services/api/chart/module"

	"github.com/go-chi/chi/v5"
)

func mount(t *testing.T, swagger bool) *chi.Mux {
	t.Helper()
	t.Cleanup(module.Reset)
	reg := ephemeris.NewRegistry()
	vsop87.Register(reg)
	m := chi.NewRouter()
	Mount(phttp.AdaptChi(m), Options{
		Config: config.New().Prefix("BAZI_TEST_API_"),
		Engine: chart.New(reg),
		Docs:   swaggerkit.Options{Enabled: swagger},
	})
	return m
}

func TestMountServesChartWithScript(t *testing.T) {
	m := mount(t, false)
	body := `{"birth_local":"2024-02-10T14:30:00","timezone":"Europe/Berlin","longitude_deg":13.405,"latitude_deg":52.52}`
	req := httptest.NewRequest(stdhttp.MethodPost, "/api/v1/chart/bazi", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", "zh-CN")
	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, req)

	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Language"); got != "zh-Hans" {
		t.Fatalf("Content-Language = %q", got)
	}
	var env struct {
		RequestID string `json:"request_id"`
		Data      struct {
			Text string `json:"text"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.Text != "甲辰 丙寅 甲辰 辛未" {
		t.Fatalf("text = %q", env.Data.Text)
	}
	if env.RequestID == "" {
		t.Fatalf("request id missing from envelope")
	}
}

func TestMountMapsEngineErrors(t *testing.T) {
	m := mount(t, false)
	body := `{"birth_local":"2024-03-31T02:30:00","timezone":"Europe/Berlin"}`
	req := httptest.NewRequest(stdhttp.MethodPost, "/api/v1/chart/bazi", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, req)

	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	var env map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if env["stage"] != "ResolveLocalTime" || env["kind"] != "TimeResolutionError" {
		t.Fatalf("envelope = %v", env)
	}
}

func TestMountRegistersPorts(t *testing.T) {
	mount(t, false)
	p, ok := module.PortsAs[chartmod.Ports]("chart")
	if !ok || p.Service == nil {
		t.Fatalf("chart ports not registered")
	}
}

func TestMountMetaAndDocs(t *testing.T) {
	m := mount(t, true)
	for _, path := range []string{"/api/v1/meta/health", "/api/v1/meta/ready", "/api/docs/doc.json"} {
		rec := httptest.NewRecorder()
		m.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, path, nil))
		if rec.Code != stdhttp.StatusOK {
			t.Fatalf("%s status = %d", path, rec.Code)
		}
	}
}

func TestMountListsRoutesAndStampsVersion(t *testing.T) {
	m := mount(t, false)
	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/api/v1/meta/routes", nil))
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("API-Version"); got != "v1" {
		t.Fatalf("API-Version = %q", got)
	}
	var env struct {
		Data []phttp.Route `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[phttp.Route]bool{
		{Method: "POST", Pattern: "/api/v1/chart/bazi"}:    false,
		{Method: "GET", Pattern: "/api/v1/chart/terms"}:    false,
		{Method: "GET", Pattern: "/api/v1/meta/routes"}:    false,
		{Method: "GET", Pattern: "/api/v1/chart/backends"}: false,
	}
	for _, r := range env.Data {
		if _, ok := want[r]; ok {
			want[r] = true
		}
	}
	for r, seen := range want {
		if !seen {
			t.Fatalf("route %v missing from %v", r, env.Data)
		}
	}
}
