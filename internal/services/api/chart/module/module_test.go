package module

import (
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	_ "time/tzdata"

	"bazi/internal/core/chart"
	"bazi/internal/core/ephemeris"
	"bazi/internal/core/ephemeris/vsop87"
	modkit "bazi/internal/modkit"
	"bazi/internal/modkit/module"
	"bazi/internal/platform/config"
	phttp "bazi/internal/platform/net/http"
	"bazi/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func deps() modkit.Deps {
	reg := ephemeris.NewRegistry()
	vsop87.Register(reg)
	return modkit.Deps{Cfg: config.New().Prefix("BAZI_TEST_"), Engine: chart.New(reg)}
}

func TestNewRequiresEngine(t *testing.T) {
	testkit.MustPanic(t, func() { New(modkit.Deps{}) })
}

func TestModuleDefaults(t *testing.T) {
	m := New(deps()).(*Module)
	if m.Name() != "chart" || m.Prefix() != "/chart" {
		t.Fatalf("name=%q prefix=%q", m.Name(), m.Prefix())
	}
	p := module.MustPortsOf[Ports](m)
	if p.Service == nil || p.Service.Backends().Default != "vsop87" {
		t.Fatalf("ports = %+v", p)
	}
}

func TestMountRoutesServesChart(t *testing.T) {
	mux := chi.NewRouter()
	New(deps()).MountRoutes(phttp.AdaptChi(mux))

	body := `{"birth_local":"2024-02-10T14:30:00","timezone":"Europe/Berlin","longitude_deg":13.405,"latitude_deg":52.52}`
	req := httptest.NewRequest(stdhttp.MethodPost, "/chart/bazi", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	testkit.MustContain(t, rec.Body.String(), `"text":"JiaChen BingYin JiaChen XinWei"`)
}

func TestPrefixOverride(t *testing.T) {
	m := New(deps(), modkit.WithPrefix("/pillars"))
	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/pillars/backends", nil))
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
