// Package module wires charts into the API using modkit
package module

import (
	"time"

	modkit "bazi/internal/modkit"
	"bazi/internal/modkit/httpkit"
	str "bazi/internal/platform/strings"
	charthttp "bazi/internal/services/api/chart/http"
	chartsvc "bazi/internal/services/api/chart/service"
)

// Module implements the chart module
type Module struct {
	b     modkit.Built
	port  adaptChartPort
	ports Ports
}

// New constructs the chart module; deps must carry an engine.
// CHART_TIMEOUT bounds each request, ACCURACY_SECONDS and TERMS_TZ set service defaults.
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	if !deps.HasEngine() {
		panic("chart module requires a chart engine")
	}
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("chart"),
		modkit.WithPrefix("/chart"),
		modkit.WithTimeout(deps.Cfg.MayDuration("CHART_TIMEOUT", 10*time.Second)),
	}, opts...)...)

	port := adaptChartPort{svc: chartsvc.New(deps.Engine, chartsvc.Options{
		DefaultAccuracy: deps.Cfg.MaySeconds("ACCURACY_SECONDS", time.Second),
		TermsZone:       deps.Cfg.MayLocation("TERMS_TZ", time.UTC),
	})}
	return &Module{b: b, port: port, ports: Ports{Service: port}}
}

// MountRoutes mounts /bazi, /terms and /backends under Prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { charthttp.Register(rr, m.port) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }
