// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"bazi/internal/core/version"
	"bazi/internal/modkit/httpkit"
	"bazi/internal/modkit/module"
)

// Pinger is satisfied by dependencies that can prove they are usable
type Pinger interface {
	Ping(stdctx.Context) error
}

// EngineInfo is the subset of the chart engine meta reports on
type EngineInfo interface {
	DefaultBackend() string
	Backends() []string
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Engine      any // checked for Pinger and EngineInfo
}

type handlers struct {
	deps Deps
	r    httpkit.Router
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d, r: r}

	// mount routes
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/engine", h.engine)
	httpkit.Get(r, "/routes", h.routes)
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"bazi-api"`
	Started string `json:"started"  example:"2026-10-01T13:00:00Z"`
	Now     string `json:"now"      example:"2026-10-01T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"ephemeris"`
	Status string `json:"status" example:"ok"` // ok fail skipped unknown
	Error  string `json:"error,omitempty" example:"unsupported ephemeris backend \"jpl\""`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-01T13:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string   `json:"name"    example:"bazi-api"`
	Started string   `json:"started" example:"2026-10-01T13:00:00Z"`
	Uptime  int64    `json:"uptime"  example:"300"`
	Modules []string `json:"modules" example:"chart,meta"`
}

// EngineResponse reports the ephemeris backends and build info
type EngineResponse struct {
	DefaultBackend string            `json:"default_backend" example:"vsop87"`
	Backends       []string          `json:"backends"        example:"vsop87,vsop87-direct"`
	Build          version.BuildInfo `json:"build"`
}

// GET /meta/health
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// GET /meta/ready
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	check := func(name string, c any) ReadyCheck {
		if c == nil {
			return ReadyCheck{Name: name, Status: "skipped"}
		}
		if p, ok := c.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
			}
			return ReadyCheck{Name: name, Status: "ok"}
		}
		return ReadyCheck{Name: name, Status: "unknown"}
	}

	eph := check("ephemeris", h.deps.Engine)

	overall := "ok"
	switch eph.Status {
	case "ok":
	case "fail":
		overall = "fail"
	default:
		overall = "degraded"
	}

	out := ReadyResponse{
		Status: overall,
		Checks: []ReadyCheck{eph},
		Now:    time.Now().UTC().Format(time.RFC3339),
	}
	if overall == "fail" {
		// probes read the status code, not the body
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: out}, nil
	}
	return out, nil
}

// GET /meta/version
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// GET /meta/service
func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := time.Since(h.deps.StartedAt)
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
		Modules: module.Names(),
	}, nil
}

// GET /meta/engine
func (h *handlers) engine(_ *http.Request) (any, error) {
	out := EngineResponse{Build: version.Info(), Backends: []string{}}
	if info, ok := h.deps.Engine.(EngineInfo); ok {
		out.DefaultBackend = info.DefaultBackend()
		out.Backends = info.Backends()
	}
	return out, nil
}

// GET /meta/routes
func (h *handlers) routes(_ *http.Request) (any, error) {
	rs := httpkit.Routes(h.r)
	if rs == nil {
		rs = []httpkit.RouteInfo{}
	}
	return rs, nil
}
