package module

import (
	"context"

	"bazi/internal/core/sexagenary"
	"bazi/internal/services/api/chart/domain"
	chartsvc "bazi/internal/services/api/chart/service"
)

// Ports is the bundle other modules resolve with module.PortsOf
type Ports struct {
	Service domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptChartPort struct{ svc *chartsvc.Service }

// Chart computes one chart
func (a adaptChartPort) Chart(ctx context.Context, in domain.ChartRequest, s sexagenary.Script) (domain.ChartResponse, error) {
	return a.svc.Chart(ctx, in, s)
}

// Terms lists the solar terms of one year
func (a adaptChartPort) Terms(ctx context.Context, in domain.TermsRequest, s sexagenary.Script) (domain.TermsResponse, error) {
	return a.svc.Terms(ctx, in, s)
}

// Backends lists the ephemeris backends
func (a adaptChartPort) Backends() domain.BackendsResponse { return a.svc.Backends() }
