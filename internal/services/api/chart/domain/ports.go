package domain

import (
	"context"

	"bazi/internal/core/sexagenary"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Chart(ctx context.Context, in ChartRequest, script sexagenary.Script) (ChartResponse, error)
	Terms(ctx context.Context, in TermsRequest, script sexagenary.Script) (TermsResponse, error)
	Backends() BackendsResponse
}
