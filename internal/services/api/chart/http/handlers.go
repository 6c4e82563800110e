// Package http provides http transport for charts
package http

import (
	stdhttp "net/http"
	"strconv"
	"strings"
	"sync"

	"bazi/internal/core/localtime"
	"bazi/internal/core/sexagenary"
	"bazi/internal/modkit/httpkit"
	perr "bazi/internal/platform/errors"
	pnet "bazi/internal/platform/net"
	"bazi/internal/platform/net/http/bind"
	"bazi/internal/services/api/chart/domain"
)

var validatorsOnce sync.Once

// Register mounts chart endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	validatorsOnce.Do(registerValidators)
	h := &handlers{svc: s}

	// four pillars for one birth instant
	httpkit.PostJSON[domain.ChartRequest](r, "/bazi", h.chart)

	// 24 solar terms of one solar year
	httpkit.Get(r, "/terms", h.terms)

	// selectable ephemeris backends
	httpkit.Get(r, "/backends", h.backends)
}

// registerValidators adds the iso_local tag used by ChartRequest
func registerValidators() {
	_ = bind.RegisterValidation("iso_local", func(fl bind.FieldLevel) bool {
		_, err := localtime.ParseLiteral(fl.Field().String())
		return err == nil
	})
	_ = bind.RegisterTranslation("iso_local", "{0} must be a local ISO 8601 date and time without offset")
}

type handlers struct{ svc domain.ServicePort }

// script negotiates the naming script from Accept-Language
func script(r *stdhttp.Request) sexagenary.Script {
	return sexagenary.ScriptFromAcceptLanguage(pnet.Language(r.Context()))
}

// POST /chart/bazi
func (h *handlers) chart(r *stdhttp.Request, in domain.ChartRequest) (any, error) {
	sc := script(r)
	out, err := h.svc.Chart(r.Context(), in, sc)
	if err != nil {
		return nil, err
	}
	return httpkit.OK(out).WithHeader("Content-Language", sc.Tag().String()), nil
}

// GET /chart/terms
func (h *handlers) terms(r *stdhttp.Request) (any, error) {
	in, err := termsRequest(r)
	if err != nil {
		return nil, err
	}
	sc := script(r)
	out, err := h.svc.Terms(r.Context(), in, sc)
	if err != nil {
		return nil, err
	}
	return httpkit.OK(out).WithHeader("Content-Language", sc.Tag().String()), nil
}

// GET /chart/backends
func (h *handlers) backends(_ *stdhttp.Request) (any, error) {
	return h.svc.Backends(), nil
}

func termsRequest(r *stdhttp.Request) (domain.TermsRequest, error) {
	q := r.URL.Query()
	raw := strings.TrimSpace(q.Get("year"))
	if raw == "" {
		return domain.TermsRequest{}, perr.WithField(perr.InvalidArgf("year is required"), "year")
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return domain.TermsRequest{}, perr.WithField(perr.InvalidArgf("year must be an integer, got %q", raw), "year")
	}
	in := domain.TermsRequest{
		Year:     year,
		Timezone: strings.TrimSpace(q.Get("tz")),
		Backend:  strings.TrimSpace(q.Get("backend")),
	}
	if acc := strings.TrimSpace(q.Get("accuracy")); acc != "" {
		v, err := strconv.ParseFloat(acc, 64)
		if err != nil || v <= 0 {
			return domain.TermsRequest{}, perr.WithField(perr.InvalidArgf("accuracy must be a positive number of seconds, got %q", acc), "accuracy_seconds")
		}
		in.AccuracySeconds = v
	}
	return in, nil
}
