// Package service maps chart requests onto the chart engine
package service

import (
	"context"
	"time"

	"bazi/internal/core/chart"
	"bazi/internal/core/localtime"
	"bazi/internal/core/sexagenary"
	perr "bazi/internal/platform/errors"
	"bazi/internal/services/api/chart/domain"
)

// Options are request defaults applied before the engine sees a request
type Options struct {
	DefaultAccuracy time.Duration  // used when a request omits accuracy_seconds
	TermsZone       *time.Location // used when a terms request omits tz, UTC if nil
}

// Service implements domain.ServicePort over a chart engine
type Service struct {
	engine *chart.Engine
	opt    Options
}

var _ domain.ServicePort = (*Service)(nil)

// New constructs a chart service
func New(engine *chart.Engine, opt Options) *Service {
	if engine == nil {
		panic("chart.Service requires a non nil engine")
	}
	if opt.DefaultAccuracy <= 0 {
		opt.DefaultAccuracy = chart.DefaultAccuracy
	}
	if opt.TermsZone == nil {
		opt.TermsZone = time.UTC
	}
	return &Service{engine: engine, opt: opt}
}

// Chart computes one chart and renders its names in script
func (s *Service) Chart(ctx context.Context, in domain.ChartRequest, script sexagenary.Script) (domain.ChartResponse, error) {
	input, err := s.toInput(in)
	if err != nil {
		return domain.ChartResponse{}, perr.WithOpIfEmpty(err, string(chart.StageParseInput))
	}
	res, err := s.engine.Compute(ctx, input)
	if err != nil {
		return domain.ChartResponse{}, err
	}
	return Render(res, script), nil
}

// Terms lists the 24 solar terms of one solar year
func (s *Service) Terms(ctx context.Context, in domain.TermsRequest, script sexagenary.Script) (domain.TermsResponse, error) {
	tz := in.Timezone
	if tz == "" {
		tz = s.opt.TermsZone.String()
	}
	res, err := s.engine.YearTerms(ctx, chart.TermsInput{
		Year:     in.Year,
		Timezone: tz,
		Accuracy: s.accuracy(in.AccuracySeconds),
		Backend:  in.Backend,
	})
	if err != nil {
		return domain.TermsResponse{}, err
	}
	names := sexagenary.NamesFor(script)
	out := domain.TermsResponse{
		Year:       res.Year,
		Timezone:   tz,
		Backend:    res.Backend,
		Script:     script.String(),
		LiChun:     instant(res.LiChun),
		Boundaries: make([]domain.Instant, len(res.Boundaries)),
		Terms:      termViews(res.Terms, names),
	}
	for k, b := range res.Boundaries {
		out.Boundaries[k] = instant(b)
	}
	return out, nil
}

// Backends reports the registered ephemeris backends
func (s *Service) Backends() domain.BackendsResponse {
	return domain.BackendsResponse{Default: s.engine.DefaultBackend(), Backends: s.engine.Backends()}
}

func (s *Service) accuracy(seconds float64) time.Duration {
	if seconds <= 0 {
		return s.opt.DefaultAccuracy
	}
	return time.Duration(seconds * float64(time.Second))
}

// toInput applies request defaults; strict is on unless the caller turns it off
func (s *Service) toInput(in domain.ChartRequest) (chart.Input, error) {
	strict := true
	if in.Strict != nil {
		strict = *in.Strict
	}
	out := chart.Input{
		BirthLocal:  in.BirthLocal,
		Timezone:    in.Timezone,
		Longitude:   in.Longitude,
		Latitude:    in.Latitude,
		Standard:    localtime.Standard(in.Standard),
		DayBoundary: localtime.DayBoundary(in.DayBoundary),
		Strict:      strict,
		Fold:        localtime.Fold(in.Fold),
		Accuracy:    s.accuracy(in.AccuracySeconds),
		Backend:     in.Backend,
	}
	if in.Anchor != nil {
		a, err := sexagenary.ParseAnchor(in.Anchor.Date, in.Anchor.Index)
		if err != nil {
			return chart.Input{}, err
		}
		out.Anchor = &a
	}
	return out, nil
}
