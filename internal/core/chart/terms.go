package chart

import (
	"context"
	"time"

	"bazi/internal/core/localtime"
	perr "bazi/internal/platform/errors"
	"bazi/internal/platform/logger"
)

// Supported solar year range for term tables
const (
	MinYear = 1
	MaxYear = 9998
)

// TermsInput asks for the solar terms of one solar year
type TermsInput struct {
	Year     int
	Timezone string // empty reads the table in UTC
	Accuracy time.Duration
	Backend  string
}

// TermsResult is the 24 term table from the Li-Chun of Year to the next
type TermsResult struct {
	Year       int
	Backend    string
	LiChun     localtime.ChartTime
	Boundaries [13]localtime.ChartTime
	Terms      []SolarTerm
}

// YearTerms lists every crossing between the Li-Chun of in.Year and the following one
func (e *Engine) YearTerms(ctx context.Context, in TermsInput) (*TermsResult, error) {
	if in.Backend == "" {
		in.Backend = e.defaultBackend
	}
	if in.Accuracy == 0 {
		in.Accuracy = DefaultAccuracy
	}
	if in.Accuracy < 0 {
		return nil, perr.WithField(perr.InvalidArgf("accuracy must be positive, got %s", in.Accuracy), "accuracy_seconds")
	}
	if in.Year < MinYear || in.Year > MaxYear {
		return nil, perr.WithField(perr.InvalidArgf("year %d outside [%d,%d]", in.Year, MinYear, MaxYear), "year")
	}
	clock := localtime.CivilClock(time.UTC)
	if in.Timezone != "" {
		loc, err := localtime.LoadZone(in.Timezone)
		if err != nil {
			return nil, err
		}
		clock = localtime.CivilClock(loc)
	}
	port, err := e.backends.Open(in.Backend)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "term table cancelled")
	}

	started := time.Now()
	calc := e.calculator(port)
	crossings, bounds, err := calc.YearTerms(in.Year, in.Accuracy)
	if err != nil {
		return nil, err
	}

	out := &TermsResult{
		Year:    in.Year,
		Backend: in.Backend,
		LiChun:  clock.In(bounds[0]),
		Terms:   make([]SolarTerm, len(crossings)),
	}
	for k, b := range bounds {
		out.Boundaries[k] = clock.In(b)
	}
	for i, c := range crossings {
		out.Terms[i] = SolarTerm{
			Index:     c.Index,
			Name:      e.names.Term(c.Index),
			TargetDeg: c.TargetDeg,
			Local:     clock.In(c.UT),
		}
	}
	logger.C(ctx).Debug().
		Str("component", "chart").
		Int("year", in.Year).
		Int("terms", len(out.Terms)).
		Dur("took", time.Since(started)).
		Msg("term table computed")
	return out, nil
}
