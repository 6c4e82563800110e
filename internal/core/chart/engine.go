package chart

import (
	"context"
	"math"
	"time"

	"bazi/internal/core/ephemeris"
	"bazi/internal/core/localtime"
	"bazi/internal/core/sexagenary"
	"bazi/internal/core/solarterm"
	perr "bazi/internal/platform/errors"
	"bazi/internal/platform/logger"
)

// Engine computes charts; it holds only immutable configuration and is safe for concurrent use
type Engine struct {
	backends       *ephemeris.Registry
	defaultBackend string
	nudge          time.Duration
	names          sexagenary.Names
}

// Option configures an Engine
type Option func(*Engine)

// WithDefaultBackend selects the backend used when Input.Backend is empty
func WithDefaultBackend(name string) Option { return func(e *Engine) { e.defaultBackend = name } }

// WithNudge sets the gap between a found month boundary and the next search
func WithNudge(d time.Duration) Option { return func(e *Engine) { e.nudge = d } }

// WithNames sets the script used for solar term names on results
func WithNames(n sexagenary.Names) Option { return func(e *Engine) { e.names = n } }

// New builds an engine over a backend registry
func New(backends *ephemeris.Registry, opts ...Option) *Engine {
	e := &Engine{
		backends:       backends,
		defaultBackend: "vsop87",
		nudge:          solarterm.DefaultNudge,
		names:          sexagenary.NamesFor(sexagenary.Pinyin),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// DefaultBackend returns the backend used when a request names none
func (e *Engine) DefaultBackend() string { return e.defaultBackend }

// Backends lists the registered backend names
func (e *Engine) Backends() []string { return e.backends.Names() }

// Ping opens the default backend and evaluates it once
// It backs the readiness probe; a NaN or out of range longitude means the backend is unusable
func (e *Engine) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "ping cancelled")
	}
	p, err := e.backends.Open(e.defaultBackend)
	if err != nil {
		return err
	}
	if lon := p.SunLongitude(time.Now()); math.IsNaN(lon) || lon < 0 || lon >= 360 {
		return perr.Unavailablef("backend %q returned longitude %v", e.defaultBackend, lon)
	}
	return nil
}

func (e *Engine) calculator(p ephemeris.Port) *solarterm.Calculator {
	return solarterm.NewCalculator(p, solarterm.WithNudge(e.nudge))
}

// run carries the state threaded through the stages
type run struct {
	in     Input
	port   ephemeris.Port
	calc   *solarterm.Calculator
	offset sexagenary.Offset

	zoned time.Time
	ct    localtime.ChartTime

	lichunThis time.Time
	lichun     time.Time
	solarYear  int
	bounds     solarterm.Boundaries
	monthIndex int

	pillars sexagenary.FourPillars
}

// Compute runs every stage in order and returns the chart, or the first fatal error tagged with its stage
func (e *Engine) Compute(ctx context.Context, in Input) (*Result, error) {
	started := time.Now()
	r := &run{}

	if err := e.parseInput(in, r); err != nil {
		return nil, fail(StageParseInput, err)
	}
	key := Key(r.in)
	log := logger.C(logger.WithChartKey(ctx, key)).With().Str("component", "chart").Logger()

	stages := []struct {
		stage Stage
		fn    func(*run) error
	}{
		{StageResolveLocalTime, resolveLocalTime},
		{StageLocateLichun, locateLichun},
		{StageDeriveYear, deriveYear},
		{StageComputeMonthBoundaries, computeMonthBoundaries},
		{StageComputeMonthPillar, computeMonthPillar},
		{StageComputeDayPillar, computeDayPillar},
		{StageComputeHourPillar, computeHourPillar},
	}
	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return nil, fail(s.stage, perr.Wrap(err, perr.ErrorCodeUnavailable, "chart computation cancelled"))
		}
		t0 := time.Now()
		if err := s.fn(r); err != nil {
			log.Debug().Err(err).Str("stage", string(s.stage)).Msg("chart stage failed")
			return nil, fail(s.stage, err)
		}
		log.Trace().Str("stage", string(s.stage)).Dur("took", time.Since(t0)).Msg("chart stage done")
	}

	res := e.assemble(r, key)

	// best effort: a failed window leaves the chart intact
	terms, err := r.calc.TermsInWindow(r.bounds[0], r.bounds[12], r.in.Accuracy)
	if err != nil {
		res.Diagnostics.SolarTermsError = fail(StageComputeSolarTerms, err).Error()
		log.Warn().Err(err).Str("stage", string(StageComputeSolarTerms)).Msg("solar term window unavailable")
	} else {
		res.SolarTerms = make([]SolarTerm, len(terms))
		for i, c := range terms {
			res.SolarTerms[i] = SolarTerm{
				Index:     c.Index,
				Name:      e.names.Term(c.Index),
				TargetDeg: c.TargetDeg,
				Local:     r.ct.In(c.UT),
			}
		}
	}

	log.Debug().
		Str("pillars", r.pillars.String()).
		Int("solar_year", r.solarYear).
		Int("month_index", r.monthIndex).
		Dur("took", time.Since(started)).
		Msg("chart computed")
	return res, nil
}

// fail tags err with the stage unless an earlier stage already claimed it
func fail(stage Stage, err error) error {
	if _, ok := perr.As(err); !ok {
		err = perr.Wrap(err, perr.ErrorCodeUnknown, string(stage)+" failed")
	}
	return perr.WithOpIfEmpty(err, string(stage))
}

// parseInput applies defaults and checks configuration before any numerical work
func (e *Engine) parseInput(in Input, r *run) error {
	if in.Backend == "" {
		in.Backend = e.defaultBackend
	}
	if in.Accuracy == 0 {
		in.Accuracy = DefaultAccuracy
	}
	if in.Accuracy < 0 {
		return perr.WithField(perr.InvalidArgf("accuracy must be positive, got %s", in.Accuracy), "accuracy_seconds")
	}
	std, err := localtime.ParseStandard(string(in.Standard))
	if err != nil {
		return err
	}
	in.Standard = std
	boundary, err := localtime.ParseDayBoundary(string(in.DayBoundary))
	if err != nil {
		return err
	}
	in.DayBoundary = boundary
	if in.Fold != localtime.Earlier && in.Fold != localtime.Later {
		return perr.WithField(perr.Configf("fold must be 0 or 1, got %d", in.Fold), "fold")
	}
	if math.IsNaN(in.Longitude) || in.Longitude < -180 || in.Longitude > 180 {
		return perr.WithField(perr.InvalidArgf("longitude %v outside [-180,180]", in.Longitude), "longitude_deg")
	}
	if math.IsNaN(in.Latitude) || in.Latitude < -90 || in.Latitude > 90 {
		return perr.WithField(perr.InvalidArgf("latitude %v outside [-90,90]", in.Latitude), "latitude_deg")
	}

	r.offset = sexagenary.DefaultOffset
	if in.Anchor != nil {
		off, err := sexagenary.OffsetFromAnchor(*in.Anchor)
		if err != nil {
			return err
		}
		r.offset = off
	}

	port, err := e.backends.Open(in.Backend)
	if err != nil {
		return err
	}
	r.in = in
	r.port = port
	r.calc = e.calculator(port)
	return nil
}

func resolveLocalTime(r *run) error {
	zoned, err := localtime.Resolve(localtime.Request{
		Literal: r.in.BirthLocal,
		Zone:    r.in.Timezone,
		Strict:  r.in.Strict,
		Fold:    r.in.Fold,
	})
	if err != nil {
		return err
	}
	r.zoned = zoned
	r.ct = localtime.ToChartLocal(zoned, r.in.Longitude, r.in.Standard)
	return nil
}

// locateLichun finds the Li-Chun of the chart-local year and, when the chart precedes it, of the year before
func locateLichun(r *run) error {
	y := r.ct.Wall().Year()
	this, err := r.calc.LiChun(y, r.in.Accuracy)
	if err != nil {
		return perr.WithField(err, "birth_local")
	}
	r.lichunThis = this
	r.lichun, r.solarYear = this, y
	if r.ct.Before(this) {
		prev, err := r.calc.LiChun(y-1, r.in.Accuracy)
		if err != nil {
			return perr.WithField(err, "birth_local")
		}
		r.lichun, r.solarYear = prev, y-1
	}
	return nil
}

func deriveYear(r *run) error {
	r.pillars.Year = sexagenary.YearPillar(r.solarYear)
	return nil
}

func computeMonthBoundaries(r *run) error {
	b, err := r.calc.MonthBoundaries(r.lichun, r.in.Accuracy)
	if err != nil {
		return err
	}
	r.bounds = b
	return nil
}

func computeMonthPillar(r *run) error {
	r.monthIndex = sexagenary.MonthIndex(r.bounds.Slice(), r.ct.UTC)
	r.pillars.Month = sexagenary.MonthPillar(r.pillars.Year.Stem, r.monthIndex)
	return nil
}

func computeDayPillar(r *run) error {
	d := localtime.ApplyDayBoundary(r.ct, r.in.DayBoundary)
	r.pillars.Day = sexagenary.DayPillar(d.Year(), d.Month(), d.Day(), r.offset)
	return nil
}

func computeHourPillar(r *run) error {
	hb := sexagenary.HourBranch(r.ct.Wall().Hour())
	r.pillars.Hour = sexagenary.HourPillar(r.pillars.Day.Stem, hb)
	return nil
}

// assemble copies the run state into an immutable result
func (e *Engine) assemble(r *run, key string) *Result {
	jdUT := ephemeris.JulianDay(r.ct.UTC)
	res := &Result{
		Input:         r.in,
		Key:           key,
		Backend:       r.in.Backend,
		Pillars:       r.pillars,
		BirthLocal:    r.zoned,
		BirthUTC:      r.ct.UTC,
		ChartLocal:    r.ct,
		JDUT:          jdUT,
		JDTT:          r.port.JDTT(jdUT),
		DeltaTSeconds: r.port.DeltaT(r.ct.UTC),
		SolarYear:     r.solarYear,
		LiChun:        r.ct.In(r.lichun),
		MonthIndex:    r.monthIndex,
		DayOffset:     r.offset,
	}
	for k, b := range r.bounds {
		res.MonthBoundaries[k] = r.ct.In(b)
	}
	return res
}
