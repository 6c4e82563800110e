package solarterm

import (
	"sort"
	"time"

	"bazi/internal/core/ephemeris"
	perr "bazi/internal/platform/errors"
)

const (
	// LiChunDeg is the solar longitude opening the solar year
	LiChunDeg = 315.0

	// DefaultNudge moves each boundary search past the previous root
	DefaultNudge = 86400 * time.Microsecond // 1e-6 day

	meanRate   = 360 / 365.2422 // degrees per day
	seedMargin = 10 * 24 * time.Hour
)

// Boundaries holds Li-Chun followed by the twelve jie crossings after it, strictly increasing
type Boundaries [13]time.Time

// Slice returns the boundaries as a slice
func (b Boundaries) Slice() []time.Time { return b[:] }

// Crossing is one solar term instant
type Crossing struct {
	Index     int       `json:"index"`
	TargetDeg float64   `json:"target_deg"`
	UT        time.Time `json:"utc"`
}

// Calculator derives year and month boundaries from a Finder
type Calculator struct {
	finder *Finder
	sample Sampler
	nudge  time.Duration
}

// Option configures a Calculator
type Option func(*Calculator)

// WithNudge sets the gap left after a found boundary before the next search starts
func WithNudge(d time.Duration) Option {
	return func(c *Calculator) {
		if d > 0 {
			c.nudge = d
		}
	}
}

// NewCalculator builds a calculator over an ephemeris port
func NewCalculator(p ephemeris.Port, opts ...Option) *Calculator {
	c := &Calculator{finder: FinderFor(p), sample: p.SunLongitude, nudge: DefaultNudge}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Nudge returns the configured nudge
func (c *Calculator) Nudge() time.Duration { return c.nudge }

// LiChun returns the 315 degree crossing of the given Gregorian year, searched from 1 January 00:00 UT
func (c *Calculator) LiChun(year int, accuracy time.Duration) (time.Time, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return c.finder.Find(LiChunDeg, start, accuracy, DefaultMaxSpan)
}

// MonthBoundaries returns lichun followed by the crossings of 315+30k degrees for k = 1..12
func (c *Calculator) MonthBoundaries(lichun time.Time, accuracy time.Duration) (Boundaries, error) {
	var b Boundaries
	b[0] = lichun
	cursor := lichun.Add(c.nudge)
	for k := 1; k <= 12; k++ {
		target := ephemeris.Norm360(LiChunDeg + 30*float64(k))
		t, err := c.finder.Find(target, cursor, accuracy, DefaultMaxSpan)
		if err != nil {
			return Boundaries{}, err
		}
		if !t.After(b[k-1]) {
			return Boundaries{}, perr.WithField(
				perr.Bracketingf("boundary %d at %s does not follow %s", k, t.Format(time.RFC3339Nano), b[k-1].Format(time.RFC3339Nano)),
				"target_deg",
			)
		}
		b[k] = t
		cursor = t.Add(c.nudge)
	}
	return b, nil
}

// TermsInWindow returns the first crossing of each of the 24 terms found from start,
// kept when it falls within [start,end] and sorted by instant
// The search opens one accuracy before start so a term computed at start itself is not lost to rounding
func (c *Calculator) TermsInWindow(start, end time.Time, accuracy time.Duration) ([]Crossing, error) {
	if accuracy <= 0 {
		return nil, perr.WithField(perr.InvalidArgf("accuracy must be positive, got %s", accuracy), "accuracy_seconds")
	}
	from := start.Add(-accuracy)
	lon := c.sample(from)
	out := make([]Crossing, 0, 24)
	for idx := 0; idx < 24; idx++ {
		target := 15 * float64(idx)
		t, err := c.finder.Find(target, c.seed(from, lon, target), accuracy, WindowSpan)
		if err != nil {
			return nil, err
		}
		if t.Before(from) || t.After(end) {
			continue
		}
		out = append(out, Crossing{Index: idx, TargetDeg: target, UT: t})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UT.Before(out[j].UT) })
	return out, nil
}

// seed places a search start shortly before the mean-motion estimate of the crossing, never before from
func (c *Calculator) seed(from time.Time, lon, target float64) time.Time {
	lead := ephemeris.DurationFromDays(ephemeris.Norm360(target-lon)/meanRate) - seedMargin
	if lead <= 0 {
		return from
	}
	return from.Add(lead)
}

// YearTerms returns the 24 terms between the Li-Chun of year and the next one
func (c *Calculator) YearTerms(year int, accuracy time.Duration) ([]Crossing, Boundaries, error) {
	lichun, err := c.LiChun(year, accuracy)
	if err != nil {
		return nil, Boundaries{}, err
	}
	b, err := c.MonthBoundaries(lichun, accuracy)
	if err != nil {
		return nil, Boundaries{}, err
	}
	terms, err := c.TermsInWindow(b[0], b[12], accuracy)
	if err != nil {
		return nil, b, err
	}
	return terms, b, nil
}
