package vsop87

import (
	"time"

	"bazi/internal/core/ephemeris"
)

const (
	// Name is the registry name of the provider without a direct solver
	Name = "vsop87"
	// DirectName is the registry name of the provider with the Newton direct solver
	DirectName = "vsop87-direct"

	// meanRate is the mean motion of the Sun in degrees per day
	meanRate = 360 / 365.2422

	newtonMaxIter = 30
	newtonTol     = time.Millisecond
	rateHalfStep  = time.Hour
)

// Provider implements ephemeris.Port; it holds no mutable state
type Provider struct {
	direct bool
}

// Option configures a Provider
type Option func(*Provider)

// WithDirectSolver enables SolarCrossing
func WithDirectSolver() Option { return func(p *Provider) { p.direct = true } }

// New returns a provider
func New(opts ...Option) *Provider {
	p := &Provider{}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Register installs both flavours of the provider
func Register(r *ephemeris.Registry) {
	plain, direct := New(), New(WithDirectSolver())
	r.Register(Name, func() (ephemeris.Port, error) { return plain, nil })
	r.Register(DirectName, func() (ephemeris.Port, error) { return direct, nil })
}

// SunLongitude implements ephemeris.Port
func (p *Provider) SunLongitude(t time.Time) float64 {
	jde := ephemeris.JulianDay(t) + p.DeltaT(t)/86400
	return SunAt(jde).Longitude
}

// DeltaT implements ephemeris.Port
func (p *Provider) DeltaT(t time.Time) float64 { return DeltaT(DecimalYear(t)) }

// JDTT implements ephemeris.Port
func (p *Provider) JDTT(jdUT float64) float64 {
	return jdUT + p.DeltaT(ephemeris.TimeFromJulianDay(jdUT))/86400
}

// SolarCrossing implements ephemeris.Port with Newton iteration seeded by the mean motion
// Reports ok=false when disabled, when the iteration does not settle, or when it settles before start
func (p *Provider) SolarCrossing(target float64, start time.Time) (time.Time, bool) {
	if !p.direct {
		return time.Time{}, false
	}
	ahead := ephemeris.Norm360(target - p.SunLongitude(start))
	t := start.Add(ephemeris.DurationFromDays(ahead / meanRate))
	for i := 0; i < newtonMaxIter; i++ {
		res := ephemeris.Wrap180(target - p.SunLongitude(t))
		step := ephemeris.DurationFromDays(res / p.rate(t))
		t = t.Add(step)
		if step.Abs() <= newtonTol {
			if t.Before(start) {
				return time.Time{}, false
			}
			return t, true
		}
	}
	return time.Time{}, false
}

// rate is the apparent motion in degrees per day around t
func (p *Provider) rate(t time.Time) float64 {
	d := ephemeris.Wrap180(p.SunLongitude(t.Add(rateHalfStep)) - p.SunLongitude(t.Add(-rateHalfStep)))
	return d / ephemeris.Days(2*rateHalfStep)
}
