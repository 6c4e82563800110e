// Package solarterm locates solar longitude crossings and derives the Li-Chun year start,
// the twelve month boundaries and the 24 term table from them
package solarterm

import (
	"math"
	"time"

	"bazi/internal/core/ephemeris"
	perr "bazi/internal/platform/errors"
)

const (
	// SweepStep is the bracketing step of the fallback search
	SweepStep = 24 * time.Hour
	// MaxBisect caps bisection independently of the requested accuracy
	MaxBisect = 80
	// DefaultMaxSpan bounds a boundary search
	DefaultMaxSpan = 40 * 24 * time.Hour
	// WindowSpan bounds each search of the 24 term table
	WindowSpan = 30 * 24 * time.Hour
)

// Sampler returns an angle in degrees that advances monotonically modulo 360
type Sampler func(t time.Time) float64

// DirectSolver returns the first instant at or after start where the signal reaches target, if it can
type DirectSolver func(target float64, start time.Time) (time.Time, bool)

// Finder locates the instant a periodic angle signal reaches a target value
// It is immutable and safe for concurrent use
type Finder struct {
	sample Sampler
	direct DirectSolver
	step   time.Duration
}

// NewFinder builds a finder over a sampler; direct may be nil
func NewFinder(sample Sampler, direct DirectSolver) *Finder {
	return &Finder{sample: sample, direct: direct, step: SweepStep}
}

// FinderFor builds a finder over the Sun longitude of an ephemeris port
func FinderFor(p ephemeris.Port) *Finder {
	return NewFinder(p.SunLongitude, p.SolarCrossing)
}

// residual is the signed shortest-path distance from target to the signal at t
func (f *Finder) residual(target float64, t time.Time) float64 {
	return ephemeris.Wrap180(f.sample(t) - target)
}

// Find returns the first crossing of target at or after start
// A direct solver answer is trusted as exact; otherwise the signal is swept in daily steps
// and the first bracket is bisected until it is no wider than accuracy
func (f *Finder) Find(target float64, start time.Time, accuracy, maxSpan time.Duration) (time.Time, error) {
	if accuracy <= 0 {
		return time.Time{}, perr.WithField(perr.InvalidArgf("accuracy must be positive, got %s", accuracy), "accuracy_seconds")
	}
	target = ephemeris.Norm360(target)

	if f.direct != nil {
		if t, ok := f.direct(target, start); ok {
			return t, nil
		}
	}

	lo := start
	rlo := f.residual(target, lo)
	steps := int(maxSpan/f.step) + 1
	for i := 0; i < steps; i++ {
		if rlo == 0 {
			return lo, nil
		}
		hi := lo.Add(f.step)
		rhi := f.residual(target, hi)
		// a sign flip across half a turn is the +-180 seam, not a root
		if rlo*rhi <= 0 && math.Abs(rhi-rlo) < 180 {
			return f.bisect(target, lo, hi, rlo, rhi, accuracy), nil
		}
		lo, rlo = hi, rhi
	}
	return time.Time{}, perr.WithField(
		perr.Bracketingf("no crossing of %.6f deg within %s after %s", target, maxSpan, start.UTC().Format(time.RFC3339Nano)),
		"target_deg",
	)
}

// bisect narrows a bracket [lo,hi] until its width is at most accuracy and returns the midpoint
func (f *Finder) bisect(target float64, lo, hi time.Time, rlo, rhi float64, accuracy time.Duration) time.Time {
	if rhi == 0 {
		return hi
	}
	for i := 0; i < MaxBisect; i++ {
		mid := lo.Add(hi.Sub(lo) / 2)
		if hi.Sub(lo) <= accuracy {
			return mid
		}
		rmid := f.residual(target, mid)
		if rlo*rmid <= 0 {
			hi = mid
		} else {
			lo, rlo = mid, rmid
		}
	}
	return lo.Add(hi.Sub(lo) / 2)
}
