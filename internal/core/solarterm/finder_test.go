package solarterm

import (
	"math"
	"testing"
	"time"

	"bazi/internal/core/ephemeris"
	"bazi/internal/core/ephemeris/vsop87"
	perr "bazi/internal/platform/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// linear returns a sampler that starts at base degrees at epoch and advances rate degrees per day
func linear(base, rate float64) Sampler {
	return func(t time.Time) float64 {
		return ephemeris.Norm360(base + rate*ephemeris.Days(t.Sub(epoch)))
	}
}

func TestFindLinearSignal(t *testing.T) {
	f := NewFinder(linear(300, 1), nil)
	got, err := f.Find(315, epoch, time.Second, DefaultMaxSpan)
	require.NoError(t, err)
	assert.WithinDuration(t, epoch.Add(15*24*time.Hour), got, time.Second)
}

func TestFindSkipsWrapSeam(t *testing.T) {
	// residual starts at +10, passes the +-180 seam after 17 days and reaches zero after 35
	f := NewFinder(linear(10, 10), nil)
	got, err := f.Find(0, epoch, time.Second, DefaultMaxSpan)
	require.NoError(t, err)
	assert.WithinDuration(t, epoch.Add(35*24*time.Hour), got, time.Second)
}

func TestFindAcrossZero(t *testing.T) {
	f := NewFinder(linear(355.5, 1), nil)
	got, err := f.Find(0, epoch, time.Millisecond, DefaultMaxSpan)
	require.NoError(t, err)
	assert.WithinDuration(t, epoch.Add(108*time.Hour), got, time.Millisecond)
}

func TestFindExactStart(t *testing.T) {
	f := NewFinder(linear(45, 1), nil)
	got, err := f.Find(45, epoch, time.Second, DefaultMaxSpan)
	require.NoError(t, err)
	assert.Equal(t, epoch, got)
}

func TestFindTrustsDirectSolver(t *testing.T) {
	want := epoch.Add(12345 * time.Second)
	calls := 0
	f := NewFinder(func(time.Time) float64 { calls++; return 0 }, func(float64, time.Time) (time.Time, bool) {
		return want, true
	})
	got, err := f.Find(315, epoch, time.Second, DefaultMaxSpan)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Zero(t, calls)
}

func TestFindFallsBackWhenDirectDeclines(t *testing.T) {
	f := NewFinder(linear(300, 1), func(float64, time.Time) (time.Time, bool) { return time.Time{}, false })
	got, err := f.Find(310, epoch, time.Second, DefaultMaxSpan)
	require.NoError(t, err)
	assert.WithinDuration(t, epoch.Add(10*24*time.Hour), got, time.Second)
}

func TestFindBracketingError(t *testing.T) {
	f := NewFinder(func(time.Time) float64 { return 100 }, nil)
	_, err := f.Find(0, epoch, time.Second, DefaultMaxSpan)
	require.Error(t, err)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeBracketing))

	// target too far ahead for the span
	f = NewFinder(linear(0, 1), nil)
	_, err = f.Find(90, epoch, time.Second, 30*24*time.Hour)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeBracketing))
}

func TestFindRejectsNonPositiveAccuracy(t *testing.T) {
	f := NewFinder(linear(0, 1), nil)
	_, err := f.Find(10, epoch, 0, DefaultMaxSpan)
	require.Error(t, err)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeInvalidArgument))
}

func TestFindResidualBound(t *testing.T) {
	p := vsop87.New()
	f := FinderFor(p)
	const maxRate = 1.02 // degrees per day, upper bound of the apparent motion
	prevBound := math.Inf(1)
	for _, acc := range []time.Duration{time.Hour, time.Minute, time.Second, time.Millisecond} {
		got, err := f.Find(315, epoch, acc, DefaultMaxSpan)
		require.NoError(t, err)
		res := math.Abs(ephemeris.Wrap180(p.SunLongitude(got) - 315))
		bound := ephemeris.Days(acc)*maxRate + 1e-9
		assert.LessOrEqual(t, res, bound, "accuracy %s", acc)
		assert.LessOrEqual(t, res, prevBound, "accuracy %s", acc)
		prevBound = bound
	}
}

func TestFindBisectionAgreesWithDirect(t *testing.T) {
	plain := FinderFor(vsop87.New())
	direct := FinderFor(vsop87.New(vsop87.WithDirectSolver()))
	for _, target := range []float64{0, 15, 90, 180, 270, 315, 345} {
		a, err := plain.Find(target, epoch, time.Second, 400*24*time.Hour)
		require.NoError(t, err)
		b, err := direct.Find(target, epoch, time.Second, 400*24*time.Hour)
		require.NoError(t, err)
		assert.WithinDuration(t, a, b, 2*time.Second, "target %v", target)
	}
}
