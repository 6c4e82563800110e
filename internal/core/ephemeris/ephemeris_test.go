package ephemeris

import (
	"errors"
	"math"
	"testing"
	"time"

	perr "bazi/internal/platform/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNorm360(t *testing.T) {
	cases := map[float64]float64{
		0: 0, 360: 0, -15: 345, 725: 5, -720: 0, 359.5: 359.5,
	}
	for in, want := range cases {
		assert.InDelta(t, want, Norm360(in), 1e-12, "Norm360(%v)", in)
	}
	got := Norm360(-1e-15)
	assert.True(t, got >= 0 && got < 360, "tiny negative mapped to %v", got)
}

func TestWrap180(t *testing.T) {
	cases := map[float64]float64{
		0: 0, 180: 180, -180: 180, 181: -179, -181: 179, 359: -1, 10: 10, 540: 180,
	}
	for in, want := range cases {
		assert.InDelta(t, want, Wrap180(in), 1e-12, "Wrap180(%v)", in)
	}
}

func TestJulianDay(t *testing.T) {
	assert.Equal(t, UnixEpochJD, JulianDay(time.Unix(0, 0)))
	assert.InDelta(t, J2000, JulianDay(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)), 1e-9)
	// zone does not matter, only the instant
	berlin := time.FixedZone("CET", 3600)
	assert.Equal(t,
		JulianDay(time.Date(2024, 2, 10, 13, 30, 0, 0, time.UTC)),
		JulianDay(time.Date(2024, 2, 10, 14, 30, 0, 0, berlin)))
}

func TestTimeFromJulianDayRoundTrip(t *testing.T) {
	instants := []time.Time{
		time.Date(2024, 2, 4, 8, 26, 53, 123456000, time.UTC),
		time.Date(1912, 2, 18, 0, 0, 0, 0, time.UTC),
		time.Date(1969, 12, 31, 23, 59, 59, 999999000, time.UTC),
	}
	for _, in := range instants {
		got := TimeFromJulianDay(JulianDay(in))
		assert.WithinDuration(t, in, got, 100*time.Microsecond, "%s", in)
		assert.Equal(t, time.UTC, got.Location())
		assert.Zero(t, got.Nanosecond()%1000, "microsecond granularity")
	}
}

func TestDurationHelpers(t *testing.T) {
	assert.Equal(t, 1.0, Days(24*time.Hour))
	assert.Equal(t, 86400*time.Millisecond, DurationFromDays(1e-3))
	assert.InDelta(t, math.Pi, Rad(180), 1e-15)
	assert.InDelta(t, 180, Deg(math.Pi), 1e-12)
}

type fixedPort struct{ lon float64 }

func (f fixedPort) SunLongitude(time.Time) float64 { return f.lon }
func (f fixedPort) DeltaT(time.Time) float64       { return 0 }
func (f fixedPort) JDTT(jd float64) float64        { return jd }
func (f fixedPort) SolarCrossing(float64, time.Time) (time.Time, bool) {
	return time.Time{}, false
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(" Fixed ", func() (Port, error) { return fixedPort{lon: 42}, nil })
	r.Register("broken", func() (Port, error) { return nil, errors.New("no data files") })

	assert.True(t, r.Has("FIXED"))
	assert.Equal(t, []string{"broken", "fixed"}, r.Names())

	p, err := r.Open("fixed")
	require.NoError(t, err)
	assert.Equal(t, 42.0, Sampler(p)(time.Now()))

	_, err = r.Open("swisseph")
	require.Error(t, err)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeConfiguration))
	assert.Contains(t, err.Error(), "swisseph")
	e, _ := perr.As(err)
	assert.Equal(t, "ephemeris_backend", e.Field())

	_, err = r.Open("broken")
	require.Error(t, err)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeConfiguration))
}
