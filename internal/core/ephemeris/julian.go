package ephemeris

import (
	"math"
	"time"
)

const (
	// UnixEpochJD is the Julian day of 1970-01-01T00:00:00Z
	UnixEpochJD = 2440587.5
	// J2000 is the Julian day of 2000-01-01T12:00:00 TT
	J2000 = 2451545.0

	secondsPerDay = 86400
)

// JulianDay converts an instant to a Julian day in the same time scale
func JulianDay(t time.Time) float64 {
	sec := t.Unix()
	nsec := t.Nanosecond()
	return UnixEpochJD + float64(sec)/secondsPerDay + float64(nsec)/(secondsPerDay*1e9)
}

// TimeFromJulianDay converts a Julian day to a UTC instant rounded to the microsecond
// A float64 Julian day near the present resolves about 50 microseconds, so finer digits carry no information
func TimeFromJulianDay(jd float64) time.Time {
	days := jd - UnixEpochJD
	whole := math.Floor(days)
	micros := math.Round((days - whole) * secondsPerDay * 1e6)
	return time.Unix(int64(whole)*secondsPerDay, 0).Add(time.Duration(micros) * time.Microsecond).UTC()
}

// Days converts a duration to fractional days
func Days(d time.Duration) float64 { return d.Seconds() / secondsPerDay }

// DurationFromDays converts fractional days to a duration rounded to the nanosecond
func DurationFromDays(days float64) time.Duration {
	return time.Duration(math.Round(days * secondsPerDay * 1e9))
}
