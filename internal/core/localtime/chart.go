package localtime

import (
	"fmt"
	"math"
	"strings"
	"time"

	perr "bazi/internal/platform/errors"
)

// Standard selects the clock a chart is read on
type Standard string

const (
	// Civil reads the chart on the zone's civil clock
	Civil Standard = "CIVIL"
	// LMT reads the chart on local mean time at the birth longitude
	LMT Standard = "LMT"
)

// ParseStandard accepts CIVIL or LMT in any case; empty means CIVIL
func ParseStandard(s string) (Standard, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(Civil):
		return Civil, nil
	case string(LMT):
		return LMT, nil
	}
	return "", perr.WithField(perr.Configf("time standard must be CIVIL or LMT, got %q", s), "time_standard")
}

// DayBoundary selects when the day pillar rolls over
type DayBoundary string

const (
	// Midnight rolls the day at 00:00
	Midnight DayBoundary = "midnight"
	// Zi rolls the day at 23:00, the start of the Zi double-hour
	Zi DayBoundary = "zi"
)

// ParseDayBoundary accepts midnight or zi in any case; empty means midnight
func ParseDayBoundary(s string) (DayBoundary, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(Midnight):
		return Midnight, nil
	case string(Zi):
		return Zi, nil
	}
	return "", perr.WithField(perr.Configf("day boundary must be midnight or zi, got %q", s), "day_boundary")
}

// ChartTime is the instant a chart is read at together with the clock offset it is read on
// Offsets are kept as durations since local mean time is not a whole number of seconds
type ChartTime struct {
	UTC      time.Time
	Offset   time.Duration
	Standard Standard
	Zone     *time.Location // civil zone; nil under LMT
}

// LMTOffset is longitude x 240 s, four minutes per degree east
func LMTOffset(longitude float64) time.Duration {
	return time.Duration(math.Round(longitude * 240 * float64(time.Second)))
}

// ToChartLocal derives the chart clock for a resolved civil instant
func ToChartLocal(zoned time.Time, longitude float64, std Standard) ChartTime {
	utc := zoned.UTC()
	if std == LMT {
		return ChartTime{UTC: utc, Offset: LMTOffset(longitude), Standard: LMT}
	}
	_, off := zoned.Zone()
	return ChartTime{UTC: utc, Offset: time.Duration(off) * time.Second, Standard: Civil, Zone: zoned.Location()}
}

// Wall returns the naive wall clock of the chart, expressed in UTC fields
func (c ChartTime) Wall() time.Time { return c.UTC.Add(c.Offset) }

// In expresses another instant on the same chart clock
func (c ChartTime) In(u time.Time) ChartTime {
	if c.Standard == LMT || c.Zone == nil {
		return ChartTime{UTC: u.UTC(), Offset: c.Offset, Standard: c.Standard}
	}
	_, off := u.In(c.Zone).Zone()
	return ChartTime{UTC: u.UTC(), Offset: time.Duration(off) * time.Second, Standard: c.Standard, Zone: c.Zone}
}

// Before reports whether c is earlier than u as an instant
func (c ChartTime) Before(u time.Time) bool { return c.UTC.Before(u) }

// String renders the wall clock with its offset, e.g. 2024-02-04T23:15:11.088-00:14:48.912
func (c ChartTime) String() string {
	return c.Wall().Format("2006-01-02T15:04:05.999999999") + FormatOffset(c.Offset)
}

// MarshalText renders the same form as String
func (c ChartTime) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// FormatOffset renders an offset as +HH:MM, adding seconds and fractions only when present
func FormatOffset(d time.Duration) string {
	sign := '+'
	if d < 0 {
		sign = '-'
		d = -d
	}
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	rest := d % time.Minute
	out := fmt.Sprintf("%c%02d:%02d", sign, h, m)
	if rest == 0 {
		return out
	}
	sec := rest / time.Second
	frac := rest % time.Second
	out += fmt.Sprintf(":%02d", sec)
	if frac != 0 {
		out += strings.TrimRight(fmt.Sprintf(".%09d", frac), "0")
	}
	return out
}

// ApplyDayBoundary returns the wall clock whose calendar date names the day pillar
func ApplyDayBoundary(c ChartTime, mode DayBoundary) time.Time {
	w := c.Wall()
	if mode == Zi {
		return w.Add(time.Hour)
	}
	return w
}

// CivilClock is a chart clock that reads instants on the civil time of loc
func CivilClock(loc *time.Location) ChartTime {
	return ChartTime{Standard: Civil, Zone: loc}
}
