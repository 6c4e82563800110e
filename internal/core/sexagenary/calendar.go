package sexagenary

import (
	"time"

	perr "bazi/internal/platform/errors"
)

// DefaultOffset aligns JDN so that 1912-02-18 and 1949-10-01 are JiaZi (index 0)
const DefaultOffset Offset = 49

// yearEpoch is a JiaZi year
const yearEpoch = 1984

// Offset is the day-cycle offset added to a Julian day number, always in [0,59]
type Offset int

// Anchor pins a civil date to a position of the 60 day cycle
type Anchor struct {
	Year  int
	Month time.Month
	Day   int
	Index int
}

// ParseAnchor reads an anchor date in YYYY-MM-DD form
func ParseAnchor(date string, index int) (Anchor, error) {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return Anchor{}, perr.WithField(perr.Wrapf(err, perr.ErrorCodeConfiguration, "invalid anchor date %q", date), "day_anchor_date")
	}
	return Anchor{Year: t.Year(), Month: t.Month(), Day: t.Day(), Index: index}, nil
}

// JDN returns the Julian day number of a proleptic Gregorian date using integer arithmetic only
func JDN(year int, month time.Month, day int) int {
	m := int(month)
	a := floorDiv(14-m, 12)
	y := year + 4800 - a
	mm := m + 12*a - 3
	return day + floorDiv(153*mm+2, 5) + 365*y + floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400) - 32045
}

// DayIndex returns the 60 cycle position of the day with the given JDN
func DayIndex(jdn int, off Offset) int { return mod(jdn+int(off), CycleLength) }

// DayPillar returns the day pillar of a civil date
func DayPillar(year int, month time.Month, day int, off Offset) Pillar {
	return FromIndex60(DayIndex(JDN(year, month, day), off))
}

// OffsetFromAnchor derives the offset that puts the anchor date at the anchor index
func OffsetFromAnchor(a Anchor) (Offset, error) {
	if a.Index < 0 || a.Index >= CycleLength {
		return 0, perr.WithField(perr.Configf("anchor index %d outside [0,59]", a.Index), "day_anchor_index")
	}
	if a.Month < time.January || a.Month > time.December || a.Day < 1 || a.Day > 31 {
		return 0, perr.WithField(perr.Configf("invalid anchor date %04d-%02d-%02d", a.Year, a.Month, a.Day), "day_anchor_date")
	}
	return Offset(mod(a.Index-JDN(a.Year, a.Month, a.Day), CycleLength)), nil
}

// YearPillar returns the pillar of a solar year (a year that starts at Li-Chun)
func YearPillar(solarYear int) Pillar { return FromIndex60(solarYear - yearEpoch) }

// MonthPillar returns the pillar of month m (0 = the month opened by Li-Chun) for a year with stem yearStem
func MonthPillar(yearStem, m int) Pillar {
	return Pillar{Stem: mod(2*yearStem+2+m, StemCount), Branch: mod(2+m, BranchCount)}
}

// MonthIndex locates t within bounds[k] <= t < bounds[k+1] and returns k
// Falls back to the last month when no interval contains t
func MonthIndex(bounds []time.Time, t time.Time) int {
	for k := 0; k+1 < len(bounds); k++ {
		if !t.Before(bounds[k]) && t.Before(bounds[k+1]) {
			return k
		}
	}
	return 11
}

// HourBranch maps a civil hour to its double-hour branch; branch 0 covers 23:00 to 01:00
func HourBranch(hour int) int { return mod(floorDiv(hour+1, 2), BranchCount) }

// HourPillar returns the hour pillar for a day stem and hour branch
func HourPillar(dayStem, hourBranch int) Pillar {
	return Pillar{Stem: mod(2*dayStem+hourBranch, StemCount), Branch: mod(hourBranch, BranchCount)}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
