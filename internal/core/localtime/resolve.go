package localtime

import (
	"time"

	perr "bazi/internal/platform/errors"
)

// Fold picks one of two instants when a wall clock reading repeats
type Fold int

const (
	// Earlier selects the first occurrence, or the pre-transition offset inside a gap
	Earlier Fold = 0
	// Later selects the second occurrence, or the post-transition offset inside a gap
	Later Fold = 1
)

// Request is a naive civil timestamp to be pinned to an instant
type Request struct {
	Literal string
	Zone    string
	Strict  bool
	Fold    Fold
}

// probe is how far either side of a wall clock we look for the offsets in force
const probe = 24 * time.Hour

// Resolve pins the literal to an instant in the named zone
// In strict mode the instant must convert back to the same wall clock, which rejects
// readings inside a spring-forward gap; repeated readings resolve per fold and pass
func Resolve(req Request) (time.Time, error) {
	if req.Fold != Earlier && req.Fold != Later {
		return time.Time{}, perr.WithField(perr.Configf("fold must be 0 or 1, got %d", req.Fold), "fold")
	}
	loc, err := LoadZone(req.Zone)
	if err != nil {
		return time.Time{}, err
	}
	wall, err := ParseLiteral(req.Literal)
	if err != nil {
		return time.Time{}, err
	}

	t := resolveWall(wall, loc, req.Fold)
	if req.Strict && !sameWall(t, wall) {
		return time.Time{}, perr.WithField(perr.TimeResolutionf(
			"nonexistent or normalized local time for zone %s: %s; round-trip became %s",
			loc.String(), req.Literal, t.Format(time.RFC3339Nano),
		), "birth_local")
	}
	return t, nil
}

// Candidates returns every instant whose wall clock in loc equals wall, in chronological order
// The result has two entries inside a fall-back overlap and none inside a gap
func Candidates(wall time.Time, loc *time.Location) []time.Time {
	before, after := offsetAt(wall.Add(-probe), loc), offsetAt(wall.Add(probe), loc)
	offsets := []int{before}
	if after != before {
		offsets = append(offsets, after)
	}
	var out []time.Time
	for _, off := range offsets {
		u := wall.Add(-time.Duration(off) * time.Second)
		if offsetAt(u, loc) == off {
			out = append(out, u.In(loc))
		}
	}
	if len(out) == 2 && out[1].Before(out[0]) {
		out[0], out[1] = out[1], out[0]
	}
	return out
}

// resolveWall applies the fold to the candidates, or to the offsets around a gap
func resolveWall(wall time.Time, loc *time.Location, fold Fold) time.Time {
	c := Candidates(wall, loc)
	switch len(c) {
	case 1:
		return c[0]
	case 2:
		return c[fold]
	}
	off := offsetAt(wall.Add(-probe), loc)
	if fold == Later {
		off = offsetAt(wall.Add(probe), loc)
	}
	return wall.Add(-time.Duration(off) * time.Second).In(loc)
}

// offsetAt is the zone offset in seconds at instant u
func offsetAt(u time.Time, loc *time.Location) int {
	_, off := u.In(loc).Zone()
	return off
}

// sameWall reports whether t shows the wall clock fields of wall
func sameWall(t, wall time.Time) bool {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := wall.Date()
	return y1 == y2 && m1 == m2 && d1 == d2 &&
		t.Hour() == wall.Hour() && t.Minute() == wall.Minute() &&
		t.Second() == wall.Second() && t.Nanosecond() == wall.Nanosecond()
}
