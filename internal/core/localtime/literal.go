// Package localtime turns naive civil timestamps into instants and derives chart-local time
package localtime

import (
	"strings"
	"sync"
	"time"

	"bazi/internal/core/normalize"
	perr "bazi/internal/platform/errors"
)

// naive layouts, most specific first; a trailing .999999999 accepts an optional fraction
var layouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	time.DateOnly,
}

// ParseLiteral reads a naive ISO timestamp and returns its wall clock fields in UTC
func ParseLiteral(literal string) (time.Time, error) {
	s := normalize.Literal(literal)
	if s == "" {
		return time.Time{}, perr.WithField(perr.InvalidArgf("empty local timestamp"), "birth_local")
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, perr.WithField(
		perr.InvalidArgf("local timestamp %q is not a naive ISO date or date-time", literal),
		"birth_local",
	)
}

var zones sync.Map // normalized name -> *time.Location

// LoadZone resolves an IANA zone name
// The empty name and "Local" are refused so results never depend on the host
func LoadZone(name string) (*time.Location, error) {
	key := normalize.Zone(name)
	if v, ok := zones.Load(key); ok {
		return v.(*time.Location), nil
	}
	if key == "" || strings.EqualFold(key, "Local") {
		return nil, perr.WithField(perr.Configf("time zone %q is not an IANA zone name", name), "timezone")
	}
	loc, err := time.LoadLocation(key)
	if err != nil {
		return nil, perr.WithField(perr.Wrapf(err, perr.ErrorCodeConfiguration, "unknown time zone %q", name), "timezone")
	}
	zones.Store(key, loc)
	return loc, nil
}
