package chart

import (
	"strings"

	"bazi/internal/core/ephemeris"
	"bazi/internal/core/solarterm"
	"bazi/internal/platform/config"
)

// FromConfig reads engine options from cfg
// EPHEMERIS must name a registered backend; NUDGE is the step past a located boundary
func FromConfig(cfg config.Conf, backends *ephemeris.Registry) []Option {
	def := "vsop87"
	if names := backends.Names(); len(names) > 0 && !backends.Has(def) {
		def = names[0]
	}
	backend := cfg.MayEnum("EPHEMERIS", def, backends.Names()...)
	return []Option{
		WithDefaultBackend(strings.ToLower(backend)),
		WithNudge(cfg.MayDuration("NUDGE", solarterm.DefaultNudge)),
	}
}
