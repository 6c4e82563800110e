// Package ephemeris defines the capability set the chart engine needs from a solar ephemeris
// together with the angle and Julian day helpers shared by every provider
package ephemeris

import "time"

// Port is the ephemeris capability consumed by the crossing finder and the chart engine
// Implementations must be safe for concurrent reads
type Port interface {
	// SunLongitude returns the apparent geocentric ecliptic longitude of the Sun in [0,360) at UT instant t
	SunLongitude(t time.Time) float64

	// DeltaT returns TT minus UT in seconds at t
	DeltaT(t time.Time) float64

	// JDTT converts a Julian day in UT to one in TT
	JDTT(jdUT float64) float64

	// SolarCrossing is an optional direct solver for the first instant at or after start
	// where the Sun reaches target; ok=false makes callers fall back to bracketing
	SolarCrossing(target float64, start time.Time) (t time.Time, ok bool)
}

// Sampler reduces a Port to its longitude signal
func Sampler(p Port) func(time.Time) float64 { return p.SunLongitude }
