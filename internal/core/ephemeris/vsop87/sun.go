// Package vsop87 is the reference solar ephemeris: a truncated VSOP87 Earth theory
// with FK5, nutation and aberration corrections, and Espenak-Meeus delta T
package vsop87

import (
	"math"

	"bazi/internal/core/ephemeris"
)

// Position is the apparent geocentric position of the Sun
type Position struct {
	Longitude float64 // degrees in [0,360), apparent
	Latitude  float64 // degrees, FK5
	Radius    float64 // AU
}

// SunAt returns the apparent position of the Sun at Julian ephemeris day jde (TT)
func SunAt(jde float64) Position {
	tau := (jde - ephemeris.J2000) / 365250
	T := tau * 10

	L := earthL.eval(tau)
	B := earthB.eval(tau)
	R := earthR.eval(tau)

	// geocentric from heliocentric Earth
	theta := ephemeris.Deg(L) + 180
	beta := -ephemeris.Deg(B)

	// FK5 frame
	lp := ephemeris.Rad(theta - 1.397*T - 0.00031*T*T)
	theta += -0.09033 / 3600
	beta += 0.03916 / 3600 * (math.Cos(lp) - math.Sin(lp))

	lon := theta + nutationInLongitude(T) - 20.4898/3600/R
	return Position{Longitude: ephemeris.Norm360(lon), Latitude: beta, Radius: R}
}

// nutationInLongitude is the low precision nutation in longitude in degrees (about 0.5")
func nutationInLongitude(T float64) float64 {
	omega := ephemeris.Rad(125.04452 - 1934.136261*T)
	ls := ephemeris.Rad(280.4665 + 36000.7698*T)
	lm := ephemeris.Rad(218.3165 + 481267.8813*T)
	arcsec := -17.20*math.Sin(omega) - 1.32*math.Sin(2*ls) - 0.23*math.Sin(2*lm) + 0.21*math.Sin(2*omega)
	return arcsec / 3600
}
