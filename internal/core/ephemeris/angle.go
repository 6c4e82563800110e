package ephemeris

import "math"

// Norm360 maps any angle in degrees into [0,360)
func Norm360(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}

// Wrap180 maps any angle in degrees into (-180,180], the shortest signed path
func Wrap180(deg float64) float64 {
	d := Norm360(deg)
	if d > 180 {
		d -= 360
	}
	return d
}

// Rad converts degrees to radians
func Rad(deg float64) float64 { return deg * math.Pi / 180 }

// Deg converts radians to degrees
func Deg(rad float64) float64 { return rad * 180 / math.Pi }
