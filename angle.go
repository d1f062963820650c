// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.25
//

package geoconv

import "math"

// ------------------------------------
// Mini functions
// ------------------------------------

func SQ(x float64) float64 {
	return x * x
}

func ToDeg(rad float64) float64 {
	return rad / PI * 180.0
}

func ToRad(deg float64) float64 {
	return deg / 180.0 * PI
}

// ------------------------------------
// Degree-exact trigonometry
// ------------------------------------

// sincosd evaluates sine and cosine of an angle in degrees with exact
// values at the quadrant boundaries: sincosd(90) is exactly (1, 0), so
// forward conversion at the poles produces no spurious x/y.
func sincosd(deg float64) (sin, cos float64) {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return math.NaN(), math.NaN()
	}
	r := math.Mod(deg, 360)
	q := math.Round(r / 90)
	r = ToRad(r - 90*q)
	s, c := math.Sincos(r)
	switch int(q) & 3 {
	case 0:
		return s, c
	case 1:
		return c, -s
	case 2:
		return -s, -c
	default:
		return -c, s
	}
}

// atan2d is atan2 in degrees, exact on the axes: atan2d(0, -1) is
// exactly 180 and atan2d(±1, 0) exactly ±90. The result lies in
// (-180, 180] except for atan2d(-0, x<0) = -180.
func atan2d(y, x float64) float64 {
	q := 0
	if math.Abs(y) > math.Abs(x) {
		x, y = y, x
		q = 2
	}
	if x < 0 {
		x = -x
		q++
	}
	deg := ToDeg(math.Atan2(y, x))
	switch q {
	case 1:
		if y >= 0 {
			deg = 180 - deg
		} else {
			deg = -180 - deg
		}
	case 2:
		deg = 90 - deg
	case 3:
		deg = deg - 90
	}
	return deg
}

// wrap180 normalizes an angle in degrees to (-180, 180].
func wrap180(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}
