// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.25
//

package geoconv

import "math"

// The four geocentric-to-geodetic conversions. Each is a pure
// function of (x, y, z) and the ellipsoid; the caller has already
// rejected the exact center point. The returned case code c names
// the branch taken:
//
//	1  general branch
//	2  secondary numeric branch (trigonometric cubic root for
//	   Karney, exhausted iteration budget for Sudano, focal-disc
//	   point for You)
//	3  polar-axis shortcut (x = y = 0)
//	4  degenerate geometry (sphere, or the evolute region around
//	   the center where the nearest surface point is not unique)

//-------------------------------------------------------------------
// Karney (Vermeille-style resolvent cubic)
//-------------------------------------------------------------------

// reverseKarney solves the reverse conversion through the resolvent
// cubic of the ellipsoid equation, following Vermeille (2002) with
// Karney's case analysis. No iteration; the result is accurate to a
// few ulps for any finite input, including points far inside or
// outside the ellipsoid and prolate ellipsoids (f < 0).
func reverseKarney(ell *Ellipsoid, x, y, z float64) (lat, lon, h float64, c int) {
	e2 := ell.E2
	e2m := 1 - e2
	e2a := math.Abs(e2)
	e4a := e2 * e2

	rho := math.Hypot(x, y)
	slam, clam := 0.0, 1.0
	if rho != 0 {
		slam, clam = y/rho, x/rho
	}
	h = math.Hypot(rho, z)

	var sphi, cphi float64
	c = 1
	if e4a == 0 {
		// Sphere: latitude is the geocentric direction.
		sphi, cphi = z/h, rho/h
		h -= ell.A
		c = 4
	} else {
		p := SQ(rho / ell.A)
		q := e2m * SQ(z/ell.A)
		r := (p + q - e4a) / 6
		if ell.F < 0 {
			p, q = q, p
		}
		if !(e4a*q == 0 && r <= 0) {
			// Lagrange's resolvent of t^4 + 2*r*t^2 - s*t + ... ,
			// solved for the positive root u of the cubic.
			s := e4a * p * q / 4
			r2 := SQ(r)
			r3 := r * r2
			disc := s * (2*r3 + s)
			u := r
			if disc >= 0 {
				t3 := s + r3
				// Pick the larger magnitude root to avoid
				// cancellation in t3 + sqrt(disc).
				if t3 < 0 {
					t3 -= math.Sqrt(disc)
				} else {
					t3 += math.Sqrt(disc)
				}
				t := math.Cbrt(t3)
				u += t
				if t != 0 {
					u += r2 / t
				}
			} else {
				// Three real roots; u is the positive one.
				ang := math.Atan2(math.Sqrt(-disc), -(s + r3))
				u += 2 * r * math.Cos(ang/3)
				c = 2
			}
			v := math.Sqrt(SQ(u) + e4a*q) // v >= |u|
			uv := u + v
			if u < 0 {
				uv = e4a * q / (v - u) // avoid u + v cancellation
			}
			w := math.Max(0, e2a*(uv-q)/(2*v))
			k := uv / (math.Sqrt(uv+SQ(w)) + w)
			k1, k2 := k, k+e2
			if ell.F < 0 {
				k1, k2 = k-e2, k
			}
			d := k1 * rho / k2
			hn := math.Hypot(z/k1, rho/k2)
			sphi = (z / k1) / hn
			cphi = (rho / k2) / hn
			h = (1 - e2m/k1) * math.Hypot(d, z)
		} else {
			// Inside the evolute on the singular disc: the nearest
			// surface point has rho and z both nonzero even though
			// one input component vanishes.
			zz := p
			xx := e4a - p
			if ell.F >= 0 {
				zz, xx = xx, zz
			}
			zz = math.Sqrt(zz / e2m)
			xx = math.Sqrt(xx)
			hn := math.Hypot(zz, xx)
			sphi = zz / hn
			cphi = xx / hn
			if z < 0 {
				sphi = -sphi
			}
			mult := 1.0
			if ell.F >= 0 {
				mult = e2m
			}
			h = -ell.A * mult * hn / e2a
			c = 4
		}
	}
	return atan2d(sphi, cphi), atan2d(slam, clam), h, c
}

//-------------------------------------------------------------------
// Sudano (bounded fixed-point iteration)
//-------------------------------------------------------------------

// reverseSudano refines the latitude by the fixed point
// lat <- atan2(z + e2*N(lat)*sin(lat), rho) from the geocentric
// start. If sudanoMaxIter passes do not reach sudanoTol the best
// iterate is returned with c=2; non-convergence is soft here, by
// contract, unlike the closed-form methods.
func reverseSudano(ell *Ellipsoid, x, y, z float64) (lat, lon, h float64, c int) {
	lon = atan2d(y, x)
	rho := math.Hypot(x, y)
	if rho == 0 {
		return math.Copysign(90, z), lon, math.Abs(z) - ell.B, 3
	}

	phi := math.Atan2(z, rho*(1-ell.E2))
	c = 2
	for i := 0; i < sudanoMaxIter; i++ {
		s := math.Sin(phi)
		n := ell.A / math.Sqrt(1-ell.E2*s*s)
		next := math.Atan2(z+ell.E2*n*s, rho)
		done := math.Abs(next-phi) < sudanoTol
		phi = next
		if done {
			c = 1
			break
		}
	}
	return ToDeg(phi), lon, heightAt(ell, rho, z, phi), c
}

//-------------------------------------------------------------------
// Veness (Bowring closed form via the reduced latitude)
//-------------------------------------------------------------------

// reverseVeness is the iteration-free Bowring form: an auxiliary
// reduced latitude beta, sharpened by the b/R altitude term, closed
// into the geodetic latitude in one step. Round-off accurate near
// the surface; the error grows slowly with |height|.
func reverseVeness(ell *Ellipsoid, x, y, z float64) (lat, lon, h float64, c int) {
	lon = atan2d(y, x)
	rho := math.Hypot(x, y)
	if rho == 0 {
		return math.Copysign(90, z), lon, math.Abs(z) - ell.B, 3
	}

	r := math.Hypot(rho, z)
	tanb := ell.B * z / (ell.A * rho) * (1 + ell.E22*ell.B/r)
	beta := math.Atan(tanb)
	sb, cb := math.Sincos(beta)
	phi := math.Atan2(z+ell.E22*ell.B*sb*sb*sb, rho-ell.E2*ell.A*cb*cb*cb)
	return ToDeg(phi), lon, heightAt(ell, rho, z, phi), 1
}

//-------------------------------------------------------------------
// You (confocal ellipsoidal parametrization)
//-------------------------------------------------------------------

// reverseYou parametrizes the point on the confocal ellipsoid
// through (u, beta), where E^2 = a^2 - b^2 is the squared linear
// eccentricity shared by the whole confocal family, then closes
// beta into the geodetic latitude. Direct algebra, no iteration;
// requires a >= b (enforced at engine construction).
func reverseYou(ell *Ellipsoid, x, y, z float64) (lat, lon, h float64, c int) {
	lon = atan2d(y, x)
	rho := math.Hypot(x, y)
	if rho == 0 {
		return math.Copysign(90, z), lon, math.Abs(z) - ell.B, 3
	}

	ee := SQ(ell.A) - SQ(ell.B) // E^2
	e := math.Sqrt(ee)
	r2 := SQ(rho) + SQ(z)
	u := math.Sqrt(0.5 * ((r2 - ee) + math.Hypot(r2-ee, 2*e*z)))
	if u == 0 {
		// On the focal disc (z = 0, rho <= E): the confocal angle is
		// undefined; the equatorial closure still applies.
		return 0, lon, rho - ell.A, 2
	}
	q := math.Hypot(u, e)
	beta := math.Atan2(q*z, u*rho)
	sb, cb := math.Sincos(beta)
	phi := math.Atan2(z+ee/ell.B*sb*sb*sb, rho-ee/ell.A*cb*cb*cb)
	return ToDeg(phi), lon, heightAt(ell, rho, z, phi), 1
}

//-------------------------------------------------------------------
// Shared height closure
//-------------------------------------------------------------------

// heightAt is the signed height of (rho, z) above the ellipsoid for
// a known geodetic latitude phi [rad]. The projection form
// rho*cos + z*sin - a*sqrt(1 - e2*sin^2) stays exact at the poles
// where the rho/cos form divides by zero.
func heightAt(ell *Ellipsoid, rho, z, phi float64) float64 {
	s, co := math.Sincos(phi)
	return rho*co + z*s - ell.A*math.Sqrt(1-ell.E2*s*s)
}
