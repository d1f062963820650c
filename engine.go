// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.25
//

package geoconv

import (
	"fmt"
	"math"

	"golang.org/x/exp/slices"
)

//-------------------------------------------------------------------
// ReverseMethod
//-------------------------------------------------------------------

// ReverseMethod selects the geocentric-to-geodetic algorithm of an
// engine. All methods satisfy the same contract (lat in [-90,90],
// lon in (-180,180], signed height) and differ in numerical method:
//   - Karney: iteration-free resolvent cubic, round-off accurate for
//     any finite input, oblate or prolate
//   - Sudano: fixed-point iteration on latitude with a bounded budget;
//     on exhaustion the best iterate is returned, never an error
//   - Veness: Bowring-style closed form via the reduced latitude
//   - You: closed form via the confocal ellipsoidal parametrization,
//     oblate ellipsoids only
type ReverseMethod int

const (
	Karney ReverseMethod = iota
	Sudano
	Veness
	You
)

var methodNames = []string{"karney", "sudano", "veness", "you"}

func (m ReverseMethod) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("ReverseMethod(%d)", int(m))
	}
	return methodNames[m]
}

// ReverseMethodByName resolves a method name, case as listed.
func ReverseMethodByName(name string) (ReverseMethod, error) {
	i := slices.Index(methodNames, name)
	if i < 0 {
		return 0, fmt.Errorf("%w: unknown reverse method %q", ErrEllipsoid, name)
	}
	return ReverseMethod(i), nil
}

//-------------------------------------------------------------------
// Result
//-------------------------------------------------------------------

// Result bundles both representations of one converted point:
// geocentric x/y/z [m] and geodetic lat/lon [deg], height [m].
// C records the internal branch a reverse conversion took (0 for
// forward conversions); it is a regression-test aid, not a status.
// Results are value types, created fresh per call and never mutated.
type Result struct {
	X, Y, Z float64
	Lat     float64
	Lon     float64
	Height  float64
	C       int
	M       *RotMatrix
	Datum   *Ellipsoid
}

func (r Result) String() string {
	return fmt.Sprintf("%.9f %.9f %.4f  %.4f %.4f %.4f  C=%d",
		r.Lat, r.Lon, r.Height, r.X, r.Y, r.Z, r.C)
}

//-------------------------------------------------------------------
// Engine
//-------------------------------------------------------------------

// Engine converts between geodetic and ECEF coordinates on one fixed
// ellipsoid with one reverse method. Engines are immutable and safe
// for concurrent use.
type Engine struct {
	ell    *Ellipsoid
	method ReverseMethod
}

// NewEngine binds an ellipsoid and a reverse method. The ellipsoid is
// re-validated here so a hand-built Ellipsoid value fails at
// construction, not inside a conversion. The You method additionally
// requires a non-prolate ellipsoid (a >= b).
func NewEngine(ell *Ellipsoid, method ReverseMethod) (*Engine, error) {
	if ell == nil {
		return nil, fmt.Errorf("%w: nil", ErrEllipsoid)
	}
	if !(ell.A > 0) || !(ell.B > 0) {
		return nil, fmt.Errorf("%w: a=%.6g b=%.6g", ErrEllipsoid, ell.A, ell.B)
	}
	if method < 0 || int(method) >= len(methodNames) {
		return nil, fmt.Errorf("%w: %s", ErrEllipsoid, method)
	}
	if method == You && ell.F < 0 {
		return nil, fmt.Errorf("%w: %s requires an oblate ellipsoid (f=%.6g)",
			ErrEllipsoid, method, ell.F)
	}
	return &Engine{ell: ell, method: method}, nil
}

// Ellipsoid returns the bound ellipsoid.
func (e *Engine) Ellipsoid() *Ellipsoid {
	return e.ell
}

// Method returns the bound reverse method.
func (e *Engine) Method() ReverseMethod {
	return e.method
}

// Forward converts geodetic (lat [deg], lon [deg], height [m]) to
// ECEF. Longitude of any magnitude is normalized to (-180,180]; the
// poles convert exactly (no spurious x/y); an infinite height yields
// the infinite point along the local up direction instead of an
// error. The result carries C=0 and the east-north-up rotation at
// the input point.
func (e *Engine) Forward(lat, lon, height float64) Result {
	lon = wrap180(lon)
	x, y, z := ecefForward(e.ell, lat, lon, height)
	return Result{
		X: x, Y: y, Z: z,
		Lat: lat, Lon: lon, Height: height,
		C:     0,
		M:     RotMatrixAt(lat, lon),
		Datum: e.ell,
	}
}

// Reverse converts ECEF (x, y, z [m]) to geodetic coordinates with
// the engine's method. The exact center (0,0,0) has no defined
// direction and fails with ErrSingular for every method; all other
// finite inputs, including points on the polar axis and deep inside
// the ellipsoid, convert without error.
func (e *Engine) Reverse(x, y, z float64) (Result, error) {
	if x == 0 && y == 0 && z == 0 {
		return Result{}, fmt.Errorf("reverse (0,0,0): %w", ErrSingular)
	}

	var lat, lon, h float64
	var c int
	switch e.method {
	case Sudano:
		lat, lon, h, c = reverseSudano(e.ell, x, y, z)
	case Veness:
		lat, lon, h, c = reverseVeness(e.ell, x, y, z)
	case You:
		lat, lon, h, c = reverseYou(e.ell, x, y, z)
	default:
		lat, lon, h, c = reverseKarney(e.ell, x, y, z)
	}

	return Result{
		X: x, Y: y, Z: z,
		Lat: lat, Lon: lon, Height: h,
		C:     c,
		M:     RotMatrixAt(lat, lon),
		Datum: e.ell,
	}, nil
}

//-------------------------------------------------------------------
// Forward conversion core
//-------------------------------------------------------------------

// ecefForward is the closed-form geodetic to ECEF conversion with
// the prime-vertical radius N = a/sqrt(1 - e2*sin^2(lat)).
func ecefForward(ell *Ellipsoid, lat, lon, height float64) (x, y, z float64) {
	sphi, cphi := sincosd(lat)
	slam, clam := sincosd(lon)

	n := ell.A / math.Sqrt(1-ell.E2*sphi*sphi)
	if math.IsInf(height, 0) {
		// The finite terms vanish against an infinite height; keep
		// the ray direction, with exact zeros where the direction
		// component is zero (e.g. x and y at the poles).
		return rayInf(height, cphi*clam), rayInf(height, cphi*slam), rayInf(height, sphi)
	}
	x = (n + height) * cphi * clam
	y = (n + height) * cphi * slam
	z = (n*(1-ell.E2) + height) * sphi
	return x, y, z
}

func rayInf(h, dir float64) float64 {
	if dir == 0 {
		return 0
	}
	return h * dir
}
