// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.25
//

package geoconv

import (
	"fmt"
	"sync/atomic"
)

//-------------------------------------------------------------------
// LocalEngine
//-------------------------------------------------------------------

// localFrame is one immutable origin snapshot: the geodetic origin,
// its ECEF image and the east-north-up rotation there. ResetOrigin
// builds a complete replacement before publishing it, so concurrent
// conversions always see a matched origin/rotation pair.
type localFrame struct {
	lat0, lon0, h0 float64
	x0, y0, z0     float64
	rot            *RotMatrix
}

// LocalEngine converts between geodetic coordinates and a local
// east-north-up Cartesian frame anchored at a fixed origin: x east,
// y north, z normal to the ellipsoid, origin at (0,0,0). Conversions
// are safe for concurrent use, including against ResetOrigin.
type LocalEngine struct {
	ecef  *Engine
	frame atomic.Pointer[localFrame]
}

// NewLocalEngine binds an ellipsoid, the reverse method used by
// local Reverse, and the frame origin (lat0, lon0 [deg], h0 [m]).
func NewLocalEngine(ell *Ellipsoid, method ReverseMethod, lat0, lon0, h0 float64) (*LocalEngine, error) {
	ecef, err := NewEngine(ell, method)
	if err != nil {
		return nil, err
	}
	le := &LocalEngine{ecef: ecef}
	le.ResetOrigin(lat0, lon0, h0)
	return le, nil
}

// Origin returns the current geodetic origin.
func (le *LocalEngine) Origin() (lat0, lon0, h0 float64) {
	f := le.frame.Load()
	return f.lat0, f.lon0, f.h0
}

// Ellipsoid returns the bound ellipsoid.
func (le *LocalEngine) Ellipsoid() *Ellipsoid {
	return le.ecef.ell
}

// ResetOrigin moves the frame origin. The new ECEF origin and
// rotation are computed first and swapped in as one unit; in-flight
// conversions complete on whichever snapshot they loaded.
func (le *LocalEngine) ResetOrigin(lat0, lon0, h0 float64) {
	lon0 = wrap180(lon0)
	x0, y0, z0 := ecefForward(le.ecef.ell, lat0, lon0, h0)
	le.frame.Store(&localFrame{
		lat0: lat0, lon0: lon0, h0: h0,
		x0: x0, y0: y0, z0: z0,
		rot: RotMatrixAt(lat0, lon0),
	})
}

// Forward converts geodetic (lat, lon [deg], height [m]) to the
// local frame. The result's X/Y/Z are local east/north/up [m]; the
// geodetic fields echo the normalized input; M is the rotation of
// the frame snapshot used.
func (le *LocalEngine) Forward(lat, lon, height float64) Result {
	f := le.frame.Load()
	lon = wrap180(lon)
	xc, yc, zc := ecefForward(le.ecef.ell, lat, lon, height)
	x, y, z := f.rot.Rotate(xc-f.x0, yc-f.y0, zc-f.z0, false)
	return Result{
		X: x, Y: y, Z: z,
		Lat: lat, Lon: lon, Height: height,
		C:     0,
		M:     f.rot,
		Datum: le.ecef.ell,
	}
}

// Reverse converts local east/north/up (x, y, z [m]) back to
// geodetic coordinates through the engine's reverse method. The
// result's X/Y/Z are the ECEF coordinates of the point; C is the
// reverse method's case code.
func (le *LocalEngine) Reverse(x, y, z float64) (Result, error) {
	f := le.frame.Load()
	xc, yc, zc := f.rot.Rotate(x, y, z, true)
	xc += f.x0
	yc += f.y0
	zc += f.z0
	res, err := le.ecef.Reverse(xc, yc, zc)
	if err != nil {
		return Result{}, fmt.Errorf("local (%g %g %g): %w", x, y, z, err)
	}
	res.M = f.rot
	return res, nil
}
