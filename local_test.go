// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.25
//

package geoconv

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLocal(t *testing.T, lat0, lon0, h0 float64) *LocalEngine {
	t.Helper()
	le, err := NewLocalEngine(WGS84(), Karney, lat0, lon0, h0)
	require.NoError(t, err)
	return le
}

func TestLocalForwardAtOrigin(t *testing.T) {
	le := mustLocal(t, 35.6762, 139.6503, 40)

	r := le.Forward(35.6762, 139.6503, 40)
	assert.InDelta(t, 0, r.X, 1e-9)
	assert.InDelta(t, 0, r.Y, 1e-9)
	assert.InDelta(t, 0, r.Z, 1e-9)
	assert.Equal(t, 0, r.C)
	require.NotNil(t, r.M)
}

func TestLocalAxesOrientation(t *testing.T) {
	le := mustLocal(t, 45, 9, 0)

	// A point slightly north along the meridian: positive y, x near
	// zero, z slightly below the tangent plane from curvature.
	north := le.Forward(45.01, 9, 0)
	assert.InDelta(t, 1111.0, north.Y, 10.0)
	assert.InDelta(t, 0, north.X, 1e-6)
	assert.Negative(t, north.Z)
	assert.Greater(t, north.Z, -1.0)

	// A point east along the parallel: positive x, y small.
	east := le.Forward(45, 9.01, 0)
	assert.InDelta(t, 786.0, east.X, 10.0)
	assert.Greater(t, east.X, 0.0)
	assert.InDelta(t, 0, east.Y, 1.0)

	// Straight up: z is the height difference.
	up := le.Forward(45, 9, 1000)
	assert.InDelta(t, 1000.0, up.Z, 1e-6)
	assert.InDelta(t, 0, up.X, 1e-6)
	assert.InDelta(t, 0, up.Y, 1e-6)
}

func TestLocalRoundTrip(t *testing.T) {
	origins := []struct{ lat, lon, h float64 }{
		{0, 0, 0},
		{35.6762, 139.6503, 40},
		{-33.8688, 151.2093, 25},
		{89.0, 10.0, 0},
	}
	points := []struct{ lat, lon, h float64 }{
		{1.5, 2.5, 1000},
		{36, 140, -50},
		{-34, 151, 8000},
		{88.5, -170, 300},
	}

	for _, method := range allMethods {
		for _, o := range origins {
			le, err := NewLocalEngine(WGS84(), method, o.lat, o.lon, o.h)
			require.NoError(t, err)
			for _, p := range points {
				f := le.Forward(p.lat, p.lon, p.h)
				r, err := le.Reverse(f.X, f.Y, f.Z)
				require.NoError(t, err)

				assert.InDelta(t, p.lat, r.Lat, 1e-8, "method %s origin %v point %v", method, o, p)
				assert.InDelta(t, p.lon, r.Lon, 1e-8, "method %s origin %v point %v", method, o, p)
				assert.InDelta(t, p.h, r.Height, 1e-3, "method %s origin %v point %v", method, o, p)
			}
		}
	}
}

func TestLocalReverseCenterSingular(t *testing.T) {
	// With the origin on the equator at lon 0, the ellipsoid center
	// sits exactly a meters below the frame origin.
	le := mustLocal(t, 0, 0, 0)
	_, err := le.Reverse(0, 0, -WGS84().A)
	assert.ErrorIs(t, err, ErrSingular)
}

func TestResetOrigin(t *testing.T) {
	le := mustLocal(t, 10, 20, 0)

	before := le.Forward(10.1, 20.1, 50)
	le.ResetOrigin(-30, 140.5, 100)

	lat0, lon0, h0 := le.Origin()
	assert.Equal(t, [3]float64{-30, 140.5, 100}, [3]float64{lat0, lon0, h0})

	at := le.Forward(-30, 140.5, 100)
	assert.InDelta(t, 0, at.X, 1e-9)
	assert.InDelta(t, 0, at.Y, 1e-9)
	assert.InDelta(t, 0, at.Z, 1e-9)

	after := le.Forward(10.1, 20.1, 50)
	assert.NotEqual(t, before.X, after.X)
}

// Concurrent conversions racing one ResetOrigin must each see a
// complete origin/rotation snapshot: every result is bit-identical
// to the output of a static engine bound to one of the two origins,
// never a hybrid.
func TestConcurrentResetOrigin(t *testing.T) {
	const (
		readers = 8
		rounds  = 2000
	)
	pt := struct{ lat, lon, h float64 }{12.34, 56.78, 910.0}

	a := mustLocal(t, 10, 20, 100)
	b := mustLocal(t, -30, 140, 50)
	wantA := a.Forward(pt.lat, pt.lon, pt.h)
	wantB := b.Forward(pt.lat, pt.lon, pt.h)

	le := mustLocal(t, 10, 20, 100)
	stop := make(chan struct{})
	bad := make(chan Result, readers)

	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				r := le.Forward(pt.lat, pt.lon, pt.h)
				okA := r.X == wantA.X && r.Y == wantA.Y && r.Z == wantA.Z
				okB := r.X == wantB.X && r.Y == wantB.Y && r.Z == wantB.Z
				if !okA && !okB {
					select {
					case bad <- r:
					default:
					}
					return
				}
			}
		}()
	}

	for i := 0; i < rounds; i++ {
		if i%2 == 0 {
			le.ResetOrigin(-30, 140, 50)
		} else {
			le.ResetOrigin(10, 20, 100)
		}
	}
	close(stop)
	wg.Wait()

	select {
	case r := <-bad:
		t.Fatalf("torn origin/rotation snapshot: %v (want %v or %v)", r, wantA, wantB)
	default:
	}
}

func TestLocalPointLookAngles(t *testing.T) {
	le := mustLocal(t, 45, 9, 0)

	up := le.Forward(45, 9, 1000)
	p := LocalPoint{X: up.X, Y: up.Y, Z: up.Z}
	assert.InDelta(t, 90.0, p.Elevation(), 1e-6)

	north := le.Forward(45.01, 9, 0)
	pn := LocalPoint{X: north.X, Y: north.Y, Z: north.Z}
	assert.InDelta(t, 0.0, pn.Azimuth(), 1e-3)
	assert.Negative(t, pn.Elevation())

	east := le.Forward(45, 9.01, 0)
	pe := LocalPoint{X: east.X, Y: east.Y, Z: east.Z}
	assert.InDelta(t, 90.0, pe.Azimuth(), 0.01)
}
