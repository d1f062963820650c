// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.25
//

package geoconv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEllipsoid(t *testing.T) {
	ell, err := NewEllipsoid("WGS84", 6378137.0, 1/298.257223563)
	require.NoError(t, err)

	assert.InDelta(t, 6356752.314245, ell.B, 1e-6)
	assert.InDelta(t, 6.694379990141e-3, ell.E2, 1e-14)
	assert.InDelta(t, 6.739496742276e-3, ell.E22, 1e-14)
}

func TestNewEllipsoidInvalid(t *testing.T) {
	cases := []struct {
		name string
		a, f float64
	}{
		{"zero radius", 0, 1 / 298.0},
		{"negative radius", -6378137, 1 / 298.0},
		{"degenerate flattening", 6378137, 1.0},
		{"flattening beyond one", 6378137, 1.5},
		{"nan radius", math.NaN(), 1 / 298.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewEllipsoid(tc.name, tc.a, tc.f)
			assert.ErrorIs(t, err, ErrEllipsoid)
		})
	}
}

func TestDatumTable(t *testing.T) {
	ell, err := DatumByName("WGS84")
	require.NoError(t, err)
	assert.Equal(t, 6378137.0, ell.A)
	assert.Same(t, WGS84(), ell)

	_, err = DatumByName("no-such-datum")
	assert.ErrorIs(t, err, ErrEllipsoid)

	names := Datums()
	assert.Contains(t, names, "WGS84")
	assert.Contains(t, names, "GRS80")
	assert.IsIncreasing(t, names)
}

func TestSphereDatum(t *testing.T) {
	ell, err := DatumByName("Sphere")
	require.NoError(t, err)
	assert.Equal(t, ell.A, ell.B)
	assert.Zero(t, ell.E2)
}
