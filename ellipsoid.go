// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.25
//

package geoconv

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/slices"
)

//-------------------------------------------------------------------
// Errors
//-------------------------------------------------------------------

var (
	// ErrEllipsoid marks an invalid ellipsoid or engine configuration:
	// non-positive equatorial radius, flattening producing a
	// non-positive polar radius, or a method/ellipsoid mismatch.
	// Raised at construction time only.
	ErrEllipsoid = errors.New("invalid ellipsoid")

	// ErrSingular marks a reverse conversion of the exact center
	// point (0,0,0), where latitude and longitude are undefined.
	// Raised per call; the engine stays usable.
	ErrSingular = errors.New("singular point")

	// ErrRotation marks a caller-supplied 3x3 matrix that is not a
	// proper rotation within tolerance.
	ErrRotation = errors.New("not a rotation matrix")
)

//-------------------------------------------------------------------
// Ellipsoid
//-------------------------------------------------------------------

// Ellipsoid holds one reference ellipsoid with its derived constants.
// Immutable after construction; engines keep a pointer and never copy.
type Ellipsoid struct {
	Name string
	A    float64 // Equatorial radius [m]
	F    float64 // Flattening
	B    float64 // Polar radius [m], a*(1-f)
	E2   float64 // First eccentricity squared, f*(2-f)
	E22  float64 // Second eccentricity squared, e2/(1-e2)
}

// NewEllipsoid derives the full parameter set from the equatorial
// radius a [m] and flattening f. f may be negative (prolate) or zero
// (sphere); a and the resulting polar radius must be positive.
func NewEllipsoid(name string, a, f float64) (*Ellipsoid, error) {
	if !(a > 0) || math.IsInf(a, 0) {
		return nil, fmt.Errorf("%w: equatorial radius %.6g", ErrEllipsoid, a)
	}
	b := a * (1 - f)
	if !(b > 0) || math.IsInf(b, 0) {
		return nil, fmt.Errorf("%w: flattening %.6g (polar radius %.6g)", ErrEllipsoid, f, b)
	}
	e2 := f * (2 - f)
	return &Ellipsoid{
		Name: name,
		A:    a,
		F:    f,
		B:    b,
		E2:   e2,
		E22:  e2 / (1 - e2),
	}, nil
}

func (ell *Ellipsoid) String() string {
	return fmt.Sprintf("%s a=%.4f f=1/%.9g", ell.Name, ell.A, 1/ell.F)
}

//-------------------------------------------------------------------
// Datum table
//-------------------------------------------------------------------

// Reciprocal flattening 0 means a sphere.
var datumDefs = []struct {
	name string
	a    float64
	rf   float64
}{
	{"WGS84", 6378137.0, 298.257223563},
	{"GRS80", 6378137.0, 298.257222101},
	{"WGS72", 6378135.0, 298.26},
	{"Intl1924", 6378388.0, 297.0},
	{"Clarke1866", 6378206.4, 294.978698214},
	{"Clarke1880", 6378249.145, 293.4663},
	{"Krassovsky", 6378245.0, 298.3},
	{"Bessel1841", 6377397.155, 299.1528128},
	{"Airy1830", 6377563.396, 299.3249646},
	{"Sphere", 6371008.771415, 0},
}

var datums = make(map[string]*Ellipsoid, len(datumDefs))

func init() {
	for _, d := range datumDefs {
		f := 0.0
		if d.rf != 0 {
			f = 1 / d.rf
		}
		ell, err := NewEllipsoid(d.name, d.a, f)
		if err != nil {
			panic(fmt.Sprintf("datum table %s: %s", d.name, err))
		}
		datums[d.name] = ell
	}
}

// WGS84 returns the default datum.
func WGS84() *Ellipsoid {
	return datums["WGS84"]
}

// DatumByName looks up a built-in ellipsoid by name.
func DatumByName(name string) (*Ellipsoid, error) {
	ell, ok := datums[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown datum %q", ErrEllipsoid, name)
	}
	return ell, nil
}

// Datums returns the built-in datum names in sorted order.
func Datums() []string {
	names := make([]string, 0, len(datums))
	for name := range datums {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
