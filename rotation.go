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

	"gonum.org/v1/gonum/mat"
)

//-------------------------------------------------------------------
// RotMatrix
//-------------------------------------------------------------------

// RotMatrix is a proper 3x3 rotation between the ECEF frame and a
// local east-north-up frame. Rows 0..2 are the local east, north and
// up unit vectors expressed in ECEF coordinates, so applying the
// matrix takes an ECEF vector into the local frame and the transpose
// takes it back. Immutable after construction.
type RotMatrix struct {
	m [9]float64 // row major
}

// RotMatrixAt builds the east-north-up rotation for a geodetic
// origin at (latDeg, lonDeg).
func RotMatrixAt(latDeg, lonDeg float64) *RotMatrix {
	sphi, cphi := sincosd(latDeg)
	slam, clam := sincosd(lonDeg)
	return &RotMatrix{m: [9]float64{
		-slam, clam, 0, // east
		-sphi * clam, -sphi * slam, cphi, // north
		cphi * clam, cphi * slam, sphi, // up
	}}
}

// NewRotMatrix wraps a caller-supplied row-major matrix. The matrix
// must already be orthonormal with determinant +1 within tolerance;
// it is never renormalized here (see Renormalize).
func NewRotMatrix(m [9]float64) (*RotMatrix, error) {
	d := mat.NewDense(3, 3, m[:])

	var p mat.Dense
	p.Mul(d, d.T())
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(p.At(i, j)-want) > rotTol {
				return nil, fmt.Errorf("%w: rows not orthonormal (M*Mt[%d,%d]=%.3e)",
					ErrRotation, i, j, p.At(i, j))
			}
		}
	}
	if det := mat.Det(d); math.Abs(det-1) > rotTol {
		return nil, fmt.Errorf("%w: determinant %.12f", ErrRotation, det)
	}
	return &RotMatrix{m: m}, nil
}

// Rotate applies the rotation to a 3-vector. With inverse false the
// vector is taken from the ECEF frame into the local frame; with
// inverse true the transpose is applied, local frame into ECEF.
func (r *RotMatrix) Rotate(x, y, z float64, inverse bool) (float64, float64, float64) {
	m := &r.m
	if inverse {
		return m[0]*x + m[3]*y + m[6]*z,
			m[1]*x + m[4]*y + m[7]*z,
			m[2]*x + m[5]*y + m[8]*z
	}
	return m[0]*x + m[1]*y + m[2]*z,
		m[3]*x + m[4]*y + m[5]*z,
		m[6]*x + m[7]*y + m[8]*z
}

// Elements returns the row-major elements.
func (r *RotMatrix) Elements() [9]float64 {
	return r.m
}

// Mat returns a copy of the matrix for further linear algebra.
func (r *RotMatrix) Mat() *mat.Dense {
	m := r.m
	return mat.NewDense(3, 3, m[:])
}

// Renormalize projects a row-major matrix onto the nearest proper
// rotation via the polar factor U*Vt of its SVD. Opt-in repair for
// matrices drifted through repeated multiplication; NewRotMatrix
// never does this implicitly. Fails if the input is not within SVD
// reach of a rotation (e.g. a reflection).
func Renormalize(m [9]float64) (*RotMatrix, error) {
	var svd mat.SVD
	if ok := svd.Factorize(mat.NewDense(3, 3, m[:]), mat.SVDFull); !ok {
		return nil, fmt.Errorf("%w: SVD failed", ErrRotation)
	}
	var u, v, q mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	q.Mul(&u, v.T())

	var out [9]float64
	copy(out[:], q.RawMatrix().Data)
	return NewRotMatrix(out)
}

func (r *RotMatrix) String() string {
	m := &r.m
	return fmt.Sprintf("[%g %g %g; %g %g %g; %g %g %g]",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
}
