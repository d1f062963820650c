// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.25
//

package geoconv

const (
	PI = 3.1415926535897932 // Pi

	// Tolerance for the orthonormality / determinant check of a
	// caller-supplied rotation matrix.
	rotTol = 1e-9

	// Iteration budget and stopping tolerance [rad] of the Sudano
	// reverse conversion.
	sudanoMaxIter = 48
	sudanoTol     = 1.0e-15
)
