package vciph

import "math"

// gridPoint returns the point of the given level's quantization grid
// nearest to c. Level 0 points are multiples of q; level 1 points are
// multiples of q offset by q/2. The two grids interleave, so the nearest
// opposite-level point is always exactly q/2 away from any grid point.
func gridPoint(c float64, level uint8, q float64) float64 {
	if level == 0 {
		return math.Round(c/q) * q
	}
	return math.Round((c-q/2)/q)*q + q/2
}

// embedBit snaps c onto the grid of bit's level, introducing at most q/2
// of distortion.
func embedBit(c float64, bit uint8, q float64) float64 {
	return gridPoint(c, bit, q)
}

// decodeBit recovers the embedded bit from an observed coefficient by
// nearest-grid-point distance under each level independently. The
// decision boundary sits midway between the two grids, q/4 from every
// grid point, so noise strictly inside (-q/4, q/4) decodes correctly.
// A modulo or parity test would place its boundary on the grid points
// themselves, exactly where the noise concentrates; the distance
// comparison is what keeps it centered instead.
func decodeBit(c float64, q float64) uint8 {
	d0 := math.Abs(c - gridPoint(c, 0, q))
	d1 := math.Abs(c - gridPoint(c, 1, q))
	if d0 <= d1 {
		return 0
	}
	return 1
}
