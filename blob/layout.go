package blob

import "github.com/hangxie/spatialite-go/geometry"

// fullVertexSize is the byte size of one vertex stored as doubles.
func fullVertexSize(dims geometry.DimensionModel) int {
	return dims.Stride() * 8
}

// deltaVertexSize is the byte size of one intermediate compressed vertex:
// float32 deltas for X, Y and Z, a full double for M.
func deltaVertexSize(dims geometry.DimensionModel) int {
	switch dims {
	case geometry.XYZ:
		return 12
	case geometry.XYM:
		return 16
	case geometry.XYZM:
		return 20
	default:
		return 8
	}
}

// sequenceSize is the byte size of n vertices, excluding the count prefix.
// The first and last vertex of a compressed sequence are always full.
func sequenceSize(n int, dims geometry.DimensionModel, compressed bool) int {
	if !compressed || n <= 2 {
		return n * fullVertexSize(dims)
	}
	return 2*fullVertexSize(dims) + (n-2)*deltaVertexSize(dims)
}

// fullVertex reports whether vertex i of an n-vertex sequence is stored as
// doubles.
func fullVertex(i, n int, compressed bool) bool {
	return !compressed || i == 0 || i == n-1
}
