package stitchboard

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// affineDet returns the determinant of the linear part of m.
func affineDet(m [6]float64) float64 {
	return m[0]*m[3] - m[2]*m[1]
}

// singularDet is the determinant magnitude below which a matrix is treated
// as non-invertible.
const singularDet = 1e-12

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ≈ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := affineDet(m)
	if math.Abs(det) < singularDet {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// triangleBasis returns the matrix that maps the unit triangle
// (0,0),(1,0),(0,1) onto p0,p1,p2.
func triangleBasis(p0, p1, p2 Vec2) [6]float64 {
	return [6]float64{
		p1.X - p0.X, p1.Y - p0.Y,
		p2.X - p0.X, p2.Y - p0.Y,
		p0.X, p0.Y,
	}
}

// solveTriangleAffine returns the affine matrix mapping the source triangle
// s onto the destination triangle d, solved from the edge pairs
// (s1-s0, s2-s0) and (d1-d0, d2-d0). ok is false when either triangle has
// zero area.
func solveTriangleAffine(s, d [3]Vec2) (m [6]float64, ok bool) {
	src := triangleBasis(s[0], s[1], s[2])
	dst := triangleBasis(d[0], d[1], d[2])
	if math.Abs(affineDet(src)) < singularDet || math.Abs(affineDet(dst)) < singularDet {
		return identityTransform, false
	}
	return multiplyAffine(dst, invertAffine(src)), true
}
