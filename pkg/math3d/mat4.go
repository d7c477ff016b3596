package math3d

import "math"

// Mat4 is a 4x4 matrix stored in column-major order.
//
// Memory layout (indices):
// | 0  4  8  12 |
// | 1  5  9  13 |
// | 2  6  10 14 |
// | 3  7  11 15 |
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate creates a translation matrix.
func Translate(v Vec3) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

// Scale creates a scaling matrix.
func Scale(v Vec3) Mat4 {
	m := Identity()
	m[0], m[5], m[10] = v.X, v.Y, v.Z
	return m
}

// RotateX creates a rotation matrix around the X axis.
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY creates a rotation matrix around the Y axis.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotateZ creates a rotation matrix around the Z axis.
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// ModelMatrix composes translation, uniform scale and Euler rotation
// (radians, applied X then Y then Z) into a single model transform.
func ModelMatrix(translation Vec3, scale float64, rotation Vec3) Mat4 {
	r := RotateZ(rotation.Z).Mul(RotateY(rotation.Y)).Mul(RotateX(rotation.X))
	return Translate(translation).Mul(r).Mul(Scale(V3(scale, scale, scale)))
}

// LookAt creates a view matrix looking from eye towards center.
func LookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

// Perspective creates a perspective projection matrix.
// fovy is the vertical field of view in radians, aspect is width/height.
func Perspective(fovy, aspect, near, far float64) Mat4 {
	f := 1.0 / math.Tan(fovy/2)
	nf := 1.0 / (near - far)

	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}
}

// Viewport maps normalized device coordinates onto the pixel rectangle
// starting at (x, y) with size w×h. Screen Y grows downward, so NDC +Y
// lands on row y. Depth passes through unchanged.
func Viewport(x, y, w, h float64) Mat4 {
	return Mat4{
		w / 2, 0, 0, 0,
		0, -h / 2, 0, 0,
		0, 0, 1, 0,
		x + w/2, y + h/2, 0, 1,
	}
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for col := range 4 {
		for row := range 4 {
			var sum float64
			for k := range 4 {
				sum += a[row+k*4] * b[k+col*4]
			}
			m[row+col*4] = sum
		}
	}
	return m
}

// MulPoint transforms v as a point (w=1). The homogeneous divide is only
// applied when the resulting w is neither 0 nor 1.
func (m Mat4) MulPoint(v Vec3) Vec3 {
	return m.MulVec4(V4FromV3(v, 1)).PerspectiveDivide()
}

// MulDir transforms v as a direction (w=0, no translation).
func (m Mat4) MulDir(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z,
	}
}

// MulVec4 transforms a Vec4.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for col := range 4 {
		for row := range 4 {
			t[col+row*4] = m[row+col*4]
		}
	}
	return t
}

// minors holds the twelve 2x2 sub-determinants shared by Determinant
// and Inverse. The first six pair columns 0 and 1, the rest columns 2
// and 3.
type minors [12]float64

func (m *Mat4) pairMinors() minors {
	return minors{
		m[0]*m[5] - m[1]*m[4],
		m[0]*m[6] - m[2]*m[4],
		m[0]*m[7] - m[3]*m[4],
		m[1]*m[6] - m[2]*m[5],
		m[1]*m[7] - m[3]*m[5],
		m[2]*m[7] - m[3]*m[6],
		m[8]*m[13] - m[9]*m[12],
		m[8]*m[14] - m[10]*m[12],
		m[8]*m[15] - m[11]*m[12],
		m[9]*m[14] - m[10]*m[13],
		m[9]*m[15] - m[11]*m[13],
		m[10]*m[15] - m[11]*m[14],
	}
}

func (b *minors) det() float64 {
	return b[0]*b[11] - b[1]*b[10] + b[2]*b[9] + b[3]*b[8] - b[4]*b[7] + b[5]*b[6]
}

// Determinant returns the determinant of the matrix.
func (m Mat4) Determinant() float64 {
	b := m.pairMinors()
	return b.det()
}

// Inverse returns the inverse of the matrix.
// Singular matrices (det=0) return identity.
func (m Mat4) Inverse() Mat4 {
	b := m.pairMinors()
	det := b.det()
	if det == 0 {
		return Identity()
	}
	d := 1 / det

	return Mat4{
		(m[5]*b[11] - m[6]*b[10] + m[7]*b[9]) * d,
		(m[2]*b[10] - m[1]*b[11] - m[3]*b[9]) * d,
		(m[13]*b[5] - m[14]*b[4] + m[15]*b[3]) * d,
		(m[10]*b[4] - m[9]*b[5] - m[11]*b[3]) * d,

		(m[6]*b[8] - m[4]*b[11] - m[7]*b[7]) * d,
		(m[0]*b[11] - m[2]*b[8] + m[3]*b[7]) * d,
		(m[14]*b[2] - m[12]*b[5] - m[15]*b[1]) * d,
		(m[8]*b[5] - m[10]*b[2] + m[11]*b[1]) * d,

		(m[4]*b[10] - m[5]*b[8] + m[7]*b[6]) * d,
		(m[1]*b[8] - m[0]*b[10] - m[3]*b[6]) * d,
		(m[12]*b[4] - m[13]*b[2] + m[15]*b[0]) * d,
		(m[9]*b[2] - m[8]*b[4] - m[11]*b[0]) * d,

		(m[5]*b[7] - m[4]*b[9] - m[6]*b[6]) * d,
		(m[0]*b[9] - m[1]*b[7] + m[2]*b[6]) * d,
		(m[13]*b[1] - m[12]*b[3] - m[14]*b[0]) * d,
		(m[8]*b[3] - m[9]*b[1] + m[10]*b[0]) * d,
	}
}
