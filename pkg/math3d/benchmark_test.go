package math3d

import (
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := RotateY(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulPoint(b *testing.B) {
	m := Perspective(0.785, 1, 0.1, 100).Mul(Translate(V3(0, 0, -5)))
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = m.MulPoint(v)
	}
}

func BenchmarkMat4Inverse(b *testing.B) {
	m := ModelMatrix(V3(1, 2, 3), 2, V3(0, 0.5, 0))

	for b.Loop() {
		_ = m.Inverse()
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}

func BenchmarkBarycentric(b *testing.B) {
	p0, p1, p2 := V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1)
	w := V3(0.2, 0.3, 0.5)

	for b.Loop() {
		_ = Barycentric(p0, p1, p2, w)
	}
}

func BenchmarkMVP(b *testing.B) {
	model := ModelMatrix(Zero3(), 1, V3(0, 0.3, 0))
	view := LookAt(V3(0, 0, 5), Zero3(), Up())
	proj := Perspective(0.785, 1, 0.1, 100)
	vp := Viewport(0, 0, 800, 800)

	for b.Loop() {
		_ = vp.Mul(proj).Mul(view).Mul(model)
	}
}
