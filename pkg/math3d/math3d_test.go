package math3d

import (
	"math"
	"testing"
)

const tol = 1e-9

func vecNear(a, b Vec3) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol && math.Abs(a.Z-b.Z) < tol
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec3
		want Vec3
	}{
		{"axis", V3(0, 3, 0), V3(0, 1, 0)},
		{"diagonal", V3(3, 4, 0), V3(0.6, 0.8, 0)},
		{"zero", Zero3(), Zero3()},
		{"tiny", V3(1e-14, 0, 0), Zero3()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if !vecNear(got, tt.want) {
				t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if math.IsNaN(got.X) || math.IsNaN(got.Y) || math.IsNaN(got.Z) {
				t.Errorf("Normalize(%v) produced NaN", tt.in)
			}
		})
	}
}

func TestCrossAndReflect(t *testing.T) {
	x, y := V3(1, 0, 0), V3(0, 1, 0)
	if got := x.Cross(y); !vecNear(got, V3(0, 0, 1)) {
		t.Errorf("x × y = %v, want (0,0,1)", got)
	}

	d := V3(1, -1, 0)
	if got := d.Reflect(Up()); !vecNear(got, V3(1, 1, 0)) {
		t.Errorf("Reflect = %v, want (1,1,0)", got)
	}
}

func TestIdentityMulPoint(t *testing.T) {
	p := V3(1.5, -2, 7)
	if got := Identity().MulPoint(p); got != p {
		t.Errorf("Identity().MulPoint(%v) = %v", p, got)
	}
}

func TestMulPointDivide(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		in   Vec3
		want Vec3
	}{
		{
			name: "w=1 untouched",
			m:    Translate(V3(1, 1, 1)),
			in:   V3(1, 2, 3),
			want: V3(2, 3, 4),
		},
		{
			name: "w=2 divided",
			m:    Mat4{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 2},
			in:   V3(2, 4, 6),
			want: V3(1, 2, 3),
		},
		{
			name: "w=0 untouched",
			m:    Mat4{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0},
			in:   V3(2, 4, 6),
			want: V3(2, 4, 6),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.MulPoint(tt.in); !vecNear(got, tt.want) {
				t.Errorf("MulPoint = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInverseRoundTrip(t *testing.T) {
	view := LookAt(V3(2, 3, 5), Zero3(), Up())
	model := ModelMatrix(V3(0.5, -1, 2), 1.5, V3(0.3, 1.1, -0.4))

	points := []Vec3{
		V3(0, 0, 0),
		V3(1, 2, 3),
		V3(-4, 0.25, 9),
	}

	for _, m := range []Mat4{view, model, view.Mul(model)} {
		inv := m.Inverse()
		for _, p := range points {
			got := inv.MulPoint(m.MulPoint(p))
			if !vecNear(got, p) {
				t.Errorf("inverse round trip of %v = %v", p, got)
			}
		}
		id := inv.Mul(m)
		for i := range id {
			if math.Abs(id[i]-Identity()[i]) > tol {
				t.Fatalf("inv*m[%d] = %v", i, id[i])
			}
		}
	}
}

func TestInverseSingular(t *testing.T) {
	if got := Scale(V3(0, 1, 1)).Inverse(); got != Identity() {
		t.Errorf("singular inverse = %v, want identity", got)
	}
}

func TestTranspose(t *testing.T) {
	m := Translate(V3(1, 2, 3))
	tr := m.Transpose()
	if tr[3] != 1 || tr[7] != 2 || tr[11] != 3 {
		t.Errorf("Transpose moved translation to %v", tr)
	}
	if tr.Transpose() != m {
		t.Error("double transpose is not the original")
	}
}

func TestViewport(t *testing.T) {
	vp := Viewport(0, 0, 800, 600)

	tests := []struct {
		name string
		ndc  Vec3
		want Vec3
	}{
		{"center", V3(0, 0, 0.5), V3(400, 300, 0.5)},
		{"top left", V3(-1, 1, 0), V3(0, 0, 0)},
		{"bottom right", V3(1, -1, 0), V3(800, 600, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := vp.MulPoint(tt.ndc); !vecNear(got, tt.want) {
				t.Errorf("Viewport(%v) = %v, want %v", tt.ndc, got, tt.want)
			}
		})
	}
}

func TestPerspectiveCenter(t *testing.T) {
	proj := Perspective(math.Pi/4, 1, 0.1, 100)
	view := LookAt(V3(0, 0, 5), Zero3(), Up())

	got := proj.Mul(view).MulPoint(Zero3())
	if math.Abs(got.X) > tol || math.Abs(got.Y) > tol {
		t.Errorf("origin projected off-center: %v", got)
	}
	if got.Z < -1 || got.Z > 1 {
		t.Errorf("origin depth %v outside clip range", got.Z)
	}
}

func TestModelMatrixOrder(t *testing.T) {
	// scale first, then rotate, then translate
	m := ModelMatrix(V3(10, 0, 0), 2, V3(0, math.Pi/2, 0))
	got := m.MulPoint(V3(1, 0, 0))
	want := V3(10, 0, -2)
	if !vecNear(got, want) {
		t.Errorf("ModelMatrix point = %v, want %v", got, want)
	}
}

func TestBarycentric(t *testing.T) {
	a, b, c := V3(0, 0, 0), V3(10, 0, 0), V3(0, 10, 0)
	got := Barycentric(a, b, c, V3(0.5, 0.25, 0.25))
	if !vecNear(got, V3(2.5, 2.5, 0)) {
		t.Errorf("Barycentric = %v", got)
	}
}
