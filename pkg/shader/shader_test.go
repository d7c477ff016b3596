package shader

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/planets/pkg/math3d"
)

func testUniforms(t float64) *Uniforms {
	return &Uniforms{
		Model:      math3d.Identity(),
		View:       math3d.LookAt(math3d.V3(0, 0, 5), math3d.Zero3(), math3d.Up()),
		Projection: math3d.Perspective(math.Pi/4, 1, 0.1, 100),
		Viewport:   math3d.Viewport(0, 0, 64, 64),
		Time:       t,
		LightDir:   math3d.V3(1, 1, 1).Normalize(),
		CameraPos:  math3d.V3(0, 0, 5),
	}
}

type sample struct {
	pos math3d.Vec3
	uv  math3d.Vec2
}

// spherePoints samples the unit sphere with matching UVs.
func spherePoints() []sample {
	var pts []sample
	for i := range 7 {
		for j := range 9 {
			theta := math.Pi * float64(i) / 6
			phi := 2 * math.Pi * float64(j) / 8
			p := math3d.V3(math.Sin(theta)*math.Cos(phi), math.Cos(theta), math.Sin(theta)*math.Sin(phi))
			pts = append(pts, sample{p, math3d.V2(float64(j)/8, float64(i)/6)})
		}
	}
	return pts
}

func inUnit(c Color) bool {
	for _, v := range []float64{c.R, c.G, c.B, c.A} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return false
		}
	}
	return true
}

func hasNaN(v math3d.Vec3) bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z)
}

func TestFragmentClamped(t *testing.T) {
	for _, k := range Kinds() {
		s := New(k)
		t.Run(s.Name(), func(t *testing.T) {
			for _, tm := range []float64{0, 1.7, 42.25} {
				u := testUniforms(tm)
				for _, p := range spherePoints() {
					c := s.Fragment(p.pos, p.pos, p.uv, u)
					if !inUnit(c) {
						t.Fatalf("t=%v pos=%v: color %+v outside [0,1]", tm, p.pos, c)
					}
				}
			}
		})
	}
}

func TestVertexDeterministic(t *testing.T) {
	u := testUniforms(3.3)
	for _, k := range Kinds() {
		s := New(k)
		t.Run(s.Name(), func(t *testing.T) {
			for _, p := range spherePoints() {
				p1, n1 := s.Vertex(p.pos, p.pos, p.uv, u)
				p2, n2 := s.Vertex(p.pos, p.pos, p.uv, u)
				if p1 != p2 || n1 != n2 {
					t.Fatalf("Vertex(%v) not deterministic", p.pos)
				}
				if hasNaN(p1) || hasNaN(n1) {
					t.Fatalf("Vertex(%v) produced NaN", p.pos)
				}
			}
		})
	}
}

func TestDegenerateInputs(t *testing.T) {
	u := testUniforms(1)
	u.LightDir = math3d.Zero3()
	for _, k := range Kinds() {
		s := New(k)
		t.Run(s.Name(), func(t *testing.T) {
			pos, n := s.Vertex(math3d.Zero3(), math3d.Zero3(), math3d.V2(0, 0), u)
			if hasNaN(pos) || hasNaN(n) {
				t.Fatalf("zero input vertex produced NaN: %v %v", pos, n)
			}
			// Fragment sitting exactly on the camera.
			if c := s.Fragment(u.CameraPos, math3d.Zero3(), math3d.V2(0.5, 0.5), u); !inUnit(c) {
				t.Fatalf("degenerate fragment color %+v", c)
			}
		})
	}
}

func TestRockyPaletteTimeInvariant(t *testing.T) {
	s := Rocky{}
	for _, p := range spherePoints() {
		a := s.Fragment(p.pos, p.pos, p.uv, testUniforms(0))
		b := s.Fragment(p.pos, p.pos, p.uv, testUniforms(1000))
		if a != b {
			t.Fatalf("rocky color changed with time at %v: %+v vs %+v", p.pos, a, b)
		}
	}
}

func TestRockyNormalUnit(t *testing.T) {
	u := testUniforms(2)
	for _, p := range spherePoints() {
		_, n := Rocky{}.Vertex(p.pos, p.pos, p.uv, u)
		if l := n.Len(); math.Abs(l-1) > 1e-9 {
			t.Fatalf("rocky normal at %v has length %v", p.pos, l)
		}
	}
}

func TestGasGiantKeepsGeometry(t *testing.T) {
	u := testUniforms(5)
	for _, p := range spherePoints() {
		pos, n := GasGiant{}.Vertex(p.pos, p.pos, p.uv, u)
		if pos != p.pos || n != p.pos {
			t.Fatalf("gas giant moved vertex %v to %v", p.pos, pos)
		}
	}
}

func TestDisplacementAlongNormal(t *testing.T) {
	u := testUniforms(0.8)
	for _, s := range []Shader{Crystal{}, Nebula{}, Metallic{}} {
		t.Run(s.Name(), func(t *testing.T) {
			for _, p := range spherePoints() {
				pos, _ := s.Vertex(p.pos, p.pos, p.uv, u)
				// On the unit sphere normal == position, so the displaced
				// point stays on the same ray.
				if c := pos.Cross(p.pos).Len(); c > 1e-9 {
					t.Fatalf("displacement left the normal ray at %v: %v", p.pos, pos)
				}
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"rocky", KindRocky, false},
		{"Gas-Giant", KindGasGiant, false},
		{"gas", KindGasGiant, false},
		{" sci-fi ", KindCrystal, false},
		{"NEBULA", KindNebula, false},
		{"metal", KindMetallic, false},
		{"lava", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownShader) {
					t.Fatalf("ParseKind(%q) error = %v, want ErrUnknownShader", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("ParseKind(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestKindRoundTrip(t *testing.T) {
	for i, k := range Kinds() {
		if k.Key() != rune('1'+i) {
			t.Errorf("%v.Key() = %q", k, k.Key())
		}
		back, ok := KindForKey(k.Key())
		if !ok || back != k {
			t.Errorf("KindForKey(%q) = %v, %v", k.Key(), back, ok)
		}
		parsed, err := ParseKind(k.String())
		if err != nil || parsed != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), parsed, err)
		}
		if k.Description() == "" {
			t.Errorf("%v has no description", k)
		}
	}
	if _, ok := KindForKey('9'); ok {
		t.Error("KindForKey('9') should not resolve")
	}
	if Kind(42).String() != "Kind(42)" {
		t.Errorf("invalid kind string = %q", Kind(42).String())
	}
}

func TestColor(t *testing.T) {
	c := RGB8(255, 0, 51)
	if c.R != 1 || c.G != 0 || math.Abs(c.B-0.2) > 1e-12 || c.A != 1 {
		t.Errorf("RGB8 = %+v", c)
	}
	if got := c.Packed(); got != 0xff0033 {
		t.Errorf("Packed = %06x, want ff0033", got)
	}

	mid := Color{0, 0, 0, 1}.Mix(Color{1, 1, 1, 1}, 0.5)
	if mid != (Color{0.5, 0.5, 0.5, 1}) {
		t.Errorf("Mix = %+v", mid)
	}

	over := Color{2, -1, 0.5, 1}.Clamp()
	if over != (Color{1, 0, 0.5, 1}) {
		t.Errorf("Clamp = %+v", over)
	}

	if rgba := (Color{1.5, 0.5, 0, 1}).RGBA(); rgba.R != 255 || rgba.G != 128 || rgba.B != 0 || rgba.A != 255 {
		t.Errorf("RGBA = %+v", rgba)
	}
}

func TestUniformsMVP(t *testing.T) {
	u := testUniforms(0)
	center := u.MVP().MulPoint(math3d.Zero3())
	if math.Abs(center.X-32) > 1e-9 || math.Abs(center.Y-32) > 1e-9 {
		t.Errorf("origin projects to %v, want viewport center", center)
	}
}

func BenchmarkFragment(b *testing.B) {
	u := testUniforms(1.5)
	pos := math3d.V3(0.3, 0.4, 0.866).Normalize()
	uv := math3d.V2(0.37, 0.61)
	for _, k := range Kinds() {
		s := New(k)
		b.Run(s.Name(), func(b *testing.B) {
			for b.Loop() {
				_ = s.Fragment(pos, pos, uv, u)
			}
		})
	}
}

// maxDelta is the largest channel difference between a and b.
func maxDelta(a, b Color) float64 {
	return max(math.Abs(a.R-b.R), math.Abs(a.G-b.G), math.Abs(a.B-b.B), math.Abs(a.A-b.A))
}

func TestLayerBoundariesContinuous(t *testing.T) {
	const step = 1e-9
	gray := func(v float64) Color { return Color{v, v, v, 1} }

	var bands []float64
	for k := -3; k <= gasBandsPerSphere+2; k++ {
		bands = append(bands, float64(k))
	}

	tests := []struct {
		name   string
		color  func(x float64) Color
		points []float64
	}{
		{"gas bands calm", func(p float64) Color { return gasBandColor(p, 0) }, bands},
		{"gas bands turbulent", func(p float64) Color { return gasBandColor(p, 0.3) }, bands},
		{"gas bands saturated", func(p float64) Color { return gasBandColor(p, 0.9) }, bands},
		{"metal palette", metalBase, []float64{0.2, 0.4, 0.6, 0.8}},
		{"rock palette", rockyBase, rockyStops[1:]},
		{"crater rim", func(d float64) Color { return gray(craterShade(d)) }, []float64{0.15, 0.2}},
		{"gate", func(x float64) Color { return gray(past(x, 0.5, 0.1) * x) }, []float64{0.5, 0.6}},
		{"falling gate", func(x float64) Color { return gray(past(x, 0.7, -0.1) * x) }, []float64{0.6, 0.7}},
		{"star halo", func(x float64) Color {
			return gray(past(x, 0.3, 0.1) * past(x, 0.7, -0.1) * x * 0.5)
		}, []float64{0.3, 0.4, 0.6, 0.7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, x := range tt.points {
				lo, hi := tt.color(x-step), tt.color(x+step)
				if d := maxDelta(lo, hi); d > 1e-6 {
					t.Errorf("jump of %v at %v: %+v -> %+v", d, x, lo, hi)
				}
			}
		})
	}
}

func TestGasBandColorFadesIntoNextBand(t *testing.T) {
	for band := range len(gasBands) {
		top := gasBandColor(float64(band)+1-1e-12, 0)
		want := gasBands[(band+1)%len(gasBands)][0]
		if d := maxDelta(top, want); d > 1e-6 {
			t.Errorf("band %d ends at %+v, want next band start %+v", band, top, want)
		}
		if mid := gasBandColor(float64(band)+0.5, 0); maxDelta(mid, gasBands[band][0].Mix(gasBands[band][1], 0.5)) > 1e-12 {
			t.Errorf("band %d middle = %+v, want its own blend", band, mid)
		}
	}
}

func TestPast(t *testing.T) {
	tests := []struct {
		x, threshold, width float64
		want                float64
	}{
		{0.5, 0.5, 0.1, 0},
		{0.45, 0.5, 0.1, 0},
		{0.6, 0.5, 0.1, 1},
		{0.55, 0.5, 0.1, 0.5},
		{0.7, 0.7, -0.1, 0},
		{0.6, 0.7, -0.1, 1},
		{0.9, 0.7, -0.1, 0},
	}

	for _, tt := range tests {
		if got := past(tt.x, tt.threshold, tt.width); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("past(%v, %v, %v) = %v, want %v", tt.x, tt.threshold, tt.width, got, tt.want)
		}
	}
}
