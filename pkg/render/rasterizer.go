package render

import (
	"image"
	"math"

	"github.com/taigrr/planets/pkg/math3d"
)

const (
	// degenerateEpsilon is the smallest |denom| of the barycentric
	// solve that still counts as a triangle.
	degenerateEpsilon = 1e-9

	// edgeEpsilon lets pixel centers that sit on an edge survive
	// float rounding. Edges are inclusive.
	edgeEpsilon = 1e-9
)

// unbounded is the clip rectangle used by Rasterize.
var unbounded = image.Rect(math.MinInt32, math.MinInt32, math.MaxInt32, math.MaxInt32)

// Fragment is one covered pixel of a triangle with its interpolated
// attributes. Position and Normal are in object space after the vertex
// stage.
type Fragment struct {
	X, Y     int
	Depth    float64
	Normal   math3d.Vec3
	Position math3d.Vec3
	UV       math3d.Vec2
	Bary     math3d.Vec3
}

// Project maps p through mvp into screen space, dividing by w when w
// is neither 0 nor 1. Z carries depth.
func Project(mvp math3d.Mat4, p math3d.Vec3) math3d.Vec3 {
	return mvp.MulPoint(p)
}

// EmitFunc receives one covered pixel with the barycentric weights of
// the three corners and the interpolated depth.
type EmitFunc func(x, y int, bary math3d.Vec3, depth float64)

// Rasterize walks every pixel center inside the screen-space triangle
// s0 s1 s2 and calls emit for it. It does no culling and no clipping:
// fragments may lie outside any framebuffer. It reports false for a
// degenerate triangle, which emits nothing.
func Rasterize(s0, s1, s2 math3d.Vec3, emit EmitFunc) bool {
	return RasterizeClipped(s0, s1, s2, unbounded, emit)
}

// RasterizeClipped is Rasterize restricted to pixels inside clip. The
// fragments it emits are exactly those of Rasterize that fall in clip.
func RasterizeClipped(s0, s1, s2 math3d.Vec3, clip image.Rectangle, emit EmitFunc) bool {
	t, ok := newTriSetup(s0, s1, s2)
	if !ok {
		return false
	}
	t.scan(clip, emit)
	return true
}

// triSetup holds everything about a projected triangle that does not
// depend on the pixel being tested.
type triSetup struct {
	ax, ay        float64
	e0x, e0y      float64 // s1 - s0
	e1x, e1y      float64 // s2 - s0
	d00, d01, d11 float64
	denom         float64
	z0, z1, z2    float64
	minX, minY    float64
	maxX, maxY    float64
}

func newTriSetup(s0, s1, s2 math3d.Vec3) (triSetup, bool) {
	if !finite(s0) || !finite(s1) || !finite(s2) {
		return triSetup{}, false
	}

	t := triSetup{
		ax: s0.X, ay: s0.Y,
		e0x: s1.X - s0.X, e0y: s1.Y - s0.Y,
		e1x: s2.X - s0.X, e1y: s2.Y - s0.Y,
		z0: s0.Z, z1: s1.Z, z2: s2.Z,
	}
	t.d00 = t.e0x*t.e0x + t.e0y*t.e0y
	t.d01 = t.e0x*t.e1x + t.e0y*t.e1y
	t.d11 = t.e1x*t.e1x + t.e1y*t.e1y
	t.denom = t.d00*t.d11 - t.d01*t.d01
	if math.Abs(t.denom) < degenerateEpsilon {
		return triSetup{}, false
	}

	t.minX = math.Floor(min(s0.X, s1.X, s2.X))
	t.minY = math.Floor(min(s0.Y, s1.Y, s2.Y))
	t.maxX = math.Ceil(max(s0.X, s1.X, s2.X))
	t.maxY = math.Ceil(max(s0.Y, s1.Y, s2.Y))
	return t, true
}

func (t *triSetup) scan(clip image.Rectangle, emit EmitFunc) {
	// Clamp in float space so huge projections never overflow int.
	x0 := int(math.Max(t.minX, float64(clip.Min.X)))
	x1 := int(math.Min(t.maxX, float64(clip.Max.X-1)))
	y0 := int(math.Max(t.minY, float64(clip.Min.Y)))
	y1 := int(math.Min(t.maxY, float64(clip.Max.Y-1)))

	for y := y0; y <= y1; y++ {
		py := float64(y) + 0.5 - t.ay
		for x := x0; x <= x1; x++ {
			px := float64(x) + 0.5 - t.ax

			d20 := px*t.e0x + py*t.e0y
			d21 := px*t.e1x + py*t.e1y
			v := (t.d11*d20 - t.d01*d21) / t.denom
			w := (t.d00*d21 - t.d01*d20) / t.denom
			u := 1 - v - w
			if u < -edgeEpsilon || v < -edgeEpsilon || w < -edgeEpsilon {
				continue
			}
			u, v, w = clamp01(u), clamp01(v), clamp01(w)

			emit(x, y, math3d.V3(u, v, w), u*t.z0+v*t.z1+w*t.z2)
		}
	}
}

func clamp01(x float64) float64 {
	return min(max(x, 0), 1)
}

func finite(v math3d.Vec3) bool {
	for _, f := range [...]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
