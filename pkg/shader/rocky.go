package shader

import (
	"math"

	"github.com/taigrr/planets/pkg/math3d"
	"github.com/taigrr/planets/pkg/noise"
)

// Rocky is a grey cratered world. The surface is displaced by layered
// terrain noise; the palette never changes with time.
type Rocky struct{}

var rockyPalette = [7]Color{
	RGB8(20, 20, 25),
	RGB8(50, 50, 55),
	RGB8(80, 80, 85),
	RGB8(110, 110, 115),
	RGB8(140, 140, 145),
	RGB8(170, 170, 175),
	RGB8(200, 200, 205),
}

// rockyStops are the upper bounds of each palette band.
var rockyStops = [7]float64{0, 0.2, 0.4, 0.6, 0.75, 0.85, 1}

const rockyNormalEpsilon = 0.01

func (Rocky) Name() string { return "Rocky" }

func mountains(p math3d.Vec3) float64 {
	return noise.FBM3D(p.X*2, p.Y*2, p.Z*2, 4) * 0.15
}

func (Rocky) Vertex(pos, normal math3d.Vec3, _ math3d.Vec2, u *Uniforms) (math3d.Vec3, math3d.Vec3) {
	mountain := mountains(pos)
	hills := noise.FBM3D(pos.X*5, pos.Y*5, pos.Z*5, 3) * 0.08
	detail := noise.FBM3D(pos.X*15, pos.Y*15, pos.Z*15, 2) * 0.03

	var crater float64
	if c := noise.Voronoi(pos.X*8, pos.Y*8); c < 0.2 {
		crater = -0.05 * (1 - c/0.2)
	}

	tectonic := math.Sin(u.Time*0.5) * 0.01
	pulse := noise.FBM3D(pos.X*3+u.Time*0.1, pos.Y*3, pos.Z*3, 2) * tectonic

	displaced := displace(pos, normal, mountain+hills+detail+crater+pulse)

	// Finite difference of the mountain layer tilts the normal.
	e := rockyNormalEpsilon
	tangent := mountains(pos.Add(math3d.V3(e, e, e))) - mountain
	perturb := math3d.V3(-tangent, -tangent, -tangent).Scale(0.3)

	return displaced, normal.Add(perturb).Normalize()
}

func (Rocky) Fragment(pos, normal math3d.Vec3, uv math3d.Vec2, u *Uniforms) Color {
	rock := noise.FBM3D(pos.X*8, pos.Y*8, pos.Z*8, 5)
	erosion := noise.FBM(uv.X*20, uv.Y*20, 4)
	fractures := noise.Ridge(uv.X*15, uv.Y*15, 3)
	crater := noise.Voronoi(uv.X*8, uv.Y*8)
	veins := noise.Ridge(uv.X*25, uv.Y*25, 2)

	darkest, dark, lightest := rockyPalette[0], rockyPalette[1], rockyPalette[6]

	base := rockyBase(rock)
	base = base.Mix(darkest, craterShade(crater))
	if erosion > 0.6 {
		base = base.Mix(dark, noise.Smoothstep(0.6, 0.8, erosion)*0.3)
	}
	if fractures > 0.7 {
		base = base.Mix(darkest, noise.Smoothstep(0.7, 0.85, fractures)*0.5)
	}
	if veins > 0.75 {
		base = base.Mix(lightest, noise.Smoothstep(0.75, 0.9, veins)*0.4)
	}

	s := newSurface(pos, normal, u)
	specular := s.phong(8) * 0.2
	ao := math.Max(1-erosion*0.3, 0.3)
	intensity := math.Min(0.2*ao+s.diffuse()*0.7+specular, 1.2)

	return base.Scale(intensity).Clamp()
}

// craterShade is how far a fragment at cellular distance d darkens
// toward the crater floor. It is zero from the rim at 0.2 outward.
func craterShade(d float64) float64 {
	return noise.Smoothstep(0.2, 0.15, d) * 0.6
}

// rockyBase blends between adjacent palette entries so there is no
// visible seam at a band boundary.
func rockyBase(v float64) Color {
	for i := 1; i < len(rockyStops)-1; i++ {
		if v < rockyStops[i] {
			return rockyPalette[i-1].Mix(rockyPalette[i], noise.Smoothstep(rockyStops[i-1], rockyStops[i], v))
		}
	}
	last := len(rockyPalette) - 1
	return rockyPalette[last-1].Mix(rockyPalette[last], noise.Smoothstep(rockyStops[last-1], rockyStops[last], v))
}
