package shader

import (
	"math"

	"github.com/taigrr/planets/pkg/math3d"
	"github.com/taigrr/planets/pkg/noise"
)

// surface holds the world-space vectors a fragment is lit with.
// Noise is sampled in object space so patterns turn with the planet,
// while lighting happens in world space so the terminator stays put.
type surface struct {
	n, l, v math3d.Vec3
	ndotl   float64
}

func newSurface(pos, normal math3d.Vec3, u *Uniforms) surface {
	n := u.Model.MulDir(normal).Normalize()
	l := u.LightDir.Normalize()
	v := u.CameraPos.Sub(u.Model.MulPoint(pos)).Normalize()
	return surface{n: n, l: l, v: v, ndotl: n.Dot(l)}
}

// diffuse is the Lambert term max(n·l, 0).
func (s surface) diffuse() float64 {
	return math.Max(s.ndotl, 0)
}

// phong is max(v·r, 0)^exp with r the light reflected about n.
func (s surface) phong(exp float64) float64 {
	r := s.n.Scale(2 * s.ndotl).Sub(s.l)
	return math.Pow(math.Max(s.v.Dot(r), 0), exp)
}

// rim is (1-|v·n|)^exp, strongest at the silhouette.
func (s surface) rim(exp float64) float64 {
	return math.Pow(1-math.Abs(s.v.Dot(s.n)), exp)
}

// displace moves pos along normal by d.
func displace(pos, normal math3d.Vec3, d float64) math3d.Vec3 {
	return pos.Add(normal.Scale(d))
}

// wave maps sin onto [0, 1].
func wave(x float64) float64 {
	return math.Sin(x)*0.5 + 0.5
}

// past ramps from 0 at threshold to 1 at threshold+width. A negative
// width gives a gate that opens below the threshold. Layers scale
// their blend weight by it so nothing switches on with a jump.
func past(x, threshold, width float64) float64 {
	return noise.Smoothstep(threshold, threshold+width, x)
}
