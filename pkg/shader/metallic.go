package shader

import (
	"math"

	"github.com/taigrr/planets/pkg/math3d"
	"github.com/taigrr/planets/pkg/noise"
)

// Metallic is a polished steel world covered in cellular spikes of
// three sizes, lit with a tight and a broad highlight plus Fresnel.
type Metallic struct{}

var (
	metalDark   = RGB8(40, 45, 50)
	metalMedium = RGB8(80, 90, 100)
	metalLight  = RGB8(140, 150, 160)
	metalBright = RGB8(200, 210, 220)
	metalChrome = RGB8(240, 245, 250)
	metalRust   = RGB8(120, 80, 60)
)

func (Metallic) Name() string { return "Metallic" }

// spike is a cone of height h where the cellular distance drops below
// edge, peaking at peak.
func spike(v, edge, peak, h float64) float64 {
	if v >= edge {
		return 0
	}
	return noise.Smoothstep(edge, peak, v) * h
}

func (Metallic) Vertex(pos, normal math3d.Vec3, _ math3d.Vec2, u *Uniforms) (math3d.Vec3, math3d.Vec3) {
	large := spike(noise.Voronoi(pos.X*15+pos.Z*15, pos.Y*15), 0.15, 0.05, 0.35)
	medium := spike(noise.Voronoi(pos.X*25+pos.Z*25, pos.Y*25), 0.12, 0.04, 0.25)
	small := spike(noise.Voronoi(pos.X*40+u.Time*0.1+pos.Z*40, pos.Y*40), 0.1, 0.03, 0.15)

	roughness := noise.FBM3D(pos.X*50, pos.Y*50, pos.Z*50, 4) * 0.05
	pulse := math.Sin(u.Time*2+pos.Len()*5) * 0.02

	displaced := displace(pos, normal, large+medium+small+roughness+pulse)

	factor := large*2 + medium*1.5 + small
	return displaced, normal.Add(normal.Scale(factor)).Normalize()
}

func (Metallic) Fragment(pos, normal math3d.Vec3, uv math3d.Vec2, u *Uniforms) Color {
	pattern := noise.Voronoi(pos.X*20+pos.Z*20, pos.Y*20)
	imperfections := noise.FBM3D(pos.X*30, pos.Y*30, pos.Z*30, 4)
	scratches := noise.FBM(uv.X*100, uv.Y*100, 3)
	mv := (pattern + imperfections*0.5 + scratches*0.3 + 1.5) / 3

	base := metalBase(mv)

	s := newSurface(pos, normal, u)
	specular := s.phong(32) * 1.2
	broad := s.phong(8) * 0.5
	fresnel := s.rim(3) * 0.4
	ao := math.Max(1-math.Abs(imperfections)*0.3, 0.5)
	intensity := math.Min(0.2*ao+s.diffuse()*0.3+specular+broad+fresnel, 2)

	c := base.Scale(intensity)
	if specular > 0.8 {
		c = c.Mix(metalChrome, math.Min((specular-0.8)*5, 0.5))
	}
	return c.Clamp()
}

// metalBase walks the palette from chrome down to rust. Each band is
// 0.2 wide and blends linearly into the next.
func metalBase(v float64) Color {
	w := func(x float64) float64 { return noise.Clamp(x*5, 0, 1) }
	switch {
	case v > 0.8:
		return metalChrome.Mix(metalBright, w(1-v))
	case v > 0.6:
		return metalBright.Mix(metalLight, w(0.8-v))
	case v > 0.4:
		return metalLight.Mix(metalMedium, w(0.6-v))
	case v > 0.2:
		return metalMedium.Mix(metalDark, w(0.4-v))
	default:
		return metalRust.Mix(metalDark, w(v))
	}
}
