package shader

import (
	"math"

	"github.com/taigrr/planets/pkg/math3d"
	"github.com/taigrr/planets/pkg/noise"
)

// Nebula is a self-luminous ball of drifting gas, dust and ion fields
// with forming stars, cosmic rays and expanding shock waves.
type Nebula struct{}

var (
	nebulaVoid    = RGB8(5, 0, 10)
	nebulaDeep    = RGB8(30, 0, 60)
	nebulaRoyal   = RGB8(75, 0, 130)
	nebulaMagenta = RGB8(200, 0, 150)
	nebulaPink    = RGB8(255, 20, 147)
	nebulaBlue    = RGB8(0, 100, 255)
	nebulaCyan    = RGB8(0, 255, 255)
	nebulaOrange  = RGB8(255, 100, 0)
	nebulaYellow  = RGB8(255, 255, 100)
	nebulaWhite   = RGB8(255, 255, 255)
	nebulaBloom   = RGB8(255, 200, 255)
)

func (Nebula) Name() string { return "Nebula" }

func (Nebula) Vertex(pos, normal math3d.Vec3, _ math3d.Vec2, u *Uniforms) (math3d.Vec3, math3d.Vec3) {
	w1 := math.Sin(u.Time*1.5+pos.X*3+pos.Y*2) * 0.03
	w2 := math.Cos(u.Time*2-pos.Z*4+pos.Y) * 0.02
	return displace(pos, normal, w1+w2), normal
}

func (Nebula) Fragment(pos, normal math3d.Vec3, uv math3d.Vec2, u *Uniforms) Color {
	t := u.Time
	r := pos.Len()

	gas1 := noise.FBM3D(pos.X*2+t*0.03, pos.Y*2+t*0.02, pos.Z*2-t*0.025, 7)
	gas2 := noise.FBM3D(pos.X*3-t*0.02, pos.Y*3+t*0.035, pos.Z*3+t*0.015, 6)
	density := gas1*0.6 + gas2*0.4

	dust := noise.FBM(uv.X*8+t*0.05, uv.Y*8-t*0.04, 5)*0.5 +
		noise.FBM(uv.X*12-t*0.03, uv.Y*12+t*0.06, 4)*0.5

	ion := noise.FBM3D(pos.X*5+t*0.1, pos.Y*5, pos.Z*5-t*0.08, 4)*0.6 +
		noise.FBM3D(pos.X*7-t*0.12, pos.Y*7+t*0.09, pos.Z*7, 3)*0.4

	vortex := noise.Smoothstep(0.2, 0.1, noise.Voronoi(uv.X*6+t*0.04, uv.Y*6-t*0.035))
	rays := noise.Smoothstep(0.75, 0.9, noise.Ridge(uv.X*20+t*0.3, uv.Y*20-t*0.25, 3))

	stars := noise.Voronoi(uv.X*15, uv.Y*15)
	proto := noise.Smoothstep(0.05, 0.02, stars)
	starGlow := noise.Smoothstep(0.12, 0.02, stars)

	e1 := wave(t*2 + r*3)
	e2 := math.Cos(t*3-r*2)*0.5 + 0.5
	cosmic := e1*0.6 + e2*0.4

	shockDist := math3d.V3(pos.X+t*0.5, pos.Y, pos.Z).Len()
	shock := wave(shockDist*5 - t*3)
	shockIntensity := noise.Smoothstep(0.7, 0.9, shock) * noise.Smoothstep(0.3, 0.4, density)

	c := nebulaVoid
	if density > 0.2 {
		var gas Color
		switch {
		case density > 0.7:
			gas = nebulaRoyal.Mix(nebulaMagenta, noise.Smoothstep(0.7, 0.85, density))
		case density > 0.5:
			gas = nebulaDeep.Mix(nebulaRoyal, noise.Smoothstep(0.5, 0.7, density))
		default:
			gas = nebulaVoid.Mix(nebulaDeep, noise.Smoothstep(0.2, 0.5, density))
		}
		c = c.Mix(gas, 0.9)
	}
	if dust > 0.55 {
		col := nebulaOrange.Mix(nebulaYellow, noise.Smoothstep(0.55, 0.75, dust))
		c = c.Mix(col, noise.Smoothstep(0.55, 0.7, dust)*0.6)
	}
	if ion > 0.6 {
		c = c.Mix(nebulaBlue.Mix(nebulaCyan, cosmic), noise.Smoothstep(0.6, 0.75, ion)*0.7)
	}
	c = c.Mix(nebulaPink.Mix(nebulaMagenta, cosmic), past(vortex, 0.4, 0.1)*vortex*0.8)
	c = c.Mix(nebulaCyan.Mix(nebulaWhite, e1), past(rays, 0.5, 0.1)*rays*0.9)
	c = c.Mix(nebulaYellow.Mix(nebulaWhite, wave(t*5+uv.X*50)), past(proto, 0.6, 0.1)*proto)

	halo := past(starGlow, 0.3, 0.1) * past(starGlow, 0.7, -0.1)
	c = c.Mix(nebulaOrange.Mix(nebulaYellow, cosmic), halo*starGlow*0.5)
	c = c.Mix(nebulaCyan.Mix(nebulaBlue, shock), past(shockIntensity, 0.5, 0.1)*shockIntensity*0.7)

	volumetric := density*0.5 + dust*0.3 + ion*0.2

	if p := noise.Simple(uv.X*100, uv.Y*100); p > 0.98 {
		brightness := noise.Simple(uv.X*200+t, uv.Y*200)
		c = c.Mix(nebulaYellow.Mix(nebulaWhite, brightness), (p-0.98)*50)
	}

	s := newSurface(pos, normal, u)
	self := 1.2 + cosmic*0.5 + volumetric*0.8
	scatter := (1 - math.Abs(density)) * 0.3
	c = c.Scale(math.Min(0.1+s.diffuse()*0.1+self+scatter, 2.5))

	rim := s.rim(2)
	rimColor := nebulaMagenta.Mix(nebulaCyan, e1).Mix(nebulaPink, e2)
	c = c.Mix(rimColor, past(rim, 0.3, 0.1)*rim*0.7)
	if volumetric > 0.6 {
		c = c.Mix(nebulaBloom, noise.Smoothstep(0.6, 0.8, volumetric)*0.3)
	}
	return c.Clamp()
}
