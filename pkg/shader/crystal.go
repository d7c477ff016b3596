package shader

import (
	"math"

	"github.com/taigrr/planets/pkg/math3d"
	"github.com/taigrr/planets/pkg/noise"
)

// Crystal is the sci-fi world: a glowing circuit board of grid lines,
// hexagonal cells, data streams and power nodes, with a scan line and
// the occasional glitch.
type Crystal struct{}

var (
	crystalBase    = RGB8(10, 15, 30)
	crystalBlue    = RGB8(0, 150, 255)
	crystalCyan    = RGB8(0, 255, 255)
	crystalGreen   = RGB8(0, 255, 150)
	crystalPurple  = RGB8(150, 0, 255)
	crystalPink    = RGB8(255, 0, 150)
	crystalWhite   = RGB8(200, 255, 255)
	crystalWarning = RGB8(255, 150, 0)
)

const crystalGrid = 20

func (Crystal) Name() string { return "Crystal" }

func (Crystal) Vertex(pos, normal math3d.Vec3, _ math3d.Vec2, u *Uniforms) (math3d.Vec3, math3d.Vec3) {
	pulse := math.Sin(u.Time*3+pos.Len()*5) * 0.01
	return displace(pos, normal, pulse), normal
}

func (Crystal) Fragment(pos, normal math3d.Vec3, uv math3d.Vec2, u *Uniforms) Color {
	t := u.Time
	r := pos.Len()

	gx := noise.Fract(uv.X * crystalGrid)
	gy := noise.Fract(uv.Y * crystalGrid)
	grid := noise.Smoothstep(0.02, 0, math.Min(gx, 1-gx)) +
		noise.Smoothstep(0.02, 0, math.Min(gy, 1-gy))

	hex := noise.Voronoi(uv.X*12, uv.Y*12)
	cells := noise.Smoothstep(0.15, 0.2, hex)
	borders := noise.Smoothstep(0.18, 0.22, hex) - noise.Smoothstep(0.22, 0.25, hex)

	flow1 := noise.FBM(uv.X*15+t*0.5, uv.Y*15, 4)
	flow2 := noise.FBM(uv.X*20-t*0.7, uv.Y*10+t*0.3, 3)
	streams := noise.Smoothstep(0.6, 0.8, flow1) + noise.Smoothstep(0.65, 0.85, flow2)

	energy := wave(t*5+r*3)*0.6 + wave(t*7.5-r*2)*0.4

	nodes := noise.Voronoi(uv.X*8, uv.Y*8)
	centers := noise.Smoothstep(0.08, 0.05, nodes)
	glow := noise.Smoothstep(0.15, 0.05, nodes)

	scan := noise.Fract(uv.Y*10 - t*2)
	scanIntensity := noise.Smoothstep(0.05, 0, math.Abs(scan-0.5))

	glitch := noise.Simple(math.Floor(t*10)*0.1, math.Floor(uv.Y*20))
	glitchEffect := past(glitch, 0.95, 0.02) * noise.Simple(uv.X*100+t*50, uv.Y) * 0.3

	c := crystalBase
	c = c.Mix(crystalBlue, past(grid, 0.1, 0.1)*grid*energy*0.5)
	c = c.Mix(crystalCyan.Mix(crystalBlue, energy), past(borders, 0.1, 0.1)*borders*0.8)

	variety := noise.Simple(uv.X*12, uv.Y*12)
	cell := crystalBlue.Mix(crystalGreen, past(variety, 0.4, 0.05)).Mix(crystalPurple, past(variety, 0.7, 0.05))
	c = c.Mix(cell, past(cells, 0.5, 0.1)*cells*0.3*energy)

	c = c.Mix(crystalGreen.Mix(crystalCyan, wave(t*2)), past(streams, 0.5, 0.1)*streams*0.7)
	c = c.Mix(crystalPink.Mix(crystalWhite, wave(t*4+uv.X*20)), past(centers, 0.5, 0.1)*centers)
	c = c.Mix(crystalWarning, past(glow, 0.3, 0.1)*glow*0.4*energy)
	c = c.Mix(crystalWhite, past(scanIntensity, 0.1, 0.1)*scanIntensity*0.8)
	c = c.Mix(crystalPink.Mix(crystalCyan, glitch), past(glitchEffect, 0.1, 0.05)*glitchEffect)

	fractal := noise.FBM3D(pos.X*10+t*0.1, pos.Y*10, pos.Z*10-t*0.15, 5)
	if fractal > 0.6 {
		c = c.Mix(crystalPurple.Mix(crystalBlue, fractal), noise.Smoothstep(0.6, 0.75, fractal)*0.4)
	}

	s := newSurface(pos, normal, u)
	self := 0.8 + energy*0.3
	c = c.Scale(math.Min(0.2+s.diffuse()*0.2+self, 2))

	rim := s.rim(3)
	c = c.Mix(crystalCyan.Mix(crystalPink, wave(t*2)), past(rim, 0.4, 0.1)*rim*0.8)
	return c.Clamp()
}
