package shader

import (
	"math"

	"github.com/taigrr/planets/pkg/math3d"
	"github.com/taigrr/planets/pkg/noise"
)

// GasGiant is a Jupiter-like banded atmosphere with a rotating red
// storm and two white ovals. The geometry is left untouched.
type GasGiant struct{}

var (
	gasVeryDark  = RGB8(60, 35, 15)
	gasDarkBrown = RGB8(110, 65, 25)
	gasRust      = RGB8(150, 85, 35)
	gasOrange    = RGB8(200, 120, 50)
	gasTan       = RGB8(210, 150, 90)
	gasBeige     = RGB8(230, 190, 130)
	gasCream     = RGB8(245, 220, 170)
	gasWhite     = RGB8(255, 250, 230)
	gasRedSpot   = RGB8(200, 60, 30)
)

// gasBands lists the color pair each of the eight repeating bands
// blends between.
var gasBands = [8][2]Color{
	{gasVeryDark, gasDarkBrown},
	{gasTan, gasBeige},
	{gasDarkBrown, gasRust},
	{gasCream, gasWhite},
	{gasRust, gasOrange},
	{gasBeige, gasCream},
	{gasOrange, gasTan},
	{gasWhite, gasCream},
}

const (
	gasBandsPerSphere = 14
	gasDrift          = 0.015
)

func (GasGiant) Name() string { return "Gas Giant" }

func (GasGiant) Vertex(pos, normal math3d.Vec3, _ math3d.Vec2, _ *Uniforms) (math3d.Vec3, math3d.Vec3) {
	return pos, normal
}

func (GasGiant) Fragment(pos, normal math3d.Vec3, uv math3d.Vec2, u *Uniforms) Color {
	lat := uv.Y
	lon := uv.X + u.Time*gasDrift

	jet := noise.FBM(lon*12, lat*5, 5) * 0.25
	vortices := noise.FBM(lon*8+lat*20, lat*8, 4) * 0.15
	fine := noise.FBM(lon*25, lat*20, 3) * 0.08

	c := gasBandColor(lat*gasBandsPerSphere, jet+vortices+fine)

	// Great red spot, stretched horizontally.
	dx := (lon - 0.3) * 2.5
	dy := lat - 0.4
	if d := math.Hypot(dx, dy); d < 0.15 {
		strength := noise.Smoothstep(0.15, 0.06, d)
		spiral := wave(math.Atan2(dy, dx)*3 - d*10 + u.Time*0.5)
		c = c.Mix(gasRedSpot.Mix(gasOrange, spiral), strength*0.9)
	}

	if d := ellipse(lon, lat, 0.6, 0.55, 4); d < 0.05 {
		c = c.Mix(gasWhite, noise.Smoothstep(0.05, 0.02, d)*0.8)
	}
	if d := ellipse(lon, lat, 0.75, 0.32, 5); d < 0.04 {
		c = c.Mix(gasCream, noise.Smoothstep(0.04, 0.015, d)*0.7)
	}

	s := newSurface(pos, normal, u)
	return c.Scale(math.Min(0.4+s.diffuse()*0.6, 1)).Clamp()
}

// gasBandColor returns the cloud color at band position p, with turb
// pushing the blend toward each band's second color. The top 15% of a
// band fades into the color the next band starts with.
func gasBandColor(p, turb float64) Color {
	n := len(gasBands)
	band := ((int(math.Floor(p)) % n) + n) % n
	f := noise.Fract(p)

	c := gasBands[band][0].Mix(gasBands[band][1], noise.Clamp(f+turb, 0, 1))
	next := gasBands[(band+1)%n]
	start := next[0].Mix(next[1], noise.Clamp(turb, 0, 1))
	return c.Mix(start, noise.Smoothstep(0.85, 1, f))
}

// ellipse is the distance from (x, y) to (cx, cy) with x stretched by
// sqrt(stretch).
func ellipse(x, y, cx, cy, stretch float64) float64 {
	dx, dy := x-cx, y-cy
	return math.Sqrt(dx*dx*stretch + dy*dy)
}
