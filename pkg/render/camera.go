package render

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/planets/pkg/math3d"
)

// Orbit limits.
const (
	MaxElevation = math.Pi/2 - 0.1
	MinRadius    = 1.0
	MaxRadius    = 20.0
)

// Camera orbits a target point. Orbit and Zoom move goal values; Update
// springs the visible values towards them once per frame.
type Camera struct {
	Target math3d.Vec3

	Azimuth   float64 // radians around Y, 0 looks down -Z
	Elevation float64 // radians above the XZ plane
	Radius    float64

	FOV  float64 // vertical, radians
	Near float64
	Far  float64

	goalAzimuth   float64
	goalElevation float64
	goalRadius    float64

	azVel, elVel, radVel float64
	spring               harmonica.Spring

	home float64
}

// NewCamera returns a camera on the +Z axis at radius, looking at the
// origin, stepped at fps updates per second.
func NewCamera(fps int, radius float64) *Camera {
	radius = clampRadius(radius)
	return &Camera{
		Radius:     radius,
		goalRadius: radius,
		FOV:        math.Pi / 4,
		Near:       0.1,
		Far:        100,
		// Critically damped: no overshoot past the clamps.
		spring: harmonica.NewSpring(harmonica.FPS(max(fps, 1)), 6.0, 1.0),
		home:   radius,
	}
}

// Orbit turns the goal azimuth and elevation by the given radians.
// Elevation stays short of the poles.
func (c *Camera) Orbit(dAzimuth, dElevation float64) {
	c.goalAzimuth += dAzimuth
	c.goalElevation = clampElevation(c.goalElevation + dElevation)
}

// Zoom moves the goal radius by delta, within [MinRadius, MaxRadius].
func (c *Camera) Zoom(delta float64) {
	c.goalRadius = clampRadius(c.goalRadius + delta)
}

// Reset returns the goals to the starting pose.
func (c *Camera) Reset() {
	c.goalAzimuth, c.goalElevation, c.goalRadius = 0, 0, c.home
}

// Update advances the springs one frame.
func (c *Camera) Update() {
	c.Azimuth, c.azVel = c.spring.Update(c.Azimuth, c.azVel, c.goalAzimuth)
	c.Elevation, c.elVel = c.spring.Update(c.Elevation, c.elVel, c.goalElevation)
	c.Radius, c.radVel = c.spring.Update(c.Radius, c.radVel, c.goalRadius)

	c.Elevation = clampElevation(c.Elevation)
	c.Radius = clampRadius(c.Radius)
}

// Settle jumps straight to the goals.
func (c *Camera) Settle() {
	c.Azimuth, c.Elevation, c.Radius = c.goalAzimuth, c.goalElevation, c.goalRadius
	c.azVel, c.elVel, c.radVel = 0, 0, 0
}

// Eye returns the camera position in world space.
func (c *Camera) Eye() math3d.Vec3 {
	cosEl := math.Cos(c.Elevation)
	offset := math3d.V3(
		c.Radius*cosEl*math.Sin(c.Azimuth),
		c.Radius*math.Sin(c.Elevation),
		c.Radius*cosEl*math.Cos(c.Azimuth),
	)
	return c.Target.Add(offset)
}

// ViewMatrix returns the world-to-camera transform.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	return math3d.LookAt(c.Eye(), c.Target, math3d.Up())
}

// ProjectionMatrix returns the perspective projection for aspect
// (width / height).
func (c *Camera) ProjectionMatrix(aspect float64) math3d.Mat4 {
	return math3d.Perspective(c.FOV, aspect, c.Near, c.Far)
}

func clampElevation(e float64) float64 {
	return min(max(e, -MaxElevation), MaxElevation)
}

func clampRadius(r float64) float64 {
	return min(max(r, MinRadius), MaxRadius)
}

// Spin is the model's rotation about Y. Toggling eases the angular
// speed between zero and Speed instead of stopping dead.
type Spin struct {
	Angle float64
	Speed float64 // radians per second when running

	Running bool

	rate    float64
	rateVel float64
	spring  harmonica.Spring
	dt      float64
}

// NewSpin returns a running spin at speed radians per second.
func NewSpin(fps int, speed float64) *Spin {
	fps = max(fps, 1)
	return &Spin{
		Speed:   speed,
		Running: true,
		rate:    speed,
		spring:  harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
		dt:      1 / float64(fps),
	}
}

// Toggle starts or stops the spin.
func (s *Spin) Toggle() {
	s.Running = !s.Running
}

// Update advances the angle by one frame.
func (s *Spin) Update() {
	goal := 0.0
	if s.Running {
		goal = s.Speed
	}
	s.rate, s.rateVel = s.spring.Update(s.rate, s.rateVel, goal)
	s.Angle += s.rate * s.dt
}

// At sets the angle for elapsed seconds t at full speed, as a headless
// render would see it.
func (s *Spin) At(t float64) {
	s.Angle = s.Speed * t
	s.rate = s.Speed
	s.rateVel = 0
}
