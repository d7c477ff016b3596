// Package shader holds the procedural planet materials. Each material
// pairs a vertex stage, which may displace the sphere surface, with a
// fragment stage that builds a color from layered noise and lighting.
//
// Shaders are stateless. Everything that varies between frames arrives
// through Uniforms.
package shader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taigrr/planets/pkg/math3d"
)

// ErrUnknownShader is returned by ParseKind for names it does not know.
var ErrUnknownShader = errors.New("unknown shader")

// Uniforms is the per-frame, read-only input shared by every vertex and
// fragment invocation.
type Uniforms struct {
	Model      math3d.Mat4
	View       math3d.Mat4
	Projection math3d.Mat4
	Viewport   math3d.Mat4

	// Time is elapsed seconds, monotonically increasing.
	Time float64

	// LightDir points from the surface towards the light, in world space.
	LightDir  math3d.Vec3
	CameraPos math3d.Vec3
}

// MVP returns the composed object-to-screen transform.
func (u *Uniforms) MVP() math3d.Mat4 {
	return u.Viewport.Mul(u.Projection).Mul(u.View).Mul(u.Model)
}

// Shader is a planet material.
//
// Vertex receives an object-space position and normal and returns the
// displaced position and its normal. It must be deterministic so that
// the three corners of a shared edge agree.
//
// Fragment receives the interpolated object-space position and normal
// and returns a color clamped to [0, 1].
type Shader interface {
	Name() string
	Vertex(pos, normal math3d.Vec3, uv math3d.Vec2, u *Uniforms) (math3d.Vec3, math3d.Vec3)
	Fragment(pos, normal math3d.Vec3, uv math3d.Vec2, u *Uniforms) Color
}

// Kind identifies one of the built-in planet materials.
type Kind int

const (
	KindRocky Kind = iota
	KindGasGiant
	KindCrystal
	KindNebula
	KindMetallic
)

var kindInfo = [...]struct {
	name string
	desc string
}{
	KindRocky:    {"rocky", "Rocky planet: deformed terrain with craters"},
	KindGasGiant: {"gasgiant", "Gas giant: atmospheric bands like Jupiter"},
	KindCrystal:  {"crystal", "Sci-fi planet: circuits and technological energy"},
	KindNebula:   {"nebula", "Nebula planet: ethereal cosmic gas"},
	KindMetallic: {"metallic", "Metallic planet: surface with metallic spikes"},
}

// Kinds returns every built-in kind in hotkey order.
func Kinds() []Kind {
	return []Kind{KindRocky, KindGasGiant, KindCrystal, KindNebula, KindMetallic}
}

func (k Kind) valid() bool {
	return k >= 0 && int(k) < len(kindInfo)
}

func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindInfo[k].name
}

// Description is the one-line caption shown in the HUD.
func (k Kind) Description() string {
	if !k.valid() {
		return ""
	}
	return kindInfo[k].desc
}

// Key is the hotkey that selects the kind ('1'..'5').
func (k Kind) Key() rune {
	return rune('1' + int(k))
}

// KindForKey maps a hotkey back to a kind.
func KindForKey(r rune) (Kind, bool) {
	k := Kind(r - '1')
	return k, k.valid()
}

// ParseKind resolves a case-insensitive shader name. "gas" and "gas-giant"
// are accepted for the gas giant; "scifi" for the crystal planet.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rocky", "rock":
		return KindRocky, nil
	case "gasgiant", "gas-giant", "gas_giant", "gas":
		return KindGasGiant, nil
	case "crystal", "scifi", "sci-fi":
		return KindCrystal, nil
	case "nebula":
		return KindNebula, nil
	case "metallic", "metal":
		return KindMetallic, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShader, s)
}

// New returns the shader for k. Unknown kinds fall back to Rocky.
func New(k Kind) Shader {
	switch k {
	case KindGasGiant:
		return GasGiant{}
	case KindCrystal:
		return Crystal{}
	case KindNebula:
		return Nebula{}
	case KindMetallic:
		return Metallic{}
	default:
		return Rocky{}
	}
}
