package main

import (
	"fmt"
	"image/color"
	"math"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/planets/pkg/math3d"
	"github.com/taigrr/planets/pkg/render"
)

var (
	hudBg     = color.RGBA{0, 0, 0, 255}
	hudWhite  = color.RGBA{235, 235, 235, 255}
	hudGreen  = color.RGBA{90, 230, 120, 255}
	hudCyan   = color.RGBA{90, 210, 230, 255}
	hudYellow = color.RGBA{240, 220, 90, 255}
	hudDim    = color.RGBA{140, 140, 150, 255}
)

// HUD renders an overlay with the shader, frame rate and mesh size.
type HUD struct {
	Visible bool

	triangles int
	fps       float64
	fpsFrames int
	fpsTime   time.Time
	last      render.Stats
}

func NewHUD(triangles int) *HUD {
	return &HUD{
		Visible:   true,
		triangles: triangles,
		fpsTime:   time.Now(),
	}
}

// Tick updates the FPS counter. Call once per frame.
func (h *HUD) Tick(stats render.Stats) {
	h.last = stats
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Render draws the overlay into the top and bottom cell rows of scr.
func (h *HUD) Render(scr uv.Screen, width, height int, s *scene, aiming bool) {
	if aiming {
		msg := " LIGHT: move mouse to aim, click to set, esc to cancel "
		render.DrawText(scr, max((width-len(msg))/2, 0), height-1, msg, hudYellow, hudBg)
		return
	}
	if !h.Visible {
		return
	}

	render.DrawText(scr, 0, 0, fmt.Sprintf(" %.0f FPS ", h.fps), hudGreen, hudBg)

	title := fmt.Sprintf(" %c %s: %s ", s.kind.Key(), s.kind, s.kind.Description())
	render.DrawText(scr, max((width-len(title))/2, 0), 0, title, hudWhite, hudBg)

	tris := fmt.Sprintf(" %d tris ", h.triangles)
	render.DrawText(scr, max(width-len(tris), 0), 0, tris, hudCyan, hudBg)

	status := fmt.Sprintf(" %s spin  %s wire  %d frags ", check(s.spin.Running), check(s.wire), h.last.Written)
	render.DrawText(scr, 0, height-1, status, hudWhite, hudBg)

	hint := " 1-5 shader  L light  ? hud "
	render.DrawText(scr, max(width-len(hint), 0), height-1, hint, hudDim, hudBg)
}

func check(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

// screenToLightDir maps a cell position to a light direction on the
// hemisphere facing the viewer.
func screenToLightDir(x, y, width, height int) math3d.Vec3 {
	nx := (float64(x)/float64(max(width, 1)))*2 - 1
	ny := (float64(y)/float64(max(height, 1)))*2 - 1

	lenSq := nx*nx + ny*ny
	if lenSq > 1 {
		l := math.Sqrt(lenSq)
		nx /= l
		ny /= l
		lenSq = 1
	}
	nz := math.Sqrt(1 - lenSq)

	// Screen y grows downward.
	return math3d.V3(nx, -ny, nz).Normalize()
}
