package render

import (
	"image/color"
	"math"

	"github.com/taigrr/planets/pkg/math3d"
	"github.com/taigrr/planets/pkg/models"
	"github.com/taigrr/planets/pkg/shader"
)

// Overlay colors.
var (
	ColorWire  = color.RGBA{0, 255, 128, 255}
	ColorAxisX = color.RGBA{255, 64, 64, 255}
	ColorAxisY = color.RGBA{64, 255, 64, 255}
	ColorAxisZ = color.RGBA{64, 128, 255, 255}
	ColorLabel = color.RGBA{230, 230, 230, 255}
)

// DrawWireframe draws the edges of every triangle after the vertex
// stage, so displaced geometry shows as it is rasterized. Lines ignore
// depth.
func (r *Renderer) DrawWireframe(mesh *models.Mesh, sh shader.Shader, u *shader.Uniforms, c color.RGBA) {
	verts := vertexStage(mesh, sh, u)
	for i := range mesh.TriangleCount() {
		a := verts[mesh.Indices[3*i]].screen
		b := verts[mesh.Indices[3*i+1]].screen
		cc := verts[mesh.Indices[3*i+2]].screen
		r.drawEdge(a, b, c)
		r.drawEdge(b, cc, c)
		r.drawEdge(cc, a, c)
	}
}

// DrawAxes draws the model's X, Y and Z axes out to length.
func (r *Renderer) DrawAxes(u *shader.Uniforms, length float64) {
	mvp := u.MVP()
	origin := Project(mvp, math3d.Zero3())
	r.drawEdge(origin, Project(mvp, math3d.V3(length, 0, 0)), ColorAxisX)
	r.drawEdge(origin, Project(mvp, math3d.V3(0, length, 0)), ColorAxisY)
	r.drawEdge(origin, Project(mvp, math3d.V3(0, 0, length)), ColorAxisZ)
}

// drawEdge draws a screen-space segment. Segments with an endpoint far
// off screen are skipped rather than clipped.
func (r *Renderer) drawEdge(a, b math3d.Vec3, c color.RGBA) {
	if !r.nearScreen(a) || !r.nearScreen(b) {
		return
	}
	r.FB.DrawLine(int(math.Floor(a.X)), int(math.Floor(a.Y)), int(math.Floor(b.X)), int(math.Floor(b.Y)), c)
}

func (r *Renderer) nearScreen(p math3d.Vec3) bool {
	if !finite(p) {
		return false
	}
	w, h := float64(r.FB.Width), float64(r.FB.Height)
	return p.X > -w && p.X < 2*w && p.Y > -h && p.Y < 2*h
}
