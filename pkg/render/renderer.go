package render

import (
	"context"
	"image"

	"golang.org/x/sync/errgroup"

	"github.com/taigrr/planets/pkg/math3d"
	"github.com/taigrr/planets/pkg/models"
	"github.com/taigrr/planets/pkg/shader"
)

// cancelStride is how many triangles a band draws between context
// checks.
const cancelStride = 256

// Stats counts the work done by one DrawMesh call.
type Stats struct {
	Triangles  int // triangles submitted
	Degenerate int // triangles that covered no area
	Fragments  int // covered pixels inside the framebuffer
	Written    int // fragments that passed the depth test
}

func (s *Stats) add(o Stats) {
	s.Triangles += o.Triangles
	s.Degenerate += o.Degenerate
	s.Fragments += o.Fragments
	s.Written += o.Written
}

// Renderer draws meshes into a framebuffer through a shader.
//
// With Workers above 1 the screen is split into that many horizontal
// bands drawn concurrently. Each band owns its rows of the framebuffer
// and visits triangles in mesh order, so the result is identical to a
// serial draw.
type Renderer struct {
	FB      *Framebuffer
	Workers int
}

// NewRenderer returns a renderer drawing into fb.
func NewRenderer(fb *Framebuffer, workers int) *Renderer {
	return &Renderer{FB: fb, Workers: workers}
}

// shadedVertex is a mesh vertex after the vertex stage.
type shadedVertex struct {
	pos    math3d.Vec3 // displaced, object space
	normal math3d.Vec3
	uv     math3d.Vec2
	screen math3d.Vec3
}

type triangle struct {
	triSetup
	idx [3]int
}

// DrawMesh runs the vertex stage over the mesh, rasterizes every
// triangle and shades the fragments that pass the depth test. The
// framebuffer is not cleared first. A cancelled context stops the draw
// early and returns the context error with the partial stats.
func (r *Renderer) DrawMesh(ctx context.Context, mesh *models.Mesh, sh shader.Shader, u *shader.Uniforms) (Stats, error) {
	verts := vertexStage(mesh, sh, u)

	var stats Stats
	tris := make([]triangle, 0, mesh.TriangleCount())
	for i := range mesh.TriangleCount() {
		stats.Triangles++
		idx := [3]int{mesh.Indices[3*i], mesh.Indices[3*i+1], mesh.Indices[3*i+2]}
		t, ok := newTriSetup(verts[idx[0]].screen, verts[idx[1]].screen, verts[idx[2]].screen)
		if !ok {
			stats.Degenerate++
			continue
		}
		tris = append(tris, triangle{triSetup: t, idx: idx})
	}

	bands := min(max(r.Workers, 1), max(r.FB.Height, 1))
	if bands == 1 {
		st, err := r.drawBand(ctx, tris, verts, sh, u, r.FB.Bounds())
		stats.add(st)
		return stats, err
	}

	g, gctx := errgroup.WithContext(ctx)
	bandStats := make([]Stats, bands)
	for i := range bands {
		band := image.Rect(0, i*r.FB.Height/bands, r.FB.Width, (i+1)*r.FB.Height/bands)
		g.Go(func() error {
			st, err := r.drawBand(gctx, tris, verts, sh, u, band)
			bandStats[i] = st
			return err
		})
	}
	err := g.Wait()
	for _, st := range bandStats {
		stats.add(st)
	}
	return stats, err
}

func vertexStage(mesh *models.Mesh, sh shader.Shader, u *shader.Uniforms) []shadedVertex {
	mvp := u.MVP()
	out := make([]shadedVertex, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		pos, n := sh.Vertex(v.Position, v.Normal, v.UV, u)
		out[i] = shadedVertex{
			pos:    pos,
			normal: n,
			uv:     v.UV,
			screen: Project(mvp, pos),
		}
	}
	return out
}

func (r *Renderer) drawBand(ctx context.Context, tris []triangle, verts []shadedVertex, sh shader.Shader, u *shader.Uniforms, clip image.Rectangle) (Stats, error) {
	var st Stats
	fb := r.FB
	for i := range tris {
		if i%cancelStride == 0 {
			if err := ctx.Err(); err != nil {
				return st, err
			}
		}

		t := &tris[i]
		a, b, c := &verts[t.idx[0]], &verts[t.idx[1]], &verts[t.idx[2]]
		t.scan(clip, func(x, y int, bary math3d.Vec3, depth float64) {
			st.Fragments++
			// Early depth test; Point repeats it after shading.
			if !(depth < fb.DepthAt(x, y)) {
				return
			}
			frag := Fragment{
				X:        x,
				Y:        y,
				Depth:    depth,
				Normal:   math3d.Barycentric(a.normal, b.normal, c.normal, bary),
				Position: math3d.Barycentric(a.pos, b.pos, c.pos, bary),
				UV: math3d.V2(
					a.uv.X*bary.X+b.uv.X*bary.Y+c.uv.X*bary.Z,
					a.uv.Y*bary.X+b.uv.Y*bary.Y+c.uv.Y*bary.Z,
				),
				Bary: bary,
			}
			if shadeFragment(fb, frag, sh, u) {
				st.Written++
			}
		})
	}
	return st, nil
}

func shadeFragment(fb *Framebuffer, f Fragment, sh shader.Shader, u *shader.Uniforms) bool {
	col := sh.Fragment(f.Position, f.Normal, f.UV, u)
	return fb.Point(f.X, f.Y, col.RGBA(), f.Depth)
}
