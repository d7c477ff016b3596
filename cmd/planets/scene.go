package main

import (
	"context"
	"fmt"
	"image/color"

	"go.uber.org/zap"

	"github.com/taigrr/planets/internal/config"
	"github.com/taigrr/planets/internal/logger"
	"github.com/taigrr/planets/pkg/math3d"
	"github.com/taigrr/planets/pkg/models"
	"github.com/taigrr/planets/pkg/render"
	"github.com/taigrr/planets/pkg/shader"
)

// scene is everything a frame needs besides the framebuffer. It is
// owned by the render loop.
type scene struct {
	mesh     *models.Mesh
	meshPath string
	kind     shader.Kind
	sh       shader.Shader
	camera   *render.Camera
	spin     *render.Spin
	light    math3d.Vec3
	bg       color.RGBA
	wire     bool

	log *zap.Logger
}

func newScene(cfg *config.Config) (*scene, error) {
	mesh, err := loadMesh(cfg)
	if err != nil {
		return nil, err
	}
	kind, err := cfg.ShaderKind()
	if err != nil {
		return nil, err
	}
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return nil, err
	}

	s := &scene{
		mesh:     mesh,
		meshPath: cfg.Scene.Mesh,
		camera:   render.NewCamera(cfg.Render.FPS, cfg.Scene.CameraDistance),
		spin:     render.NewSpin(cfg.Render.FPS, cfg.Scene.RotationSpeed),
		light:    cfg.Light(),
		bg:       bg,
		log:      logger.Named("scene"),
	}
	s.setShader(kind)

	s.log.Info("scene ready",
		zap.String("mesh", mesh.Name),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Stringer("shader", kind),
	)
	return s, nil
}

func loadMesh(cfg *config.Config) (*models.Mesh, error) {
	if cfg.Scene.Mesh == "" {
		return models.NewUVSphere(1, cfg.Scene.SphereStacks, cfg.Scene.SphereSlices), nil
	}
	mesh, err := models.Load(cfg.Scene.Mesh)
	if err != nil {
		return nil, fmt.Errorf("load mesh: %w", err)
	}
	return mesh, nil
}

// setShader swaps the planet material. Geometry and camera are left
// alone.
func (s *scene) setShader(k shader.Kind) {
	s.kind = k
	s.sh = shader.New(k)
	s.log.Debug("shader selected", zap.Stringer("kind", k))
}

// apply takes the settings of a reloaded config that can change
// without a restart.
func (s *scene) apply(cfg *config.Config) {
	if k, err := cfg.ShaderKind(); err == nil && k != s.kind {
		s.setShader(k)
	}
	if bg, err := cfg.BackgroundColor(); err == nil {
		s.bg = bg
	}
	s.light = cfg.Light()
	s.spin.Speed = cfg.Scene.RotationSpeed
	if cfg.Scene.Mesh != s.meshPath {
		s.log.Warn("mesh changes need a restart", zap.String("mesh", cfg.Scene.Mesh))
	}
}

// lightFromScreen turns a cell position into a world-space light
// direction. The cursor picks a direction relative to the current
// view, so the light lands where the user points whatever the orbit.
func (s *scene) lightFromScreen(x, y, width, height int) math3d.Vec3 {
	dir := screenToLightDir(x, y, width, height)
	return s.camera.ViewMatrix().Inverse().MulDir(dir).Normalize()
}

func (s *scene) uniforms(width, height int, t float64) *shader.Uniforms {
	aspect := float64(width) / float64(max(height, 1))
	return &shader.Uniforms{
		Model:      math3d.ModelMatrix(math3d.Zero3(), 1, math3d.V3(0, s.spin.Angle, 0)),
		View:       s.camera.ViewMatrix(),
		Projection: s.camera.ProjectionMatrix(aspect),
		Viewport:   math3d.Viewport(0, 0, float64(width), float64(height)),
		Time:       t,
		LightDir:   s.light,
		CameraPos:  s.camera.Eye(),
	}
}

// draw clears the framebuffer and renders one frame at scene time t.
func (s *scene) draw(ctx context.Context, r *render.Renderer, t float64) (render.Stats, error) {
	r.FB.SetBackground(s.bg)
	r.FB.Clear()

	u := s.uniforms(r.FB.Width, r.FB.Height, t)
	stats, err := r.DrawMesh(ctx, s.mesh, s.sh, u)
	if err != nil {
		return stats, err
	}
	if s.wire {
		r.DrawWireframe(s.mesh, s.sh, u, render.ColorWire)
		r.DrawAxes(u, 1.5)
	}
	return stats, nil
}

// snapshot renders a single frame at time t to a PNG at path.
func snapshot(ctx context.Context, cfg *config.Config, path string, t float64) error {
	s, err := newScene(cfg)
	if err != nil {
		return err
	}
	s.camera.Settle()
	s.spin.At(t)

	fb := render.NewFramebuffer(cfg.Render.Width, cfg.Render.Height)
	r := render.NewRenderer(fb, cfg.WorkerCount())
	stats, err := s.draw(ctx, r, t)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	fb.DrawLabel(8, 20, fmt.Sprintf("%s  t=%.2fs", s.sh.Name(), t), render.ColorLabel)

	if err := fb.SavePNG(path); err != nil {
		return err
	}
	s.log.Info("snapshot written",
		zap.String("path", path),
		zap.Float64("time", t),
		zap.Int("fragments", stats.Fragments),
		zap.Int("written", stats.Written),
		zap.Int("degenerate", stats.Degenerate),
	)
	return nil
}
