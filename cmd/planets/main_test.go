package main

import (
	"context"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/planets/internal/config"
	"github.com/taigrr/planets/pkg/math3d"
	"github.com/taigrr/planets/pkg/shader"
)

func smallConfig() *config.Config {
	cfg := config.Default()
	cfg.Render.Width = 48
	cfg.Render.Height = 48
	cfg.Render.Workers = 2
	cfg.Scene.SphereStacks = 8
	cfg.Scene.SphereSlices = 16
	return cfg
}

func TestSnapshot(t *testing.T) {
	for _, k := range shader.Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			cfg := smallConfig()
			cfg.Scene.Shader = k.String()
			path := filepath.Join(t.TempDir(), "planet.png")

			if err := snapshot(context.Background(), cfg, path, 1.5); err != nil {
				t.Fatalf("snapshot: %v", err)
			}

			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			img, err := png.Decode(f)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 48 || b.Dy() != 48 {
				t.Fatalf("size = %v, want 48x48", b)
			}

			bg, _ := cfg.BackgroundColor()
			center := color.RGBAModel.Convert(img.At(24, 30)).(color.RGBA)
			if center == bg {
				t.Error("planet not drawn at the center")
			}
			corner := color.RGBAModel.Convert(img.At(47, 47)).(color.RGBA)
			if corner != bg {
				t.Errorf("corner = %v, want background %v", corner, bg)
			}
		})
	}
}

func TestSnapshotBadMesh(t *testing.T) {
	cfg := smallConfig()
	cfg.Scene.Mesh = filepath.Join(t.TempDir(), "missing.obj")
	if err := snapshot(context.Background(), cfg, filepath.Join(t.TempDir(), "x.png"), 0); err == nil {
		t.Error("expected error for missing mesh")
	}
}

func TestSnapshotCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	path := filepath.Join(t.TempDir(), "x.png")
	if err := snapshot(ctx, smallConfig(), path, 0); err == nil {
		t.Error("expected error from cancelled render")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("cancelled render still wrote a file")
	}
}

func TestSceneApply(t *testing.T) {
	s, err := newScene(smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	if s.kind != shader.KindRocky {
		t.Fatalf("initial shader = %v", s.kind)
	}

	cfg := smallConfig()
	cfg.Scene.Shader = "crystal"
	cfg.Scene.RotationSpeed = 1.2
	cfg.Render.Background = "1,2,3"
	cfg.Scene.LightDir = [3]float64{0, 0, 2}
	s.apply(cfg)

	if s.kind != shader.KindCrystal || s.sh.Name() != "Crystal" {
		t.Errorf("shader = %v (%s), want crystal", s.kind, s.sh.Name())
	}
	if s.spin.Speed != 1.2 {
		t.Errorf("spin speed = %v", s.spin.Speed)
	}
	if s.bg != (color.RGBA{1, 2, 3, 255}) {
		t.Errorf("background = %v", s.bg)
	}
	if s.light.Z != 1 {
		t.Errorf("light = %v, want (0,0,1)", s.light)
	}
}

func TestScreenToLightDir(t *testing.T) {
	tests := []struct {
		name    string
		x, y    int
		wantX   float64
		wantY   float64
		wantZ   float64
		epsilon float64
	}{
		{"center faces viewer", 50, 50, 0, 0, 1, 1e-9},
		{"right edge", 100, 50, 1, 0, 0, 1e-9},
		{"top edge points up", 50, 0, 0, 1, 0, 1e-9},
		{"corner clamps to rim", 100, 100, math.Sqrt2 / 2, -math.Sqrt2 / 2, 0, 1e-9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := screenToLightDir(tt.x, tt.y, 100, 100)
			if math.Abs(d.X-tt.wantX) > tt.epsilon || math.Abs(d.Y-tt.wantY) > tt.epsilon || math.Abs(d.Z-tt.wantZ) > tt.epsilon {
				t.Errorf("screenToLightDir(%d, %d) = %v, want (%v, %v, %v)", tt.x, tt.y, d, tt.wantX, tt.wantY, tt.wantZ)
			}
			if l := d.Len(); math.Abs(l-1) > 1e-9 {
				t.Errorf("length = %v, want 1", l)
			}
		})
	}
}

func TestLightFromScreenFollowsCamera(t *testing.T) {
	s, err := newScene(smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	s.camera.Orbit(math.Pi/2, 0)
	s.camera.Settle()

	tests := []struct {
		name string
		x, y int
		want math3d.Vec3
	}{
		{"center points at the camera", 50, 50, s.camera.Eye().Normalize()},
		{"top edge stays up", 50, 0, math3d.V3(0, 1, 0)},
		{"right edge follows the view", 100, 50, math3d.V3(0, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.lightFromScreen(tt.x, tt.y, 100, 100)
			if got.Sub(tt.want).Len() > 1e-9 {
				t.Errorf("lightFromScreen(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}
