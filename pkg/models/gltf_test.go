package models

import (
	"encoding/binary"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/planets/pkg/math3d"
)

// triangleDocument builds a one-triangle glTF document with float
// positions and ushort indices packed into a single buffer.
func triangleDocument(indices []uint16) *gltf.Document {
	positions := []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}

	var data []byte
	for _, f := range positions {
		data = binary.LittleEndian.AppendUint32(data, math.Float32bits(f))
	}
	posLen := len(data)
	for _, i := range indices {
		data = binary.LittleEndian.AppendUint16(data, i)
	}

	return &gltf.Document{
		Buffers: []*gltf.Buffer{{ByteLength: len(data), Data: data}},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: posLen},
			{Buffer: 0, ByteOffset: posLen, ByteLength: len(data) - posLen},
		},
		Accessors: []*gltf.Accessor{
			{BufferView: gltf.Index(0), ComponentType: gltf.ComponentFloat, Count: 3, Type: gltf.AccessorVec3},
			{BufferView: gltf.Index(1), ComponentType: gltf.ComponentUshort, Count: len(indices), Type: gltf.AccessorScalar},
		},
		Meshes: []*gltf.Mesh{{
			Name: "tri",
			Primitives: []*gltf.Primitive{{
				Attributes: map[string]int{gltf.POSITION: 0},
				Indices:    gltf.Index(1),
			}},
		}},
	}
}

func TestMeshFromDocument(t *testing.T) {
	m, err := meshFromDocument(triangleDocument([]uint16{0, 1, 2}), "tri.glb")
	if err != nil {
		t.Fatalf("meshFromDocument: %v", err)
	}
	if m.TriangleCount() != 1 || m.VertexCount() != 3 {
		t.Fatalf("got %d triangles / %d vertices, want 1 / 3", m.TriangleCount(), m.VertexCount())
	}

	// No normals in the file: rebuilt from the face.
	for i, v := range m.Vertices {
		if math.Abs(math.Abs(v.Normal.Z)-1) > 1e-9 {
			t.Errorf("vertex %d normal = %v, want ±Z", i, v.Normal)
		}
	}
	if m.Vertices[1].Position != math3d.V3(1, 0, 0) {
		t.Errorf("vertex 1 = %v", m.Vertices[1].Position)
	}
}

func TestMeshFromDocumentBadIndex(t *testing.T) {
	_, err := meshFromDocument(triangleDocument([]uint16{0, 1, 7}), "bad.glb")
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestMeshFromDocumentEmpty(t *testing.T) {
	_, err := meshFromDocument(&gltf.Document{}, "empty.glb")
	if !errors.Is(err, ErrEmptyMesh) {
		t.Fatalf("error = %v, want ErrEmptyMesh", err)
	}
}

func TestLoadGLBInvalidPath(t *testing.T) {
	if _, err := LoadGLB("/nonexistent/path.glb"); err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestMeshFromDocumentMalformed(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*gltf.Document)
		outOfRange bool
	}{
		{"buffer view index past end", func(d *gltf.Document) { d.Accessors[0].BufferView = gltf.Index(7) }, true},
		{"negative buffer view index", func(d *gltf.Document) { d.Accessors[1].BufferView = gltf.Index(-1) }, true},
		{"buffer index past end", func(d *gltf.Document) { d.BufferViews[0].Buffer = 3 }, true},
		{"negative buffer index", func(d *gltf.Document) { d.BufferViews[1].Buffer = -2 }, true},
		{"nil buffer view", func(d *gltf.Document) { d.BufferViews[0] = nil }, true},
		{"negative view offset", func(d *gltf.Document) { d.BufferViews[0].ByteOffset = -4 }, false},
		{"negative accessor offset", func(d *gltf.Document) { d.Accessors[0].ByteOffset = -4 }, false},
		{"negative count", func(d *gltf.Document) { d.Accessors[1].Count = -3 }, false},
		{"stride shorter than element", func(d *gltf.Document) { d.BufferViews[0].ByteStride = 4 }, false},
		{"accessor past view length", func(d *gltf.Document) { d.BufferViews[0].ByteLength = 12 }, false},
		{"accessor past buffer end", func(d *gltf.Document) { d.Accessors[0].Count = 40 }, false},
		{"missing accessor", func(d *gltf.Document) { d.Meshes[0].Primitives[0].Indices = gltf.Index(9) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := triangleDocument([]uint16{0, 1, 2})
			tt.mutate(doc)

			_, err := meshFromDocument(doc, "bad.glb")
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.outOfRange && !errors.Is(err, ErrIndexOutOfRange) {
				t.Errorf("error = %v, want ErrIndexOutOfRange", err)
			}
		})
	}
}

func TestLoadGLBMalformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*gltf.Document)
	}{
		{"buffer view index", func(d *gltf.Document) { d.Accessors[0].BufferView = gltf.Index(7) }},
		{"buffer index", func(d *gltf.Document) { d.BufferViews[0].Buffer = 3 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := triangleDocument([]uint16{0, 1, 2})
			tt.mutate(doc)
			path := filepath.Join(t.TempDir(), "bad.glb")
			if err := gltf.SaveBinary(doc, path); err != nil {
				t.Fatalf("SaveBinary: %v", err)
			}

			if _, err := LoadGLB(path); err == nil {
				t.Error("expected error loading malformed file")
			}
		})
	}
}
