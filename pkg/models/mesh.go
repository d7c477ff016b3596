// Package models provides the indexed triangle mesh the planet is drawn
// from, plus loaders for OBJ and GLB files and a procedural UV sphere.
package models

import (
	"errors"
	"fmt"

	"github.com/taigrr/planets/pkg/math3d"
)

var (
	// ErrIndexOutOfRange is returned when a face or index buffer refers to
	// a vertex, normal or texture coordinate that does not exist.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrBadFace is returned for faces that cannot form a triangle.
	ErrBadFace = errors.New("bad face")

	// ErrEmptyMesh is returned when a source yields no triangles.
	ErrEmptyMesh = errors.New("mesh has no triangles")

	// ErrUnsupportedFormat is returned by Load for unknown extensions.
	ErrUnsupportedFormat = errors.New("unsupported mesh format")
)

// Vertex holds all vertex attributes.
type Vertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// Mesh is a pool of unique vertices and an index buffer where every
// three consecutive entries form a triangle.
//
// A mesh is built once by a loader and treated as read-only afterwards.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []int

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// Validate checks the index buffer: its length must be a multiple of
// three and every index must address an existing vertex.
func (m *Mesh) Validate() error {
	if len(m.Indices) == 0 {
		return ErrEmptyMesh
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a whole number of triangles", ErrBadFace, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if idx < 0 || idx >= len(m.Vertices) {
			return fmt.Errorf("%w: index %d = %d, have %d vertices", ErrIndexOutOfRange, i, idx, len(m.Vertices))
		}
	}
	return nil
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// VertexCount returns the number of unique vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// CalculateSmoothNormals replaces every vertex normal with the
// area-weighted average of the faces that share it.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero3()
	}

	for t := range m.TriangleCount() {
		i0, i1, i2 := m.Indices[3*t], m.Indices[3*t+1], m.Indices[3*t+2]
		p0 := m.Vertices[i0].Position
		n := m.Vertices[i1].Position.Sub(p0).Cross(m.Vertices[i2].Position.Sub(p0))

		m.Vertices[i0].Normal = m.Vertices[i0].Normal.Add(n)
		m.Vertices[i1].Normal = m.Vertices[i1].Normal.Add(n)
		m.Vertices[i2].Normal = m.Vertices[i2].Normal.Add(n)
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// FitUnit recenters the mesh on the origin and scales it so its
// farthest vertex sits at distance 1. Loaders call it so any model
// frames the same way as the built-in sphere.
func (m *Mesh) FitUnit() {
	m.CalculateBounds()
	center := m.Center()

	var radius float64
	for _, v := range m.Vertices {
		radius = max(radius, v.Position.Sub(center).Len())
	}
	if radius < math3d.Epsilon {
		return
	}

	mat := math3d.Scale(math3d.V3(1/radius, 1/radius, 1/radius)).Mul(math3d.Translate(center.Negate()))
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulPoint(m.Vertices[i].Position)
	}
	m.CalculateBounds()
}
