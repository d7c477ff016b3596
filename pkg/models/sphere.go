package models

import (
	"math"

	"github.com/taigrr/planets/pkg/math3d"
)

// NewUVSphere generates a latitude/longitude sphere centred on the
// origin. U runs with longitude and V from the north pole (0) to the
// south pole (1). Ring rows duplicate the seam column so UVs do not
// wrap inside a triangle. Each pole gets one vertex per slice, at the
// middle of that slice in U, so every vertex belongs to a triangle.
// Stacks below 2 and slices below 3 are raised to those minimums.
func NewUVSphere(radius float64, stacks, slices int) *Mesh {
	stacks = max(stacks, 2)
	slices = max(slices, 3)

	m := NewMesh("uv-sphere")
	m.Vertices = make([]Vertex, 0, 2*slices+(stacks-1)*(slices+1))

	add := func(u, v float64) {
		theta := v * math.Pi
		phi := u * 2 * math.Pi
		n := math3d.V3(math.Sin(theta)*math.Cos(phi), math.Cos(theta), math.Sin(theta)*math.Sin(phi))
		m.Vertices = append(m.Vertices, Vertex{
			Position: n.Scale(radius),
			Normal:   n,
			UV:       math3d.V2(u, v),
		})
	}

	for j := range slices {
		add((float64(j)+0.5)/float64(slices), 0)
	}
	for i := 1; i < stacks; i++ {
		for j := range slices + 1 {
			add(float64(j)/float64(slices), float64(i)/float64(stacks))
		}
	}
	for j := range slices {
		add((float64(j)+0.5)/float64(slices), 1)
	}

	row := slices + 1
	ring := func(i, j int) int { return slices + (i-1)*row + j }
	south := slices + (stacks-1)*row

	for j := range slices {
		m.Indices = append(m.Indices, j, ring(1, j+1), ring(1, j))
	}
	for i := 1; i < stacks-1; i++ {
		for j := range slices {
			a, b := ring(i, j), ring(i+1, j)
			m.Indices = append(m.Indices, a, a+1, b, a+1, b+1, b)
		}
	}
	for j := range slices {
		a := ring(stacks-1, j)
		m.Indices = append(m.Indices, a, a+1, south+j)
	}

	m.CalculateBounds()
	return m
}
