package models

import (
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/planets/pkg/math3d"
)

// LoadGLB loads every triangle primitive of a binary glTF (.glb) file
// into a single mesh. Missing normals are rebuilt as smooth normals;
// missing texture coordinates stay at (0, 0).
func LoadGLB(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return meshFromDocument(doc, filepath.Base(path))
}

func meshFromDocument(doc *gltf.Document, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	hasNormals := true

	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			ok, err := appendPrimitive(doc, prim, mesh)
			if err != nil {
				return nil, fmt.Errorf("mesh %q: %w", m.Name, err)
			}
			hasNormals = hasNormals && ok
		}
	}

	if !hasNormals {
		mesh.CalculateSmoothNormals()
	}
	mesh.CalculateBounds()

	if err := mesh.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return mesh, nil
}

// appendPrimitive adds one primitive's vertices and indices to mesh and
// reports whether it carried normals. Non-triangle primitives are
// skipped.
func appendPrimitive(doc *gltf.Document, prim *gltf.Primitive, mesh *Mesh) (bool, error) {
	if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
		return true, nil
	}
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return true, nil
	}

	positions, err := readFloats(doc, posIdx, gltf.AccessorVec3)
	if err != nil {
		return false, fmt.Errorf("read positions: %w", err)
	}

	var normals, uvs [][]float64
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = readFloats(doc, idx, gltf.AccessorVec3); err != nil {
			return false, fmt.Errorf("read normals: %w", err)
		}
	}
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = readFloats(doc, idx, gltf.AccessorVec2); err != nil {
			return false, fmt.Errorf("read uvs: %w", err)
		}
	}

	base := len(mesh.Vertices)
	for i, p := range positions {
		v := Vertex{Position: math3d.V3(p[0], p[1], p[2])}
		if i < len(normals) {
			v.Normal = math3d.V3(normals[i][0], normals[i][1], normals[i][2])
		}
		if i < len(uvs) {
			v.UV = math3d.V2(uvs[i][0], uvs[i][1])
		}
		mesh.Vertices = append(mesh.Vertices, v)
	}

	if prim.Indices == nil {
		for i := 0; i+2 < len(positions); i += 3 {
			mesh.Indices = append(mesh.Indices, base+i, base+i+1, base+i+2)
		}
		return normals != nil, nil
	}

	indices, err := readIndices(doc, *prim.Indices)
	if err != nil {
		return false, fmt.Errorf("read indices: %w", err)
	}
	for _, idx := range indices[:len(indices)/3*3] {
		if idx >= len(positions) {
			return false, fmt.Errorf("%w: %d, have %d vertices", ErrIndexOutOfRange, idx, len(positions))
		}
		mesh.Indices = append(mesh.Indices, base+idx)
	}
	return normals != nil, nil
}

// accessorBytes returns the buffer slice an accessor reads from and the
// distance between consecutive elements.
func accessorBytes(doc *gltf.Document, acc *gltf.Accessor, elemSize int) ([]byte, int, error) {
	if acc.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	vi := *acc.BufferView
	if vi < 0 || vi >= len(doc.BufferViews) || doc.BufferViews[vi] == nil {
		return nil, 0, fmt.Errorf("%w: buffer view %d, have %d", ErrIndexOutOfRange, vi, len(doc.BufferViews))
	}
	view := doc.BufferViews[vi]
	if view.Buffer < 0 || view.Buffer >= len(doc.Buffers) || doc.Buffers[view.Buffer] == nil {
		return nil, 0, fmt.Errorf("%w: buffer %d, have %d", ErrIndexOutOfRange, view.Buffer, len(doc.Buffers))
	}
	buf := doc.Buffers[view.Buffer]
	if buf.URI != "" && len(buf.Data) == 0 {
		return nil, 0, fmt.Errorf("external buffer %q not loaded", buf.URI)
	}
	if view.ByteOffset < 0 || acc.ByteOffset < 0 {
		return nil, 0, fmt.Errorf("negative byte offset (view %d, accessor %d)", view.ByteOffset, acc.ByteOffset)
	}
	if acc.Count < 0 {
		return nil, 0, fmt.Errorf("negative accessor count %d", acc.Count)
	}

	stride := view.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	if stride < elemSize {
		return nil, 0, fmt.Errorf("byte stride %d shorter than element size %d", stride, elemSize)
	}
	start := view.ByteOffset + acc.ByteOffset
	end := start
	if acc.Count > 0 {
		end = start + (acc.Count-1)*stride + elemSize
	}
	if view.ByteLength > 0 && end > view.ByteOffset+view.ByteLength {
		return nil, 0, fmt.Errorf("accessor reads past end of buffer view (%d > %d)", end, view.ByteOffset+view.ByteLength)
	}
	if end > len(buf.Data) {
		return nil, 0, fmt.Errorf("accessor reads past end of buffer (%d > %d)", end, len(buf.Data))
	}
	return buf.Data[start:end], stride, nil
}

// readFloats reads a float32 VEC2 or VEC3 accessor.
func readFloats(doc *gltf.Document, idx int, want gltf.AccessorType) ([][]float64, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("%w: accessor %d", ErrIndexOutOfRange, idx)
	}
	acc := doc.Accessors[idx]
	if acc.Type != want {
		return nil, fmt.Errorf("expected %v, got %v", want, acc.Type)
	}
	if acc.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float components, got %v", acc.ComponentType)
	}

	n := 3
	if want == gltf.AccessorVec2 {
		n = 2
	}
	data, stride, err := accessorBytes(doc, acc, n*4)
	if err != nil {
		return nil, err
	}

	out := make([][]float64, acc.Count)
	for i := range acc.Count {
		el := make([]float64, n)
		for j := range n {
			off := i*stride + j*4
			el[j] = float64(math.Float32frombits(binary.LittleEndian.Uint32(data[off:])))
		}
		out[i] = el
	}
	return out, nil
}

// readIndices reads an unsigned scalar index accessor.
func readIndices(doc *gltf.Document, idx int) ([]int, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("%w: accessor %d", ErrIndexOutOfRange, idx)
	}
	acc := doc.Accessors[idx]
	if acc.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", acc.Type)
	}

	var size int
	switch acc.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", acc.ComponentType)
	}

	data, stride, err := accessorBytes(doc, acc, size)
	if err != nil {
		return nil, err
	}

	out := make([]int, acc.Count)
	for i := range acc.Count {
		b := data[i*stride:]
		switch size {
		case 1:
			out[i] = int(b[0])
		case 2:
			out[i] = int(binary.LittleEndian.Uint16(b))
		case 4:
			out[i] = int(binary.LittleEndian.Uint32(b))
		}
	}
	return out, nil
}
