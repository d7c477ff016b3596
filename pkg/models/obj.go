package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/planets/pkg/math3d"
)

// LoadOBJ loads a Wavefront OBJ file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	return ParseOBJ(f, filepath.Base(path))
}

// objParser accumulates OBJ attribute streams and the deduplicated
// vertex pool while a file is read.
type objParser struct {
	positions []math3d.Vec3
	normals   []math3d.Vec3
	uvs       []math3d.Vec2

	mesh *Mesh
	// seen maps a face token such as "3/7/2" to its vertex index.
	seen map[string]int
}

// ParseOBJ reads v, vt, vn and f statements. Face vertices are
// deduplicated by their exact token text, faces with more than three
// vertices are fan-triangulated, and indices may be negative (relative
// to the end of the list). A missing normal becomes the normalized
// position; a missing texture coordinate becomes (0, 0). Other
// statements are ignored.
func ParseOBJ(r io.Reader, name string) (*Mesh, error) {
	p := &objParser{
		mesh: NewMesh(name),
		seen: make(map[string]int),
	}

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		var err error
		switch fields[0] {
		case "v":
			var v math3d.Vec3
			v, err = parseVec3(fields[1:])
			p.positions = append(p.positions, v)
		case "vn":
			var v math3d.Vec3
			v, err = parseVec3(fields[1:])
			p.normals = append(p.normals, v)
		case "vt":
			var v math3d.Vec2
			v, err = parseVec2(fields[1:])
			p.uvs = append(p.uvs, v)
		case "f":
			err = p.face(fields[1:])
		}
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	p.mesh.CalculateBounds()
	if err := p.mesh.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return p.mesh, nil
}

func (p *objParser) face(tokens []string) error {
	if len(tokens) < 3 {
		return fmt.Errorf("%w: %d vertices", ErrBadFace, len(tokens))
	}

	idx := make([]int, len(tokens))
	for i, tok := range tokens {
		v, err := p.vertex(tok)
		if err != nil {
			return err
		}
		idx[i] = v
	}

	for i := 2; i < len(idx); i++ {
		p.mesh.Indices = append(p.mesh.Indices, idx[0], idx[i-1], idx[i])
	}
	return nil
}

// vertex resolves a "v", "v/vt", "v//vn" or "v/vt/vn" token.
// Relative (negative) tokens point at different data as the file grows,
// so they are never shared.
func (p *objParser) vertex(tok string) (int, error) {
	relative := strings.Contains(tok, "-")
	if i, ok := p.seen[tok]; ok && !relative {
		return i, nil
	}

	parts := strings.Split(tok, "/")
	if len(parts) > 3 || parts[0] == "" {
		return 0, fmt.Errorf("%w: malformed vertex %q", ErrBadFace, tok)
	}

	pi, err := resolveIndex(parts[0], len(p.positions), "position")
	if err != nil {
		return 0, err
	}
	v := Vertex{Position: p.positions[pi]}

	if len(parts) > 1 && parts[1] != "" {
		ti, err := resolveIndex(parts[1], len(p.uvs), "texcoord")
		if err != nil {
			return 0, err
		}
		v.UV = p.uvs[ti]
	}

	if len(parts) > 2 && parts[2] != "" {
		ni, err := resolveIndex(parts[2], len(p.normals), "normal")
		if err != nil {
			return 0, err
		}
		v.Normal = p.normals[ni]
	} else {
		v.Normal = v.Position.Normalize()
	}

	i := len(p.mesh.Vertices)
	p.mesh.Vertices = append(p.mesh.Vertices, v)
	if !relative {
		p.seen[tok] = i
	}
	return i, nil
}

// resolveIndex converts a 1-based (or negative, relative) OBJ index
// into a 0-based slice index.
func resolveIndex(s string, n int, kind string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parse %s index %q: %w", kind, s, err)
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += n
	default:
		return 0, fmt.Errorf("%w: %s index 0", ErrIndexOutOfRange, kind)
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("%w: %s index %s, have %d", ErrIndexOutOfRange, kind, s, n)
	}
	return i, nil
}

func parseFloats(fields []string, want int) ([]float64, error) {
	if len(fields) < want {
		return nil, fmt.Errorf("want %d components, got %d", want, len(fields))
	}
	out := make([]float64, want)
	for i := range want {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("parse component %d: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}

func parseVec3(fields []string) (math3d.Vec3, error) {
	f, err := parseFloats(fields, 3)
	if err != nil {
		return math3d.Vec3{}, err
	}
	return math3d.V3(f[0], f[1], f[2]), nil
}

func parseVec2(fields []string) (math3d.Vec2, error) {
	f, err := parseFloats(fields, 2)
	if err != nil {
		return math3d.Vec2{}, err
	}
	return math3d.V2(f[0], f[1]), nil
}
