package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Load picks a loader from the file extension (.obj or .glb), then
// recenters and rescales the result to fit the unit sphere.
func Load(path string) (*Mesh, error) {
	var (
		mesh *Mesh
		err  error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		mesh, err = LoadOBJ(path)
	case ".glb", ".gltf":
		mesh, err = LoadGLB(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	mesh.FitUnit()
	return mesh, nil
}
