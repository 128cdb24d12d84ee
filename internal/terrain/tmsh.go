package terrain

import (
	"errors"
	"fmt"
	"os"

	"github.com/Faultbox/terragen/pkg/formats"
)

// ErrGridMismatch is returned when stored buffers do not match the stored grid size.
var ErrGridMismatch = errors.New("mesh buffers do not match grid size")

// ToTMSH converts the mesh to its container representation.
// The buffers are shared, not copied.
func (m *Mesh) ToTMSH() *formats.TMSH {
	return &formats.TMSH{
		Width:     uint32(m.Width),
		Height:    uint32(m.Height),
		Extent:    m.Extent,
		Positions: m.Positions,
		Normals:   m.Normals,
		UVs:       m.UVs,
		Indices:   m.Indices,
	}
}

// MeshFromTMSH rebuilds a mesh from a parsed container, checking that the
// buffer lengths agree with the grid dimensions.
func MeshFromTMSH(f *formats.TMSH) (*Mesh, error) {
	if f.Width == 0 || f.Height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, f.Width, f.Height)
	}

	numVertices, numIndices, err := bufferSizes(int(f.Width), int(f.Height))
	if err != nil {
		return nil, err
	}
	if len(f.Positions) != numVertices || len(f.Normals) != numVertices || len(f.UVs) != numVertices {
		return nil, fmt.Errorf("%w: %d vertices for %dx%d grid", ErrGridMismatch, len(f.Positions), f.Width, f.Height)
	}
	if len(f.Indices) != numIndices {
		return nil, fmt.Errorf("%w: %d indices for %dx%d grid", ErrGridMismatch, len(f.Indices), f.Width, f.Height)
	}

	m := &Mesh{
		Positions: f.Positions,
		Normals:   f.Normals,
		UVs:       f.UVs,
		Indices:   f.Indices,
		Width:     int(f.Width),
		Height:    int(f.Height),
		Extent:    f.Extent,
		Bounds: Bounds{
			Min: [3]float32{1e10, 1e10, 1e10},
			Max: [3]float32{-1e10, -1e10, -1e10},
		},
	}
	for _, p := range m.Positions {
		updateBounds(&m.Bounds, p)
	}

	return m, nil
}

// LoadTMSHFile reads a mesh from a TMSH file on disk.
func LoadTMSHFile(path string) (*Mesh, error) {
	f, err := formats.ParseTMSHFile(path)
	if err != nil {
		return nil, err
	}
	return MeshFromTMSH(f)
}

// WriteTMSHFile encodes the mesh and writes it to path.
func (m *Mesh) WriteTMSHFile(path string) error {
	data, err := m.ToTMSH().Encode()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
