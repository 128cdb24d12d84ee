// Package terrain builds renderable and collidable heightmap meshes from coherent noise.
package terrain

import "github.com/Faultbox/terragen/pkg/noise"

// Vertex is one interleaved mesh vertex, the layout a renderer uploads.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Mesh holds the terrain surface as four parallel buffers.
// Vertices are laid out row-major with x varying slowest:
// vertex (x, y) lives at x*(Height+1) + y.
type Mesh struct {
	Positions [][3]float32
	Normals   [][3]float32
	UVs       [][2]float32 // Normalized (x/Width, y/Height)
	Indices   []uint32

	Width  int     // Grid cells along X
	Height int     // Grid cells along Z
	Extent float32 // World-space span of the grid on both horizontal axes
	Bounds Bounds
}

// Bounds holds the axis-aligned bounding box of the terrain.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// NormalMode selects how vertex normals are produced.
type NormalMode string

// Normal modes.
const (
	NormalsFlat  NormalMode = "flat"  // Constant (0,1,0)
	NormalsSlope NormalMode = "slope" // Derived from neighboring heights
)

// Params describes one terrain build.
type Params struct {
	Width   int
	Height  int
	Extent  float32
	Noise   noise.FractalParams
	Normals NormalMode
}

// DefaultParams returns a 32x32 grid spanning 3 world units with flat normals.
func DefaultParams() Params {
	return Params{
		Width:   32,
		Height:  32,
		Extent:  3.0,
		Noise:   noise.DefaultFractalParams(),
		Normals: NormalsFlat,
	}
}

// Heightmap provides terrain height lookup for a built mesh.
type Heightmap struct {
	Altitudes [][]float32 // 2D array [x][z] of heights
	CellsX    int         // Number of cells in X direction
	CellsZ    int         // Number of cells in Z direction
	CellSizeX float32     // World size of one cell along X
	CellSizeZ float32     // World size of one cell along Z
}
