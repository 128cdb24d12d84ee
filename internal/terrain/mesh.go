package terrain

import (
	"github.com/Faultbox/terragen/pkg/noise"
)

// Build samples src over a (Width+1) x (Height+1) grid and triangulates it.
// Parameters are validated first; on error no mesh is returned.
func Build(src noise.Source, p Params) (*Mesh, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	numVertices, numIndices, _ := bufferSizes(p.Width, p.Height)

	m := &Mesh{
		Positions: make([][3]float32, 0, numVertices),
		Normals:   make([][3]float32, 0, numVertices),
		UVs:       make([][2]float32, 0, numVertices),
		Indices:   make([]uint32, 0, numIndices),
		Width:     p.Width,
		Height:    p.Height,
		Extent:    p.Extent,
		Bounds: Bounds{
			Min: [3]float32{1e10, 1e10, 1e10},
			Max: [3]float32{-1e10, -1e10, -1e10},
		},
	}

	width := float32(p.Width)
	height := float32(p.Height)
	cellX := p.Extent / width
	cellZ := p.Extent / height

	for x := 0; x <= p.Width; x++ {
		for y := 0; y <= p.Height; y++ {
			u := float32(x) / width
			v := float32(y) / height
			val := noise.Fractal(src, u, v, p.Noise)

			// Centered on the origin in the horizontal plane
			pos := [3]float32{
				(float32(x) - width/2) * cellX,
				val,
				(float32(y) - height/2) * cellZ,
			}
			updateBounds(&m.Bounds, pos)

			m.Positions = append(m.Positions, pos)
			m.Normals = append(m.Normals, [3]float32{0, 1, 0})
			m.UVs = append(m.UVs, [2]float32{u, v})
		}
	}

	// Two triangles per cell, always split along the (x,y)-(x+1,y+1) diagonal
	for x := 0; x < p.Width; x++ {
		for y := 0; y < p.Height; y++ {
			i00 := uint32(m.Index(x, y))
			i10 := uint32(m.Index(x+1, y))
			i11 := uint32(m.Index(x+1, y+1))
			i01 := uint32(m.Index(x, y+1))

			m.Indices = append(m.Indices,
				i00, i10, i11,
				i00, i11, i01,
			)
		}
	}

	if p.Normals == NormalsSlope {
		SlopeNormals(m)
	}

	return m, nil
}

// Index returns the vertex index of grid point (x, y).
func (m *Mesh) Index(x, y int) int {
	return x*(m.Height+1) + y
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Vertices interleaves the attribute buffers for GPU upload.
func (m *Mesh) Vertices() []Vertex {
	out := make([]Vertex, len(m.Positions))
	for i := range out {
		out[i] = Vertex{
			Position: m.Positions[i],
			Normal:   m.Normals[i],
			TexCoord: m.UVs[i],
		}
	}
	return out
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := range 3 {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}
