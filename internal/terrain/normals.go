package terrain

import (
	"github.com/Faultbox/terragen/pkg/math"
)

// SlopeNormals replaces the mesh normals with heightfield normals built from
// central differences (one-sided at the borders).
func SlopeNormals(m *Mesh) {
	cellX := m.Extent / float32(m.Width)
	cellZ := m.Extent / float32(m.Height)

	height := func(x, y int) float32 {
		return m.Positions[m.Index(x, y)][1]
	}

	for x := 0; x <= m.Width; x++ {
		x0, x1 := max(x-1, 0), min(x+1, m.Width)
		for y := 0; y <= m.Height; y++ {
			y0, y1 := max(y-1, 0), min(y+1, m.Height)

			dhdx := (height(x1, y) - height(x0, y)) / (float32(x1-x0) * cellX)
			dhdz := (height(x, y1) - height(x, y0)) / (float32(y1-y0) * cellZ)

			n := math.Vec3{X: -dhdx, Y: 1, Z: -dhdz}.Normalize()
			m.Normals[m.Index(x, y)] = n.Array()
		}
	}
}

// FaceNormal returns the unit normal of triangle t, oriented upward.
func (m *Mesh) FaceNormal(t int) [3]float32 {
	a := math.V3(m.Positions[m.Indices[t*3]])
	b := math.V3(m.Positions[m.Indices[t*3+1]])
	c := math.V3(m.Positions[m.Indices[t*3+2]])

	n := b.Sub(a).Cross(c.Sub(a)).Normalize()
	if n.Y < 0 {
		n = math.Vec3{X: -n.X, Y: -n.Y, Z: -n.Z}
	}
	return n.Array()
}
