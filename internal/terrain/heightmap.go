package terrain

// NewHeightmap extracts the vertex heights of a mesh for height queries.
func NewHeightmap(m *Mesh) *Heightmap {
	altitudes := make([][]float32, m.Width+1)
	for x := range altitudes {
		altitudes[x] = make([]float32, m.Height+1)
		for z := range altitudes[x] {
			altitudes[x][z] = m.Positions[m.Index(x, z)][1]
		}
	}

	return &Heightmap{
		Altitudes: altitudes,
		CellsX:    m.Width,
		CellsZ:    m.Height,
		CellSizeX: m.Extent / float32(m.Width),
		CellSizeZ: m.Extent / float32(m.Height),
	}
}

// At returns the height of grid point (x, z), clamped to the grid.
func (h *Heightmap) At(x, z int) float32 {
	x = clampi(x, 0, h.CellsX)
	z = clampi(z, 0, h.CellsZ)
	return h.Altitudes[x][z]
}

// HeightAt returns the bilinearly interpolated height at a world position.
// The grid is centered on the origin; positions outside it are clamped to the edge.
func (h *Heightmap) HeightAt(worldX, worldZ float32) float32 {
	// World to grid coordinates
	gridFX := worldX/h.CellSizeX + float32(h.CellsX)/2
	gridFZ := worldZ/h.CellSizeZ + float32(h.CellsZ)/2
	gridFX = clampf(gridFX, 0, float32(h.CellsX))
	gridFZ = clampf(gridFZ, 0, float32(h.CellsZ))

	cellX := int(gridFX)
	cellZ := int(gridFZ)
	if cellX >= h.CellsX {
		cellX = h.CellsX - 1
	}
	if cellZ >= h.CellsZ {
		cellZ = h.CellsZ - 1
	}

	// Fractional position within cell (0-1)
	fracX := clampf(gridFX-float32(cellX), 0, 1)
	fracZ := clampf(gridFZ-float32(cellZ), 0, 1)

	h00 := h.Altitudes[cellX][cellZ]
	h10 := h.Altitudes[cellX+1][cellZ]
	h01 := h.Altitudes[cellX][cellZ+1]
	h11 := h.Altitudes[cellX+1][cellZ+1]

	// Low-Z edge, high-Z edge, then blend across Z
	south := h00*(1-fracX) + h10*fracX
	north := h01*(1-fracX) + h11*fracX
	return south*(1-fracZ) + north*fracZ
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
