package export

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/Faultbox/terragen/internal/terrain"
)

// HeightRow is one grid vertex in the heightmap CSV.
type HeightRow struct {
	X      int     `csv:"x"`
	Y      int     `csv:"y"`
	WorldX float32 `csv:"world_x"`
	WorldZ float32 `csv:"world_z"`
	Height float32 `csv:"height"`
}

// HeightRows lists every grid vertex in x-major order.
func HeightRows(m *terrain.Mesh) []*HeightRow {
	rows := make([]*HeightRow, 0, m.VertexCount())
	for x := 0; x <= m.Width; x++ {
		for y := 0; y <= m.Height; y++ {
			p := m.Positions[m.Index(x, y)]
			rows = append(rows, &HeightRow{X: x, Y: y, WorldX: p[0], WorldZ: p[2], Height: p[1]})
		}
	}
	return rows
}

// WriteHeightCSV writes one row per vertex with a header line.
func WriteHeightCSV(m *terrain.Mesh, w io.Writer) error {
	if err := gocsv.Marshal(HeightRows(m), w); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	return nil
}

// WriteHeightCSVFile creates path and writes the heightmap CSV to it.
func WriteHeightCSVFile(m *terrain.Mesh, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteHeightCSV(m, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
