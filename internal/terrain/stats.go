package terrain

import (
	gomath "math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the height distribution and shape of a mesh.
type Stats struct {
	Vertices  int
	Triangles int

	MinHeight    float64
	MaxHeight    float64
	MeanHeight   float64
	StdDevHeight float64
	MedianHeight float64

	MaxSlopeDegrees float64 // Steepest face, measured from horizontal
}

// Summarize computes height statistics for a mesh.
func Summarize(m *Mesh) Stats {
	s := Stats{
		Vertices:  m.VertexCount(),
		Triangles: m.TriangleCount(),
	}
	if len(m.Positions) == 0 {
		return s
	}

	heights := make([]float64, len(m.Positions))
	for i, p := range m.Positions {
		heights[i] = float64(p[1])
	}

	s.MinHeight = floats.Min(heights)
	s.MaxHeight = floats.Max(heights)
	s.MeanHeight, s.StdDevHeight = stat.MeanStdDev(heights, nil)

	// Quantile needs sorted input; heights is a scratch copy.
	sort.Float64s(heights)
	s.MedianHeight = stat.Quantile(0.5, stat.Empirical, heights, nil)

	for t := range s.Triangles {
		n := m.FaceNormal(t)
		cos := gomath.Min(1, gomath.Max(-1, float64(n[1])))
		slope := gomath.Acos(cos) * 180 / gomath.Pi
		if slope > s.MaxSlopeDegrees {
			s.MaxSlopeDegrees = slope
		}
	}

	return s
}
