package terrain

import (
	"errors"
	"fmt"
	gomath "math"
)

// Build validation errors.
var (
	ErrInvalidDimension       = errors.New("invalid terrain dimension")
	ErrInvalidNoiseParameters = errors.New("invalid noise parameters")
	ErrIndexOverflow          = errors.New("terrain index count overflows uint32")
	ErrUnknownNormalMode      = errors.New("unknown normal mode")
)

// Validate checks the parameters before any mesh memory is allocated.
func (p Params) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimension, p.Width, p.Height)
	}
	if !(p.Extent > 0) || gomath.IsInf(float64(p.Extent), 0) {
		return fmt.Errorf("%w: extent %v", ErrInvalidDimension, p.Extent)
	}

	n := p.Noise
	if n.Octaves <= 0 {
		return fmt.Errorf("%w: octaves %d", ErrInvalidNoiseParameters, n.Octaves)
	}
	if !(n.Gain > 0) {
		return fmt.Errorf("%w: gain %v", ErrInvalidNoiseParameters, n.Gain)
	}
	if !(n.Lacunarity > 0) {
		return fmt.Errorf("%w: lacunarity %v", ErrInvalidNoiseParameters, n.Lacunarity)
	}

	if _, _, err := bufferSizes(p.Width, p.Height); err != nil {
		return err
	}

	switch p.Normals {
	case NormalsFlat, NormalsSlope, "":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownNormalMode, p.Normals)
	}

	return nil
}

// bufferSizes returns the vertex and index counts for a width x height grid.
// Both must fit in uint32 since indices are stored as uint32.
func bufferSizes(width, height int) (vertices, indices int, err error) {
	const limit = gomath.MaxUint32

	w, h := uint64(width), uint64(height)
	if w >= limit || h >= limit {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrIndexOverflow, width, height)
	}

	cells := w * h
	if cells > limit/6 {
		return 0, 0, fmt.Errorf("%w: %d cells", ErrIndexOverflow, cells)
	}
	verts := (w + 1) * (h + 1)
	if verts > limit {
		return 0, 0, fmt.Errorf("%w: %d vertices", ErrIndexOverflow, verts)
	}

	return int(verts), int(cells * 6), nil
}
