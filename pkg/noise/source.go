package noise

import (
	"errors"
	"fmt"
	"strings"

	perlin "github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// ErrUnknownBasis is returned for an unrecognized basis name.
var ErrUnknownBasis = errors.New("unknown noise basis")

// Source produces coherent noise in [0, 1] at a continuous 2D coordinate.
type Source interface {
	Sample(x, y float32) float32
}

// Basis names a noise algorithm.
type Basis string

// Supported bases.
const (
	BasisPerlin      Basis = "perlin"      // Table-driven gradient noise
	BasisOpenSimplex Basis = "opensimplex" // OpenSimplex, normalized to [0, 1]
	BasisClassic     Basis = "classic"     // Classic Perlin from go-perlin
)

// Bases lists every supported basis.
func Bases() []Basis {
	return []Basis{BasisPerlin, BasisOpenSimplex, BasisClassic}
}

// ParseBasis converts a case-insensitive name to a Basis.
func ParseBasis(name string) (Basis, error) {
	b := Basis(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Bases() {
		if b == known {
			return b, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBasis, name)
}

// NewSource builds a Source for the given basis. For BasisPerlin a zero seed
// selects the canonical table; any other seed shuffles a fresh one.
func NewSource(basis Basis, seed int64) (Source, error) {
	switch basis {
	case BasisPerlin:
		if seed == 0 {
			return Canonical(), nil
		}
		return Shuffled(seed), nil
	case BasisOpenSimplex:
		return simplexSource{noise: opensimplex.NewNormalized32(seed)}, nil
	case BasisClassic:
		// alpha/beta only matter past the first octave; fBm is layered by Fractal.
		return classicSource{noise: perlin.NewPerlin(2, 2, 1, seed)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBasis, basis)
	}
}

type simplexSource struct {
	noise opensimplex.Noise32
}

func (s simplexSource) Sample(x, y float32) float32 {
	return clamp01(s.noise.Eval2(x, y))
}

type classicSource struct {
	noise *perlin.Perlin
}

func (s classicSource) Sample(x, y float32) float32 {
	raw := float32(s.noise.Noise2D(float64(x), float64(y)))
	return clamp01((raw + 1) / 2)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
