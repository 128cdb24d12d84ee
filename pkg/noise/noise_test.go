package noise

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/Faultbox/terragen/pkg/math"
)

func TestCanonicalTable(t *testing.T) {
	tbl := Canonical()

	if tbl.Len() != TableSize {
		t.Fatalf("Len() = %d, want %d", tbl.Len(), TableSize)
	}

	seen := make(map[int]bool)
	for i := range 256 {
		v := tbl.At(i)
		if v < 0 || v > 255 {
			t.Fatalf("At(%d) = %d, out of [0,255]", i, v)
		}
		if seen[v] {
			t.Fatalf("value %d appears twice in first half", v)
		}
		seen[v] = true

		if tbl.At(i+256) != v {
			t.Errorf("At(%d) = %d, want duplicate %d", i+256, tbl.At(i+256), v)
		}
	}

	if tbl.At(0) != 151 || tbl.At(255) != 180 {
		t.Errorf("unexpected endpoints: %d, %d", tbl.At(0), tbl.At(255))
	}
}

func TestShuffledTable(t *testing.T) {
	a := Shuffled(42)
	b := Shuffled(42)
	c := Shuffled(7)

	if *a != *b {
		t.Error("same seed should produce identical tables")
	}
	if *a == *c {
		t.Error("different seeds should produce different tables")
	}

	seen := make(map[int]bool)
	for i := range 256 {
		seen[a.At(i)] = true
		if a.At(i) != a.At(i+256) {
			t.Fatalf("second half not a duplicate at %d", i)
		}
	}
	if len(seen) != 256 {
		t.Errorf("shuffled table holds %d distinct values, want 256", len(seen))
	}
}

func TestFade(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{0.5, 0.5},
		{1, 1},
	}
	for _, tt := range tests {
		if got := Fade(tt.in); got != tt.want {
			t.Errorf("Fade(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(0, 2, 6); got != 2 {
		t.Errorf("Lerp(0) = %v, want 2", got)
	}
	if got := Lerp(1, 2, 6); got != 6 {
		t.Errorf("Lerp(1) = %v, want 6", got)
	}
	if got := Lerp(0.25, 2, 6); got != 3 {
		t.Errorf("Lerp(0.25) = %v, want 3", got)
	}
}

func TestGradientBranches(t *testing.T) {
	offset := struct{ x, y float32 }{0.25, 0.5}
	want := []float32{0.75, 0.25, -0.75, -0.25}
	for hash := range 8 {
		got := gradient(hash, vec(offset.x, offset.y))
		if got != want[hash%4] {
			t.Errorf("gradient(%d) = %v, want %v", hash, got, want[hash%4])
		}
	}
}

func TestGradientPanicsOnNegativeHash(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unreachable branch")
		}
	}()
	gradient(-1, vec(0, 0))
}

func TestSampleDeterministic(t *testing.T) {
	points := [][2]float32{{0.3, 0.7}, {12.5, -3.25}, {-100.1, 42.9}, {255.9, 256.1}}
	for _, p := range points {
		a := Sample(p[0], p[1])
		b := Sample(p[0], p[1])
		if gomath.Float32bits(a) != gomath.Float32bits(b) {
			t.Errorf("Sample(%v) not bit-identical: %v vs %v", p, a, b)
		}
	}
}

func TestSampleRange(t *testing.T) {
	const eps = 1e-6
	for ix := -40; ix < 40; ix++ {
		for iy := -40; iy < 40; iy++ {
			x := float32(ix) * 0.37
			y := float32(iy) * 0.53
			v := Sample(x, y)
			if v < -eps || v > 1+eps {
				t.Fatalf("Sample(%v, %v) = %v, out of [0,1]", x, y, v)
			}
		}
	}
}

func TestSampleAtLatticePoint(t *testing.T) {
	// All corner offsets vanish at integer coordinates.
	for i := -3; i <= 3; i++ {
		if got := Sample(float32(i), float32(i*2)); got != 0.5 {
			t.Errorf("Sample(%d, %d) = %v, want 0.5", i, i*2, got)
		}
	}
}

func TestSampleContinuity(t *testing.T) {
	const eps = 1e-4
	for _, y := range []float32{0.2, 0.5, 3.7, 10.1} {
		for _, x := range []float32{1, 2, 17, 200} {
			at := Sample(x, y)
			after := Sample(x+eps, y)
			before := Sample(x-eps, y)
			if d := absf(after - at); d > 1e-3 {
				t.Errorf("jump crossing x=%v (y=%v): |%v - %v| = %v", x, y, after, at, d)
			}
			if d := absf(before - at); d > 1e-3 {
				t.Errorf("jump before x=%v (y=%v): %v", x, y, d)
			}
		}
	}
}

func TestSampleVaries(t *testing.T) {
	distinct := make(map[float32]bool)
	for i := range 50 {
		distinct[Sample(float32(i)*0.31+0.1, 0.77)] = true
	}
	if len(distinct) < 10 {
		t.Errorf("expected varied output, got %d distinct values", len(distinct))
	}
}

func TestFractalSingleOctave(t *testing.T) {
	p := FractalParams{Octaves: 1, Gain: 0.5, Lacunarity: 2, Amplitude: 2, Frequency: 1.5}
	for _, pt := range [][2]float32{{0.1, 0.2}, {3.3, 4.4}, {-1.7, 8.25}} {
		got := Fractal(Canonical(), pt[0], pt[1], p)
		want := p.Amplitude * Sample(pt[0]*p.Frequency, pt[1]*p.Frequency)
		if got != want {
			t.Errorf("Fractal(%v) = %v, want %v", pt, got, want)
		}
	}
}

func TestFractalAccumulates(t *testing.T) {
	p := DefaultFractalParams()
	x, y := float32(0.37), float32(0.81)

	var want float32
	amp, freq := p.Amplitude, p.Frequency
	for range p.Octaves {
		want += amp * Sample(x*freq, y*freq)
		amp *= p.Gain
		freq *= p.Lacunarity
	}

	if got := Fractal(Canonical(), x, y, p); got != want {
		t.Errorf("Fractal() = %v, want %v", got, want)
	}
}

func TestFractalConcurrent(t *testing.T) {
	p := DefaultFractalParams()
	want := Fractal(Canonical(), 0.4, 0.6, p)

	done := make(chan float32, 8)
	for range 8 {
		go func() {
			done <- Fractal(Canonical(), 0.4, 0.6, p)
		}()
	}
	for range 8 {
		if got := <-done; got != want {
			t.Errorf("concurrent Fractal() = %v, want %v", got, want)
		}
	}
}

func TestParseBasis(t *testing.T) {
	tests := []struct {
		in      string
		want    Basis
		wantErr bool
	}{
		{"perlin", BasisPerlin, false},
		{" OpenSimplex ", BasisOpenSimplex, false},
		{"CLASSIC", BasisClassic, false},
		{"value", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBasis(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownBasis) {
					t.Errorf("ParseBasis(%q) error = %v, want ErrUnknownBasis", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBasis(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseBasis(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewSource(t *testing.T) {
	src, err := NewSource(BasisPerlin, 0)
	if err != nil {
		t.Fatalf("NewSource failed: %v", err)
	}
	if src != Source(Canonical()) {
		t.Error("seed 0 should select the canonical table")
	}

	if _, err := NewSource("bogus", 1); !errors.Is(err, ErrUnknownBasis) {
		t.Errorf("NewSource(bogus) error = %v, want ErrUnknownBasis", err)
	}

	for _, b := range Bases() {
		t.Run(string(b), func(t *testing.T) {
			src, err := NewSource(b, 1234)
			if err != nil {
				t.Fatalf("NewSource(%s) failed: %v", b, err)
			}
			for i := range 100 {
				x := float32(i) * 0.173
				y := float32(i) * 0.291
				v := src.Sample(x, y)
				if v < -1e-6 || v > 1+1e-6 {
					t.Fatalf("%s Sample(%v, %v) = %v, out of [0,1]", b, x, y, v)
				}
				if again := src.Sample(x, y); again != v {
					t.Fatalf("%s Sample not deterministic: %v vs %v", b, v, again)
				}
			}
		})
	}
}

func vec(x, y float32) math.Vec2 {
	return math.Vec2{X: x, Y: y}
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
