package noise

// FractalParams controls fractal Brownian motion accumulation.
type FractalParams struct {
	Octaves    int     `yaml:"octaves"`
	Gain       float32 `yaml:"gain"`       // Amplitude multiplier per octave
	Lacunarity float32 `yaml:"lacunarity"` // Frequency multiplier per octave
	Amplitude  float32 `yaml:"amplitude"`  // Amplitude of the first octave
	Frequency  float32 `yaml:"frequency"`  // Frequency of the first octave
}

// DefaultFractalParams returns the parameters used for the stock terrain.
func DefaultFractalParams() FractalParams {
	return FractalParams{
		Octaves:    8,
		Gain:       0.5,
		Lacunarity: 1.92,
		Amplitude:  2.0,
		Frequency:  1.0,
	}
}

// Fractal sums Octaves samples of src, scaling amplitude by Gain and
// frequency by Lacunarity after each one. The result is not clamped.
// Parameters are not validated here.
func Fractal(src Source, x, y float32, p FractalParams) float32 {
	amplitude := p.Amplitude
	frequency := p.Frequency

	var value float32
	for range p.Octaves {
		value += amplitude * src.Sample(x*frequency, y*frequency)
		amplitude *= p.Gain
		frequency *= p.Lacunarity
	}
	return value
}
