// Package noise provides the seeded coherent-noise sources the terrain
// layers sample: fractal Brownian motion, billow, and ridged multifractal
// over simplex noise, plus Perlin turbulence for domain warping.
// Every source is immutable after construction (the underlying generators
// are read-only permutation tables), so the same instance may be evaluated
// from any number of goroutines.
// See design doc Section 3.2.
package noise

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/g10z3r/wofc/internal/mathx"
)

// defaultPersistence halves each octave's contribution, the usual fBm gain.
const defaultPersistence = 0.5

// Fractal layers octaves of simplex noise into fractal Brownian motion.
// Output is normalized into [-1, 1].
type Fractal struct {
	src         opensimplex.Noise
	frequency   float64
	lacunarity  float64
	persistence float64
	octaves     int
}

// NewFractal returns a fractal source with the given base frequency,
// per-octave frequency multiplier, and octave count.
func NewFractal(seed int64, frequency, lacunarity float64, octaves int) *Fractal {
	return &Fractal{
		src:         opensimplex.New(seed),
		frequency:   frequency,
		lacunarity:  lacunarity,
		persistence: defaultPersistence,
		octaves:     octaves,
	}
}

// At3 samples the fractal at a 3D point.
func (f *Fractal) At3(x, y, z float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	freq := f.frequency

	for i := 0; i < f.octaves; i++ {
		total += f.src.Eval3(x*freq, y*freq, z*freq) * amplitude
		maxVal += amplitude
		amplitude *= f.persistence
		freq *= f.lacunarity
	}

	return total / maxVal
}

// Billow is the fractal variant with per-octave folding (2|n|-1), producing
// rounded, lumpy masses. Output is normalized into [-1, 1].
type Billow struct {
	src         opensimplex.Noise
	frequency   float64
	lacunarity  float64
	persistence float64
	octaves     int
}

// NewBillow returns a billow source.
func NewBillow(seed int64, frequency, lacunarity float64, octaves int) *Billow {
	return &Billow{
		src:         opensimplex.New(seed),
		frequency:   frequency,
		lacunarity:  lacunarity,
		persistence: defaultPersistence,
		octaves:     octaves,
	}
}

// At3 samples the billow at a 3D point.
func (b *Billow) At3(x, y, z float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	freq := b.frequency

	for i := 0; i < b.octaves; i++ {
		signal := 2*math.Abs(b.src.Eval3(x*freq, y*freq, z*freq)) - 1
		total += signal * amplitude
		maxVal += amplitude
		amplitude *= b.persistence
		freq *= b.lacunarity
	}

	return total / maxVal
}

// Ridged is a ridged multifractal: octaves of inverted-absolute noise with
// feedback weighting, so ridge crests sharpen instead of averaging out.
// Output spans roughly [-1, 1.35]; layers clamp after scaling.
type Ridged struct {
	src        opensimplex.Noise
	frequency  float64
	lacunarity float64
	octaves    int
	weights    []float64
}

const (
	ridgedOffset = 1.0
	ridgedGain   = 2.0
)

// NewRidged returns a ridged-multifractal source.
func NewRidged(seed int64, frequency, lacunarity float64, octaves int) *Ridged {
	// Spectral weights fall off by one power of the lacunarity per octave.
	weights := make([]float64, octaves)
	f := 1.0
	for i := range weights {
		weights[i] = 1 / f
		f *= lacunarity
	}
	return &Ridged{
		src:        opensimplex.New(seed),
		frequency:  frequency,
		lacunarity: lacunarity,
		octaves:    octaves,
		weights:    weights,
	}
}

// At3 samples the ridged multifractal at a 3D point.
func (r *Ridged) At3(x, y, z float64) float64 {
	value := 0.0
	weight := 1.0
	freq := r.frequency

	for i := 0; i < r.octaves; i++ {
		signal := ridgedOffset - math.Abs(r.src.Eval3(x*freq, y*freq, z*freq))
		signal *= signal
		signal *= weight

		// Successive octaves contribute only where the previous signal was
		// strong; ridge crests stay sharp instead of averaging out.
		weight = mathx.Clamp01(signal * ridgedGain)

		value += signal * r.weights[i]
		freq *= r.lacunarity
	}

	return value*1.25 - 1
}
