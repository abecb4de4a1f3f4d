package noise

import (
	"github.com/aquilax/go-perlin"
)

// Perlin shape parameters shared by every turbulence instance. Alpha is the
// octave weight falloff, beta the frequency step, three octaves of roughness.
const (
	turbAlpha   = 2.0
	turbBeta    = 2.0
	turbOctaves = 3
)

// Turbulence displaces sample coordinates with three independent Perlin
// fields, one per axis. Layers chain two of these (a coarse and a fine
// stage) to twist their terrain without changing its statistics.
type Turbulence struct {
	dx, dy, dz *perlin.Perlin
	frequency  float64
	power      float64
}

// NewTurbulence returns a turbulence stage. Power is the displacement
// amplitude in input units; zero power leaves coordinates untouched.
func NewTurbulence(seed int64, frequency, power float64) *Turbulence {
	return &Turbulence{
		dx:        perlin.NewPerlin(turbAlpha, turbBeta, turbOctaves, seed),
		dy:        perlin.NewPerlin(turbAlpha, turbBeta, turbOctaves, seed+1),
		dz:        perlin.NewPerlin(turbAlpha, turbBeta, turbOctaves, seed+2),
		frequency: frequency,
		power:     power,
	}
}

// Warp3 returns the displaced coordinates.
func (t *Turbulence) Warp3(x, y, z float64) (float64, float64, float64) {
	if t.power == 0 {
		return x, y, z
	}
	fx, fy, fz := x*t.frequency, y*t.frequency, z*t.frequency
	return x + t.dx.Noise3D(fx, fy, fz)*t.power,
		y + t.dy.Noise3D(fx, fy, fz)*t.power,
		z + t.dz.Noise3D(fx, fy, fz)*t.power
}
