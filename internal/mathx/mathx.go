// Package mathx provides the small deterministic math kit the terrain
// pipeline is built from: clamps, interpolants, and seed hashing.
// Everything here is branch-stable and allocation-free.
// See design doc Section 3.1.
package mathx

import "golang.org/x/exp/constraints"

// Clamp limits v to the closed interval [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Lerp interpolates between a and b. The two-product form returns a exactly
// at t=0 and b exactly at t=1, which blend weights rely on.
func Lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// SmoothStep is the cubic Hermite ramp: 0 at or below edge0, 1 at or above
// edge1, C1-continuous in between. Degenerate edges (edge0 >= edge1) collapse
// to a hard step at edge0; coverage thresholds of exactly 0 or 1 rely on the
// step being exact.
func SmoothStep(edge0, edge1, v float64) float64 {
	if edge0 >= edge1 {
		if v < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp01((v - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}
