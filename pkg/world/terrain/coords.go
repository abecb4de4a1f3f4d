package terrain

import "math"

// SpherePoint maps angular coordinates (x = longitude, y = latitude, both in
// radians) onto the unit sphere. Sampling 3D noise at these points makes
// every field seamless in longitude and pole-safe in latitude.
func SpherePoint(x, y float64) (px, py, pz float64) {
	cy := math.Cos(y)
	return cy * math.Cos(x), cy * math.Sin(x), math.Sin(y)
}
