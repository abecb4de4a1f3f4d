package mathx

import "sort"

// CurvePoint is one (input, output) control point of a Curve.
type CurvePoint struct {
	In  float64
	Out float64
}

// Curve remaps a value through a piecewise cubic spline over control points.
// Inputs outside the control range clamp to the nearest segment. Used to
// shape raw continent noise into basin/shelf/coast bands.
type Curve struct {
	points []CurvePoint
}

// NewCurve builds a Curve from at least four control points. Points are
// sorted by input; duplicate inputs keep the later output.
func NewCurve(points ...CurvePoint) *Curve {
	ps := make([]CurvePoint, len(points))
	copy(ps, points)
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].In < ps[j].In })
	return &Curve{points: ps}
}

// Apply evaluates the curve at v.
func (c *Curve) Apply(v float64) float64 {
	n := len(c.points)

	// Segment index: first control point with input greater than v.
	idx := 0
	for idx < n && v >= c.points[idx].In {
		idx++
	}

	i1 := Clamp(idx-1, 0, n-1)
	i2 := Clamp(idx, 0, n-1)
	if i1 == i2 {
		return c.points[i1].Out
	}
	i0 := Clamp(idx-2, 0, n-1)
	i3 := Clamp(idx+1, 0, n-1)

	in1, in2 := c.points[i1].In, c.points[i2].In
	alpha := (v - in1) / (in2 - in1)
	return cubic(c.points[i0].Out, c.points[i1].Out, c.points[i2].Out, c.points[i3].Out, alpha)
}

// cubic interpolates between n1 and n2 with n0/n3 as outer guides.
func cubic(n0, n1, n2, n3, a float64) float64 {
	p := (n3 - n2) - (n0 - n1)
	q := (n0 - n1) - p
	r := n2 - n0
	s := n1
	return p*a*a*a + q*a*a + r*a + s
}

// Terrace remaps a value onto a rising staircase defined by control points;
// each step starts flat and curves upward into the next point. Used for
// badland mesa tops.
type Terrace struct {
	points []float64
}

// NewTerrace builds a Terrace from at least two control point inputs.
func NewTerrace(points ...float64) *Terrace {
	ps := make([]float64, len(points))
	copy(ps, points)
	sort.Float64s(ps)
	return &Terrace{points: ps}
}

// Apply evaluates the terrace at v.
func (t *Terrace) Apply(v float64) float64 {
	n := len(t.points)

	idx := 0
	for idx < n && v >= t.points[idx] {
		idx++
	}

	i0 := Clamp(idx-1, 0, n-1)
	i1 := Clamp(idx, 0, n-1)
	if i0 == i1 {
		return t.points[i0]
	}

	p0, p1 := t.points[i0], t.points[i1]
	alpha := (v - p0) / (p1 - p0)
	// Squaring flattens the start of each step.
	alpha *= alpha
	return Lerp(p0, p1, alpha)
}
