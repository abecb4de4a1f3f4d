package export

import (
	"image"
	"image/color"
	"image/png"
	"io"
)

// WriteGrayPNG encodes the field as 16-bit grayscale with the min..max span
// stretched over the full range. Flat fields encode as black.
func WriteGrayPNG(out io.Writer, f *Field) error {
	img := image.NewGray16(image.Rect(0, 0, f.Grid.Width, f.Grid.Height))
	span := f.Max - f.Min
	if span <= 0 {
		span = 1
	}
	for j := 0; j < f.Grid.Height; j++ {
		for i := 0; i < f.Grid.Width; i++ {
			v := (f.At(i, j) - f.Min) / span
			img.SetGray16(i, j, color.Gray16{Y: uint16(v * 65535)})
		}
	}
	return png.Encode(out, img)
}

type rgb struct {
	r, g, b float64
}

func (c rgb) color() color.RGBA {
	return color.RGBA{R: uint8(c.r), G: uint8(c.g), B: uint8(c.b), A: 255}
}

var (
	seaRamp = []rgb{
		{8, 16, 56},
		{16, 54, 118},
		{58, 124, 190},
		{132, 194, 238},
	}
	landRamp = []rgb{
		{70, 138, 72},
		{150, 168, 84},
		{208, 186, 124},
		{148, 110, 76},
		{246, 246, 246},
	}
)

// ramp linearly interpolates between the stops for t in [0, 1].
func ramp(stops []rgb, t float64) rgb {
	if t <= 0 {
		return stops[0]
	}
	if t >= 1 {
		return stops[len(stops)-1]
	}
	pos := t * float64(len(stops)-1)
	idx := int(pos)
	frac := pos - float64(idx)
	a, b := stops[idx], stops[idx+1]
	return rgb{
		r: a.r + (b.r-a.r)*frac,
		g: a.g + (b.g-a.g)*frac,
		b: a.b + (b.b-a.b)*frac,
	}
}

// WriteHypsometricPNG encodes the field with conventional elevation tints:
// blues below the waterline, green through brown to white above it. The
// waterline is in elevation units, usually SeaLevel*ContinentHeightScale.
func WriteHypsometricPNG(out io.Writer, f *Field, waterline float64) error {
	img := image.NewRGBA(image.Rect(0, 0, f.Grid.Width, f.Grid.Height))
	seaSpan := waterline - f.Min
	landSpan := f.Max - waterline
	for j := 0; j < f.Grid.Height; j++ {
		for i := 0; i < f.Grid.Width; i++ {
			v := f.At(i, j)
			var c rgb
			if v < waterline {
				t := 0.0
				if seaSpan > 0 {
					t = (v - f.Min) / seaSpan
				}
				c = ramp(seaRamp, t)
			} else {
				t := 1.0
				if landSpan > 0 {
					t = (v - waterline) / landSpan
				}
				c = ramp(landRamp, t)
			}
			img.SetRGBA(i, j, c.color())
		}
	}
	return png.Encode(out, img)
}
