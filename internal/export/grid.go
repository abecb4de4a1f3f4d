// Package export samples a World across coordinate grids and serializes the
// result. The core stays a pure point function; this package is where the
// caller-side parallelism lives: rows are partitioned into contiguous blocks,
// one block per worker goroutine, no shared mutable state beyond disjoint
// slices of the output.
// See design doc Section 6.
package export

import (
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/g10z3r/wofc/pkg/world"
)

// Region is a rectangular window in planetary coordinates (radians).
type Region struct {
	XMin float64 `json:"x_min"`
	XMax float64 `json:"x_max"`
	YMin float64 `json:"y_min"`
	YMax float64 `json:"y_max"`
}

// WorldWindow is the full equirectangular window: every longitude, pole to
// pole.
func WorldWindow() Region {
	return Region{
		XMin: -math.Pi, XMax: math.Pi,
		YMin: -math.Pi / 2, YMax: math.Pi / 2,
	}
}

// Grid is a sampling resolution over a region.
type Grid struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Region Region `json:"region"`
}

// Coord returns the planetary coordinates of pixel (i, j). Pixels sample at
// their centers; row 0 is the region's northern edge.
func (g Grid) Coord(i, j int) (x, y float64) {
	x = g.Region.XMin + (float64(i)+0.5)/float64(g.Width)*(g.Region.XMax-g.Region.XMin)
	y = g.Region.YMax - (float64(j)+0.5)/float64(g.Height)*(g.Region.YMax-g.Region.YMin)
	return x, y
}

// Field is a sampled elevation grid, row-major.
type Field struct {
	Grid   Grid
	Values []float64
	Min    float64
	Max    float64
}

// At returns the sample at pixel (i, j).
func (f *Field) At(i, j int) float64 {
	return f.Values[j*f.Grid.Width+i]
}

// Sample queries w across the grid using the given number of worker
// goroutines (<= 0 means one per CPU). onRow, when non-nil, is called after
// each completed row with the running total; calls come from worker
// goroutines concurrently.
func Sample(w *world.World, g Grid, workers int, onRow func(done, total int)) *Field {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	f := &Field{
		Grid:   g,
		Values: make([]float64, g.Width*g.Height),
	}

	// Contiguous row blocks; each worker writes a disjoint slice range.
	step := (g.Height + workers - 1) / workers
	var done atomic.Int64
	var wg sync.WaitGroup
	for start := 0; start < g.Height; start += step {
		end := min(start+step, g.Height)
		wg.Add(1)
		go func(r0, r1 int) {
			defer wg.Done()
			for j := r0; j < r1; j++ {
				row := f.Values[j*g.Width : (j+1)*g.Width]
				for i := range row {
					x, y := g.Coord(i, j)
					row[i] = w.ElevationAt(x, y)
				}
				if onRow != nil {
					onRow(int(done.Add(1)), g.Height)
				}
			}
		}(start, end)
	}
	wg.Wait()

	f.Min, f.Max = math.Inf(1), math.Inf(-1)
	for _, v := range f.Values {
		if v < f.Min {
			f.Min = v
		}
		if v > f.Max {
			f.Max = v
		}
	}
	return f
}
