package terrain

import (
	"math"
	"testing"
)

func defaultSelectorParams() SelectorParams {
	return SelectorParams{
		SeaLevel:             0,
		ShelfLevel:           -0.375,
		MountainsAmount:      0.48,
		HillsAmount:          0.24,
		BadlandsAmount:       0.3125,
		ContinentHeightScale: 0.25,
	}
}

func buildPipeline(seed uint32, sp SelectorParams, terrainOffset float64) *Selector {
	cont := NewContinent(seed, ContinentParams{
		Frequency: 1, Lacunarity: 2.208984375, SeaLevel: sp.SeaLevel,
	})
	ctrl := NewControl(seed, ControlParams{
		Frequency: 1, Lacunarity: 2.208984375,
		SeaLevel: sp.SeaLevel, TerrainOffset: terrainOffset,
	}, cont)
	m := NewMountain(seed, MountainParams{
		Frequency: 1, Lacunarity: 2.142578125, Twist: 1, Glaciation: 0.375,
	})
	h := NewHill(seed, HillParams{Frequency: 1, Lacunarity: 2.162109375, Twist: 1})
	p := NewPlain(seed, PlainParams{Frequency: 1, Lacunarity: 2.314453125})
	b := NewBadland(seed, BadlandParams{Frequency: 1, Lacunarity: 2.212890625, Twist: 1})
	return NewSelector(cont, ctrl, m, h, p, b, sp)
}

func TestWeightsPartition(t *testing.T) {
	s := buildPipeline(42, defaultSelectorParams(), 1.0)
	probeGrid(48, 24, func(x, y float64) {
		w := s.WeightsAt(x, y)
		for _, v := range []float64{w.Land, w.Mountain, w.Hill, w.Plain, w.Badland} {
			if v < 0 || v > 1 {
				t.Fatalf("weight out of [0,1] at (%v,%v): %+v", x, y, w)
			}
		}
		if sum := w.Mountain + w.Hill + w.Plain; math.Abs(sum-1) > 1e-12 {
			t.Fatalf("land partition sums to %v at (%v,%v)", sum, x, y)
		}
		if w.Badland > w.Land+1e-12 {
			t.Fatalf("badland weight %v exceeds land %v", w.Badland, w.Land)
		}
	})
}

func TestDeepOceanIsPureContinent(t *testing.T) {
	sp := defaultSelectorParams()
	s := buildPipeline(7, sp, 1.0)
	checked := 0
	probeGrid(48, 24, func(x, y float64) {
		c := s.ContinentAt(x, y)
		if c >= sp.ShelfLevel {
			return
		}
		w := s.WeightsAt(x, y)
		if w.Land != 0 {
			t.Fatalf("land weight %v below the shelf (c=%v)", w.Land, c)
		}
		if got, want := s.At(x, y), c*sp.ContinentHeightScale; got != want {
			t.Fatalf("deep ocean elevation %v, want scaled continent %v", got, want)
		}
		checked++
	})
	if checked == 0 {
		t.Error("no deep-ocean samples on the probe grid")
	}
}

func TestBadlandSaturationReplacesBase(t *testing.T) {
	sp := defaultSelectorParams()
	sp.BadlandsAmount = 1 // coverage threshold collapses to a hard step at 0
	s := buildPipeline(11, sp, 1.0)

	// An identically-seeded badland layer reproduces the selector's.
	b := NewBadland(11, BadlandParams{Frequency: 1, Lacunarity: 2.212890625, Twist: 1})

	found := false
	probeGrid(128, 64, func(x, y float64) {
		if found {
			return
		}
		w := s.WeightsAt(x, y)
		if w.Land != 1 || w.Badland != 1 {
			return
		}
		found = true
		if got, want := s.At(x, y), b.At(x, y); got != want {
			t.Fatalf("saturated badland at (%v,%v): got %v, want raw layer %v", x, y, got, want)
		}
	})
	if !found {
		t.Fatal("no coordinate with saturated land found on the probe grid")
	}
}

func TestMountainsAmountZeroMeansNoMountains(t *testing.T) {
	sp := defaultSelectorParams()
	sp.MountainsAmount = 0
	sp.HillsAmount = 0
	s := buildPipeline(3, sp, 1.0)
	probeGrid(48, 24, func(x, y float64) {
		if w := s.WeightsAt(x, y); w.Mountain != 0 {
			t.Fatalf("mountain weight %v with amount 0 at (%v,%v)", w.Mountain, x, y)
		}
	})
}

func TestCoverageStepExtremes(t *testing.T) {
	// Threshold 0: everything is inside the band.
	if got := coverageStep(0, 0); got != 1 {
		t.Errorf("coverageStep(0, 0) = %v, want exactly 1", got)
	}
	if got := coverageStep(0.5, 0); got != 1 {
		t.Errorf("coverageStep(0.5, 0) = %v, want exactly 1", got)
	}
	// Threshold 1: nothing below 1 is.
	if got := coverageStep(0.999, 1); got != 0 {
		t.Errorf("coverageStep(0.999, 1) = %v, want exactly 0", got)
	}
	// Interior thresholds ramp smoothly and hit the half mark dead on.
	if got := coverageStep(0.5, 0.5); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("coverageStep(0.5, 0.5) = %v, want 0.5", got)
	}
}

func TestSelectorRange(t *testing.T) {
	s := buildPipeline(1234, defaultSelectorParams(), 1.0)
	probeGrid(48, 24, func(x, y float64) {
		v := s.At(x, y)
		if v < -1 || v > 1 {
			t.Fatalf("blended elevation out of range at (%v,%v): %v", x, y, v)
		}
	})
}

func TestSelectorContinuity(t *testing.T) {
	s := buildPipeline(55, defaultSelectorParams(), 1.0)
	// Mountain detail runs at a few thousand cycles per radian, so the walk
	// step must be well under one cycle.
	prev := s.At(0.5, 0.2)
	for i := 1; i <= 2500; i++ {
		x := 0.5 + float64(i)*0.0001
		cur := s.At(x, 0.2)
		if math.Abs(cur-prev) > 0.1 {
			t.Fatalf("discontinuity near lon %v: %v -> %v", x, prev, cur)
		}
		prev = cur
	}
}
