package core

import (
	"math"
	"testing"
)

func TestExtractIQ_Length(t *testing.T) {
	grid := NewTimeGrid(1000, 1)
	trace, err := GenerateCarrier(grid, 5, 1)
	if err != nil {
		t.Fatalf("GenerateCarrier: %v", err)
	}

	points := ExtractIQ(trace)
	if len(points) != len(trace) {
		t.Errorf("constellation has %d points, want %d", len(points), len(trace))
	}
}

func TestExtractIQ_RealPartIsTheSignal(t *testing.T) {
	grid := NewTimeGrid(1000, 1)
	trace, err := GenerateCarrier(grid, 5, 1.5)
	if err != nil {
		t.Fatalf("GenerateCarrier: %v", err)
	}

	points := ExtractIQ(trace)
	for i := range trace {
		if math.Abs(points[i].I-trace[i]) > 1e-9 {
			t.Fatalf("I[%d] = %v, want original sample %v", i, points[i].I, trace[i])
		}
	}
}

func TestExtractIQ_CleanCarrierTracesACircle(t *testing.T) {
	// With an integer cycle count the FFT Hilbert construction is
	// exact: |I + jQ| equals the carrier amplitude at every sample.
	const amplitude = 1.5
	grid := NewTimeGrid(1000, 1)
	trace, err := GenerateCarrier(grid, 5, amplitude)
	if err != nil {
		t.Fatalf("GenerateCarrier: %v", err)
	}

	points := ExtractIQ(trace)
	for i, p := range points {
		if r := math.Hypot(p.I, p.Q); math.Abs(r-amplitude) > 1e-6 {
			t.Fatalf("point %d has radius %v, want %v", i, r, amplitude)
		}
	}
}

func TestExtractIQ_QuadratureOfSineIsNegativeCosine(t *testing.T) {
	grid := NewTimeGrid(1000, 1)
	trace, err := GenerateCarrier(grid, 5, 1)
	if err != nil {
		t.Fatalf("GenerateCarrier: %v", err)
	}

	points := ExtractIQ(trace)
	w := 2 * math.Pi * 5.0
	for i, tm := range grid.Times {
		want := -math.Cos(w * tm)
		if math.Abs(points[i].Q-want) > 1e-6 {
			t.Fatalf("Q[%d] = %v, want %v", i, points[i].Q, want)
		}
	}
}

func TestExtractIQ_JammingDispersesTheLocus(t *testing.T) {
	grid := NewTimeGrid(1000, 1)
	clean, err := GenerateCarrier(grid, 5, 1)
	if err != nil {
		t.Fatalf("GenerateCarrier: %v", err)
	}
	noise, err := seededJammer(11).Generate(grid, JamNoise, 5)
	if err != nil {
		t.Fatalf("Generate(noise): %v", err)
	}
	received, err := Combine(clean, noise)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}

	radiusSpread := func(points []ConstellationPoint) float64 {
		mean := 0.0
		radii := make([]float64, len(points))
		for i, p := range points {
			radii[i] = math.Hypot(p.I, p.Q)
			mean += radii[i]
		}
		mean /= float64(len(radii))
		variance := 0.0
		for _, r := range radii {
			variance += (r - mean) * (r - mean)
		}
		return math.Sqrt(variance / float64(len(radii)))
	}

	cleanSpread := radiusSpread(ExtractIQ(clean))
	jammedSpread := radiusSpread(ExtractIQ(received))
	if jammedSpread < 10*cleanSpread+0.5 {
		t.Errorf("jammed radius spread %v vs clean %v, expected clear dispersion",
			jammedSpread, cleanSpread)
	}
}
