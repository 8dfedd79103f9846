package core

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// HistogramBins is the fixed number of equal-width amplitude bins.
const HistogramBins = 40

// HistogramBin is one (center, density) pair of the amplitude profile.
type HistogramBin struct {
	BinCenter float64 `json:"BinCenter"`
	Density   float64 `json:"Density"`
}

// ProfileAmplitude bins the amplitude distribution of the received
// trace over its observed min/max range and normalises counts into a
// density whose area integrates to 1. A zero-variance trace (for
// example amplitude zero with no interference) collapses to a single
// unit spike instead of dividing by a zero range.
func ProfileAmplitude(received SignalTrace) []HistogramBin {
	if len(received) == 0 {
		return nil
	}

	sorted := slices.Clone([]float64(received))
	slices.Sort(sorted)
	lo, hi := sorted[0], sorted[len(sorted)-1]

	if lo == hi {
		return []HistogramBin{{BinCenter: lo, Density: 1}}
	}

	width := (hi - lo) / HistogramBins
	dividers := make([]float64, HistogramBins+1)
	for i := range dividers {
		dividers[i] = lo + width*float64(i)
	}
	// stat.Histogram requires every sample strictly below the last
	// divider; nudge it past the observed maximum.
	dividers[HistogramBins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, sorted, nil)

	total := float64(len(sorted))
	bins := make([]HistogramBin, HistogramBins)
	for i, c := range counts {
		bins[i] = HistogramBin{
			BinCenter: lo + width*(float64(i)+0.5),
			Density:   c / (total * width),
		}
	}
	return bins
}
