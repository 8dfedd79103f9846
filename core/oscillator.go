package core

import (
	"fmt"
	"math"
)

// GenerateCarrier synthesises the legitimate reference tone:
// amplitude * sin(2π f t) over the grid. Amplitude zero is a valid
// (all-zero) trace, not an error.
func GenerateCarrier(grid TimeGrid, frequencyHz, amplitude float64) (SignalTrace, error) {
	if !(frequencyHz > 0) {
		return nil, fmt.Errorf("%w: carrier frequency must be > 0, got %v", ErrInvalidParameter, frequencyHz)
	}
	if amplitude < 0 || math.IsNaN(amplitude) {
		return nil, fmt.Errorf("%w: carrier amplitude must be >= 0, got %v", ErrInvalidParameter, amplitude)
	}

	trace := make(SignalTrace, grid.Len())
	w := 2 * math.Pi * frequencyHz
	for i, t := range grid.Times {
		trace[i] = amplitude * math.Sin(w*t)
	}
	return trace, nil
}
