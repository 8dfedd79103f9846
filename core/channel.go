package core

import (
	"fmt"
	"math"
)

// MaxSNRdB is the sentinel reported when interference power is exactly
// zero. A finite ceiling keeps NaN/Inf out of the display contract.
const MaxSNRdB = 100.0

// Combine sums the clean and interference traces elementwise into the
// received trace. The traces must share a grid; a length skew is an
// internal invariant violation, never silently tolerated.
func Combine(clean, interference SignalTrace) (SignalTrace, error) {
	if len(clean) != len(interference) {
		return nil, fmt.Errorf("%w: clean has %d samples, interference has %d",
			ErrShapeMismatch, len(clean), len(interference))
	}
	received := make(SignalTrace, len(clean))
	for i := range clean {
		received[i] = clean[i] + interference[i]
	}
	return received, nil
}

// ComputeSNRdB returns the ratio of clean-signal power to interference
// power in decibels: 10·log10(Pclean/Pinterf). Zero interference power
// reports MaxSNRdB rather than dividing by zero.
func ComputeSNRdB(clean, interference SignalTrace) (float64, error) {
	if len(clean) != len(interference) {
		return 0, fmt.Errorf("%w: clean has %d samples, interference has %d",
			ErrShapeMismatch, len(clean), len(interference))
	}
	interfPower := interference.MeanPower()
	if interfPower == 0 {
		return MaxSNRdB, nil
	}
	snr := 10 * math.Log10(clean.MeanPower()/interfPower)
	// Clamp both ends so a silent carrier under jamming reports a finite
	// floor instead of -Inf.
	switch {
	case snr > MaxSNRdB:
		snr = MaxSNRdB
	case snr < -MaxSNRdB || math.IsInf(snr, -1):
		snr = -MaxSNRdB
	}
	return snr, nil
}
