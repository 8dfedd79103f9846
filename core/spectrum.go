package core

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// MinSpectrumPowerDB is the floor applied to spectral bins so that
// silent bins render as a flat line instead of -Inf.
const MinSpectrumPowerDB = -120.0

// SpectrumBin is one (frequency, power) pair of the half spectrum.
type SpectrumBin struct {
	FrequencyHz float64 `json:"FrequencyHz"`
	PowerDB     float64 `json:"PowerDB"`
}

// AnalyzeSpectrum computes the discrete Fourier transform of the
// received trace and returns the non-negative half of the spectrum:
// exactly N/2 bins spaced sampleRateHz/N apart, magnitudes scaled by
// 2/N and converted to dB.
func AnalyzeSpectrum(received SignalTrace, sampleRateHz float64) []SpectrumBin {
	n := len(received)
	if n < 2 {
		return nil
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, received)

	binWidth := sampleRateHz / float64(n)
	scale := 2.0 / float64(n)

	bins := make([]SpectrumBin, n/2)
	for i := range bins {
		mag := scale * cmplx.Abs(coeffs[i])
		db := 20 * math.Log10(mag)
		if math.IsInf(db, -1) || db < MinSpectrumPowerDB {
			db = MinSpectrumPowerDB
		}
		bins[i] = SpectrumBin{
			FrequencyHz: float64(i) * binWidth,
			PowerDB:     db,
		}
	}
	return bins
}

// PeakBin returns the bin with the highest power. Useful for status
// readouts; ties resolve to the lowest frequency.
func PeakBin(bins []SpectrumBin) SpectrumBin {
	if len(bins) == 0 {
		return SpectrumBin{PowerDB: MinSpectrumPowerDB}
	}
	peak := bins[0]
	for _, b := range bins[1:] {
		if b.PowerDB > peak.PowerDB {
			peak = b
		}
	}
	return peak
}
