package core

import "gonum.org/v1/gonum/dsp/fourier"

// ConstellationPoint is one (I, Q) sample of the analytic signal.
type ConstellationPoint struct {
	I float64 `json:"I"`
	Q float64 `json:"Q"`
}

// ExtractIQ derives the analytic signal of the received trace via the
// frequency-domain Hilbert construction: transform, zero the negative
// frequencies, double the positive ones (DC and Nyquist untouched),
// transform back. The real part is the original signal, the imaginary
// part its quadrature companion; each sample becomes one (I, Q) point.
//
// A clean carrier traces a circle of radius equal to its amplitude;
// interference disperses the locus, which is the dashboard's visual
// proxy for degraded modulation integrity.
func ExtractIQ(received SignalTrace) []ConstellationPoint {
	n := len(received)
	if n == 0 {
		return nil
	}

	seq := make([]complex128, n)
	for i, v := range received {
		seq[i] = complex(v, 0)
	}

	fft := fourier.NewCmplxFFT(n)
	coeffs := fft.Coefficients(nil, seq)

	half := n / 2
	for i := 1; i < half; i++ {
		coeffs[i] *= 2
	}
	if n%2 != 0 && half >= 1 {
		coeffs[half] *= 2
	}
	for i := half + 1; i < n; i++ {
		coeffs[i] = 0
	}

	analytic := fft.Sequence(nil, coeffs)

	points := make([]ConstellationPoint, n)
	inv := 1.0 / float64(n)
	for i, c := range analytic {
		points[i] = ConstellationPoint{I: real(c) * inv, Q: imag(c) * inv}
	}
	return points
}
