package core

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Jamming model constants. These are simulation-tuning choices, not a
// contract: the pulse train keeps the original 50-sample period, and
// the sweep covers the 1–50 Hz band the spectrum display is sized for.
const (
	// pulsePeriodSamples is the repetition period of the pulse train.
	pulsePeriodSamples = 50
	// pulseOnSamples is how many samples of each period the burst is on
	// (10% duty cycle).
	pulseOnSamples = 5
	// pulseCarrierHz is the burst carrier frequency.
	pulseCarrierHz = 40.0
	// pulseGain scales the burst amplitude relative to intensity.
	pulseGain = 3.0
	// sweepStartHz / sweepEndHz bound the chirp's instantaneous frequency
	// over the duration window.
	sweepStartHz = 1.0
	sweepEndHz   = 50.0
)

// Jammer produces interference traces. Randomness (the NOISE model)
// comes from an injected source so ticks are reproducible under a
// fixed seed.
type Jammer struct {
	src rand.Source
}

// NewJammer wraps a random source. A nil source falls back to an
// unseeded PCG, which is fine for interactive use but not for
// replayable tests.
func NewJammer(src rand.Source) *Jammer {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Jammer{src: src}
}

// Generate dispatches on jamType and returns an interference trace
// aligned to the grid. Intensity zero yields an all-zero trace for
// every jam type; that is the clean-signal baseline, not an error.
// Intensity outside [0, MaxJamIntensity] or an unknown jam type is
// rejected with ErrInvalidParameter.
func (j *Jammer) Generate(grid TimeGrid, jamType JamType, intensity float64) (SignalTrace, error) {
	if intensity < 0 || intensity > MaxJamIntensity || math.IsNaN(intensity) {
		return nil, fmt.Errorf("%w: jam intensity must be in [0,%v], got %v",
			ErrInvalidParameter, MaxJamIntensity, intensity)
	}

	trace := make(SignalTrace, grid.Len())
	if intensity == 0 {
		return trace, nil
	}

	switch jamType {
	case JamNone:
		return trace, nil
	case JamNoise:
		j.noise(trace, intensity)
	case JamPulse:
		pulse(grid, trace, intensity)
	case JamSweep:
		sweep(grid, trace, intensity)
	default:
		return nil, fmt.Errorf("%w: unknown jam type %d", ErrInvalidParameter, int(jamType))
	}
	return trace, nil
}

// noise fills the trace with zero-mean Gaussian samples whose standard
// deviation equals the intensity, raising the noise floor uniformly
// across the spectrum.
func (j *Jammer) noise(trace SignalTrace, intensity float64) {
	dist := distuv.Normal{Mu: 0, Sigma: intensity, Src: j.src}
	for i := range trace {
		trace[i] = dist.Rand()
	}
}

// pulse produces a periodic rectangular envelope multiplying a
// high-amplitude carrier: short bursts in the time trace that average
// out in long-window statistics.
func pulse(grid TimeGrid, trace SignalTrace, intensity float64) {
	w := 2 * math.Pi * pulseCarrierHz
	for i, t := range grid.Times {
		if i%pulsePeriodSamples < pulseOnSamples {
			trace[i] = pulseGain * intensity * math.Sin(w*t)
		}
	}
}

// sweep produces a linear chirp from sweepStartHz to sweepEndHz across
// the duration window. The phase is the integral of the instantaneous
// frequency, so the trace is a deterministic function of elapsed time.
func sweep(grid TimeGrid, trace SignalTrace, intensity float64) {
	if grid.Len() == 0 {
		return
	}
	window := float64(grid.Len()) / grid.SampleRateHz
	rate := (sweepEndHz - sweepStartHz) / window
	for i, t := range grid.Times {
		phase := 2 * math.Pi * (sweepStartHz*t + 0.5*rate*t*t)
		trace[i] = intensity * math.Sin(phase)
	}
}
