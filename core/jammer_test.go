package core

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
)

func seededJammer(seed uint64) *Jammer {
	return NewJammer(rand.NewPCG(seed, seed))
}

func TestJammer_ZeroIntensityIsAllZeroForEveryType(t *testing.T) {
	grid := NewTimeGrid(1000, 1)
	j := seededJammer(1)

	for _, jt := range []JamType{JamNone, JamNoise, JamPulse, JamSweep} {
		trace, err := j.Generate(grid, jt, 0)
		if err != nil {
			t.Fatalf("Generate(%v, 0): %v", jt, err)
		}
		for i, v := range trace {
			if v != 0 {
				t.Fatalf("jam type %v, sample %d = %v, want 0", jt, i, v)
			}
		}
	}
}

func TestJammer_RejectsOutOfRangeIntensity(t *testing.T) {
	grid := NewTimeGrid(1000, 1)
	j := seededJammer(1)

	for _, intensity := range []float64{-0.1, 5.1, math.NaN()} {
		if _, err := j.Generate(grid, JamNoise, intensity); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("intensity %v: got %v, want ErrInvalidParameter", intensity, err)
		}
	}
}

func TestJammer_RejectsUnknownJamType(t *testing.T) {
	grid := NewTimeGrid(1000, 1)
	j := seededJammer(1)

	if _, err := j.Generate(grid, JamType(99), 1); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("unknown jam type: got %v, want ErrInvalidParameter", err)
	}
}

func TestJammer_NoiseSigmaScalesWithIntensity(t *testing.T) {
	grid := NewTimeGrid(1000, 10) // 10k samples for a stable estimate

	for _, intensity := range []float64{1, 5} {
		trace, err := seededJammer(7).Generate(grid, JamNoise, intensity)
		if err != nil {
			t.Fatalf("Generate(noise, %v): %v", intensity, err)
		}
		got := math.Sqrt(trace.MeanPower())
		if math.Abs(got-intensity) > 0.1*intensity {
			t.Errorf("intensity %v: sample stddev = %v, want within 10%% of %v", intensity, got, intensity)
		}
	}
}

func TestJammer_PulseEnvelope(t *testing.T) {
	grid := NewTimeGrid(1000, 1)
	trace, err := seededJammer(1).Generate(grid, JamPulse, 2)
	if err != nil {
		t.Fatalf("Generate(pulse): %v", err)
	}

	// Off-segments of every period must be exactly zero.
	for i, v := range trace {
		if i%pulsePeriodSamples >= pulseOnSamples && v != 0 {
			t.Fatalf("off-segment sample %d = %v, want 0", i, v)
		}
	}

	// On-segments carry energy somewhere: a burst must not be silent.
	burstPower := 0.0
	for i, v := range trace {
		if i%pulsePeriodSamples < pulseOnSamples {
			burstPower += v * v
		}
	}
	if burstPower == 0 {
		t.Error("pulse bursts carry no energy")
	}

	// Burst peaks stay within the configured gain.
	limit := pulseGain * 2.0
	for i, v := range trace {
		if math.Abs(v) > limit+1e-9 {
			t.Fatalf("sample %d = %v exceeds burst limit %v", i, v, limit)
		}
	}
}

func TestJammer_SweepIsDeterministic(t *testing.T) {
	grid := NewTimeGrid(1000, 1)

	a, err := seededJammer(1).Generate(grid, JamSweep, 3)
	if err != nil {
		t.Fatalf("Generate(sweep): %v", err)
	}
	b, err := seededJammer(99).Generate(grid, JamSweep, 3)
	if err != nil {
		t.Fatalf("Generate(sweep): %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sweep differs at sample %d across seeds: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestJammer_SweepAmplitudeScalesWithIntensity(t *testing.T) {
	grid := NewTimeGrid(1000, 1)
	trace, err := seededJammer(1).Generate(grid, JamSweep, 4)
	if err != nil {
		t.Fatalf("Generate(sweep): %v", err)
	}
	peak := 0.0
	for _, v := range trace {
		if math.Abs(v) > peak {
			peak = math.Abs(v)
		}
	}
	if peak > 4+1e-9 {
		t.Errorf("sweep peak = %v, must not exceed intensity 4", peak)
	}
	if peak < 3.5 {
		t.Errorf("sweep peak = %v, expected the chirp to approach its amplitude 4", peak)
	}
}

func TestJammer_SweepSpectrumIsSmeared(t *testing.T) {
	// A chirp spreads energy across the swept band instead of a single
	// peak: many bins between the sweep bounds should sit well above
	// the out-of-band floor.
	grid := NewTimeGrid(1000, 1)
	trace, err := seededJammer(1).Generate(grid, JamSweep, 3)
	if err != nil {
		t.Fatalf("Generate(sweep): %v", err)
	}
	bins := AnalyzeSpectrum(trace, 1000)

	inBand := 0
	for _, b := range bins {
		if b.FrequencyHz >= sweepStartHz && b.FrequencyHz <= sweepEndHz && b.PowerDB > -30 {
			inBand++
		}
	}
	if inBand < 10 {
		t.Errorf("only %d in-band bins above -30 dB, expected a smeared band", inBand)
	}
}
