package core

import (
	"fmt"
	"math"
	"strings"
)

// JamType selects which interference model the jammer runs.
type JamType int

const (
	JamNone  JamType = iota // no interference
	JamNoise                // broadband Gaussian noise
	JamPulse                // intermittent high-power bursts
	JamSweep                // linear frequency chirp
)

// MaxJamIntensity is the upper bound of the jam intensity control.
const MaxJamIntensity = 5.0

func (jt JamType) String() string {
	switch jt {
	case JamNone:
		return "none"
	case JamNoise:
		return "noise"
	case JamPulse:
		return "pulse"
	case JamSweep:
		return "sweep"
	default:
		return fmt.Sprintf("jamtype(%d)", int(jt))
	}
}

// ParseJamType maps a string (as used by scenario files, CLI flags and
// dashboard messages) to a JamType. Unknown values are rejected.
func ParseJamType(s string) (JamType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return JamNone, nil
	case "noise", "white", "broadband":
		return JamNoise, nil
	case "pulse", "burst":
		return JamPulse, nil
	case "sweep", "chirp":
		return JamSweep, nil
	default:
		return JamNone, fmt.Errorf("%w: unknown jam type %q", ErrInvalidParameter, s)
	}
}

// SimulationConfig fully determines one simulation tick. It is treated
// as immutable: every derived output is recomputed from scratch each
// tick and nothing persists across ticks.
type SimulationConfig struct {
	FrequencyHz  float64 `json:"FrequencyHz" yaml:"frequency_hz"`
	Amplitude    float64 `json:"Amplitude" yaml:"amplitude"`
	JamType      JamType `json:"JamType" yaml:"-"`
	JamIntensity float64 `json:"JamIntensity" yaml:"jam_intensity"`
	ThreatLat    float64 `json:"ThreatLat" yaml:"threat_lat"`
	ThreatLon    float64 `json:"ThreatLon" yaml:"threat_lon"`
	SampleRateHz float64 `json:"SampleRateHz" yaml:"sample_rate_hz"`
	DurationS    float64 `json:"DurationS" yaml:"duration_s"`
}

// DefaultConfig mirrors the dashboard's initial control positions: a
// 5 Hz unit-amplitude carrier sampled at 1 kHz for one second, no
// interference, threat parked mid-theatre.
func DefaultConfig() SimulationConfig {
	return SimulationConfig{
		FrequencyHz:  5,
		Amplitude:    1,
		JamType:      JamNone,
		JamIntensity: 0,
		ThreatLat:    8.0,
		ThreatLon:    -66.0,
		SampleRateHz: 1000,
		DurationS:    1,
	}
}

// SampleCount returns N, the number of samples a tick operates on.
func (c SimulationConfig) SampleCount() int {
	return int(math.Round(c.SampleRateHz * c.DurationS))
}

// Validate rejects out-of-range values before any computation proceeds.
// All failures wrap ErrInvalidParameter so the host can keep its
// previous valid display instead of crashing.
func (c SimulationConfig) Validate() error {
	if !(c.FrequencyHz > 0) {
		return fmt.Errorf("%w: frequency_hz must be > 0, got %v", ErrInvalidParameter, c.FrequencyHz)
	}
	if c.Amplitude < 0 || math.IsNaN(c.Amplitude) {
		return fmt.Errorf("%w: amplitude must be >= 0, got %v", ErrInvalidParameter, c.Amplitude)
	}
	if c.JamType < JamNone || c.JamType > JamSweep {
		return fmt.Errorf("%w: unknown jam type %d", ErrInvalidParameter, int(c.JamType))
	}
	if c.JamIntensity < 0 || c.JamIntensity > MaxJamIntensity || math.IsNaN(c.JamIntensity) {
		return fmt.Errorf("%w: jam_intensity must be in [0,%v], got %v",
			ErrInvalidParameter, MaxJamIntensity, c.JamIntensity)
	}
	if !(c.SampleRateHz > 0) {
		return fmt.Errorf("%w: sample_rate_hz must be > 0, got %v", ErrInvalidParameter, c.SampleRateHz)
	}
	if !(c.DurationS > 0) {
		return fmt.Errorf("%w: duration_s must be > 0, got %v", ErrInvalidParameter, c.DurationS)
	}
	if c.SampleCount() < 2 {
		return fmt.Errorf("%w: sample_rate_hz * duration_s yields %d samples, need at least 2",
			ErrInvalidParameter, c.SampleCount())
	}
	return nil
}

// TimeGrid is the shared sample grid for a tick: N evenly spaced
// instants starting at t=0. Oscillator and Jammer both read it; nobody
// mutates it.
type TimeGrid struct {
	SampleRateHz float64   `json:"SampleRateHz"`
	Times        []float64 `json:"Times"`
}

// NewTimeGrid builds the grid for the given sampling parameters.
// Sample i sits at i / sampleRateHz, so the half-open window [0, duration)
// holds exact integer cycle counts for integer frequencies.
func NewTimeGrid(sampleRateHz, durationS float64) TimeGrid {
	n := int(math.Round(sampleRateHz * durationS))
	times := make([]float64, n)
	for i := range times {
		times[i] = float64(i) / sampleRateHz
	}
	return TimeGrid{SampleRateHz: sampleRateHz, Times: times}
}

// Len returns the number of samples on the grid.
func (g TimeGrid) Len() int { return len(g.Times) }

// SignalTrace is a real-valued amplitude sequence aligned to a TimeGrid.
type SignalTrace []float64

// MeanPower returns the mean squared amplitude of the trace.
func (s SignalTrace) MeanPower() float64 {
	if len(s) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return sum / float64(len(s))
}
