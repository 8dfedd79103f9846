package core

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Range measurements wander by up to ±5% around the true distance when
// measurement error is enabled.
const (
	rangeErrorMin = 0.95
	rangeErrorMax = 1.05
)

// Engine runs the signal-generation and analysis pipeline. It owns the
// defense-node set and the random source; everything else is a pure
// function of the per-tick SimulationConfig, so ticks never share
// state and identical seeded configurations yield identical results.
type Engine struct {
	nodes            []DefenseNode
	jammer           *Jammer
	rangeRand        rand.Source
	measurementError bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithDefenseNodes replaces the default node set. The slice is copied;
// the set is fixed for the engine's lifetime.
func WithDefenseNodes(nodes []DefenseNode) Option {
	return func(e *Engine) {
		if len(nodes) > 0 {
			e.nodes = append([]DefenseNode(nil), nodes...)
		}
	}
}

// WithSeed makes the NOISE jammer and the geolocation measurement
// error fully deterministic. Two engines built with the same seed
// produce identical tick outputs for identical configs.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.jammer = NewJammer(rand.NewPCG(seed, seed))
		e.rangeRand = rand.NewPCG(seed+1, seed+1)
	}
}

// WithMeasurementError toggles the ±5% perturbation on detected
// triangulation radii. Off by default so the exact-distance invariants
// hold out of the box.
func WithMeasurementError(enabled bool) Option {
	return func(e *Engine) { e.measurementError = enabled }
}

// NewEngine builds an engine with the default defense nodes and an
// unseeded random source.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		nodes:     DefaultDefenseNodes(),
		jammer:    NewJammer(nil),
		rangeRand: rand.NewPCG(rand.Uint64(), rand.Uint64()),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DefenseNodes returns a copy of the engine's node set.
func (e *Engine) DefenseNodes() []DefenseNode {
	return append([]DefenseNode(nil), e.nodes...)
}

// TickResult is everything one tick derives from a SimulationConfig.
// The five analysis views depend only on the received trace and the
// threat position, never on each other.
type TickResult struct {
	Config        SimulationConfig     `json:"Config"`
	Grid          TimeGrid             `json:"Grid"`
	Clean         SignalTrace          `json:"Clean"`
	Interference  SignalTrace          `json:"Interference"`
	Received      SignalTrace          `json:"Received"`
	Spectrum      []SpectrumBin        `json:"Spectrum"`
	Constellation []ConstellationPoint `json:"Constellation"`
	Histogram     []HistogramBin       `json:"Histogram"`
	Link          LinkQuality          `json:"Link"`
	Threat        ThreatEstimate       `json:"Threat"`
}

// RunTick validates the config, synthesises the clean and interference
// traces over a shared time grid, combines them, and fans the received
// trace out to the spectral, constellation and statistical analyzers.
// Geolocation runs on position data alone. Validation failures surface
// before any computation; the host keeps its previous display.
func (e *Engine) RunTick(cfg SimulationConfig) (*TickResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	grid := NewTimeGrid(cfg.SampleRateHz, cfg.DurationS)

	clean, err := GenerateCarrier(grid, cfg.FrequencyHz, cfg.Amplitude)
	if err != nil {
		return nil, err
	}
	interference, err := e.jammer.Generate(grid, cfg.JamType, cfg.JamIntensity)
	if err != nil {
		return nil, err
	}
	received, err := Combine(clean, interference)
	if err != nil {
		return nil, err
	}
	snr, err := ComputeSNRdB(clean, interference)
	if err != nil {
		return nil, err
	}

	var rangeError func() float64
	if e.measurementError {
		dist := distuv.Uniform{Min: rangeErrorMin, Max: rangeErrorMax, Src: e.rangeRand}
		rangeError = dist.Rand
	}

	return &TickResult{
		Config:        cfg,
		Grid:          grid,
		Clean:         clean,
		Interference:  interference,
		Received:      received,
		Spectrum:      AnalyzeSpectrum(received, cfg.SampleRateHz),
		Constellation: ExtractIQ(received),
		Histogram:     ProfileAmplitude(received),
		Link:          LinkQuality{SNRdB: snr, Status: ClassifySNR(snr)},
		Threat:        Triangulate(cfg.ThreatLat, cfg.ThreatLon, e.nodes, rangeError),
	}, nil
}
