package core

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Scenario is what a simulation deployment configures: which defense
// nodes triangulate, what the initial control positions are, and
// whether detected ranges carry measurement error.
type Scenario struct {
	Name             string
	Nodes            []DefenseNode
	Defaults         SimulationConfig
	MeasurementError bool
}

// internal YAML shapes – kept unexported so the file format can evolve
// without touching the public Scenario type.
type scenarioYAML struct {
	Name             string           `yaml:"name"`
	Nodes            []DefenseNode    `yaml:"defense_nodes"`
	Defaults         defaultsYAML     `yaml:"defaults"`
	MeasurementError bool             `yaml:"measurement_error"`
}

type defaultsYAML struct {
	FrequencyHz  *float64 `yaml:"frequency_hz"`
	Amplitude    *float64 `yaml:"amplitude"`
	JamType      string   `yaml:"jam_type"`
	JamIntensity *float64 `yaml:"jam_intensity"`
	ThreatLat    *float64 `yaml:"threat_lat"`
	ThreatLon    *float64 `yaml:"threat_lon"`
	SampleRateHz *float64 `yaml:"sample_rate_hz"`
	DurationS    *float64 `yaml:"duration_s"`
}

// LoadScenario reads a YAML scenario from r. Omitted defaults fall
// back to DefaultConfig values; an omitted node list falls back to the
// built-in theatre. The resulting default config is validated so a bad
// scenario file fails at load time, not mid-tick.
func LoadScenario(r io.Reader) (*Scenario, error) {
	var payload scenarioYAML
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("LoadScenario: decode failed: %w", err)
	}

	sc := &Scenario{
		Name:             payload.Name,
		Nodes:            payload.Nodes,
		Defaults:         DefaultConfig(),
		MeasurementError: payload.MeasurementError,
	}
	if len(sc.Nodes) == 0 {
		sc.Nodes = DefaultDefenseNodes()
	}
	for i, node := range sc.Nodes {
		if node.Name == "" {
			return nil, fmt.Errorf("LoadScenario: defense node %d has no name", i)
		}
	}

	d := payload.Defaults
	if d.FrequencyHz != nil {
		sc.Defaults.FrequencyHz = *d.FrequencyHz
	}
	if d.Amplitude != nil {
		sc.Defaults.Amplitude = *d.Amplitude
	}
	if d.JamType != "" {
		jt, err := ParseJamType(d.JamType)
		if err != nil {
			return nil, fmt.Errorf("LoadScenario: %w", err)
		}
		sc.Defaults.JamType = jt
	}
	if d.JamIntensity != nil {
		sc.Defaults.JamIntensity = *d.JamIntensity
	}
	if d.ThreatLat != nil {
		sc.Defaults.ThreatLat = *d.ThreatLat
	}
	if d.ThreatLon != nil {
		sc.Defaults.ThreatLon = *d.ThreatLon
	}
	if d.SampleRateHz != nil {
		sc.Defaults.SampleRateHz = *d.SampleRateHz
	}
	if d.DurationS != nil {
		sc.Defaults.DurationS = *d.DurationS
	}

	if err := sc.Defaults.Validate(); err != nil {
		return nil, fmt.Errorf("LoadScenario: invalid defaults: %w", err)
	}
	return sc, nil
}

// DefaultScenario returns the built-in theatre with default controls.
func DefaultScenario() *Scenario {
	return &Scenario{
		Name:     "default",
		Nodes:    DefaultDefenseNodes(),
		Defaults: DefaultConfig(),
	}
}
