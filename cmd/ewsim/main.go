package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/signalsfoundry/ewsim/core"
	"github.com/signalsfoundry/ewsim/timectrl"
)

func main() {
	scenarioPath := flag.String("scenario", "", "path to a YAML scenario file (optional)")
	duration := flag.Duration("duration", 10*time.Second, "total simulation duration")
	tick := flag.Duration("tick", 1*time.Second, "tick interval")
	accelerated := flag.Bool("accelerated", false, "run in accelerated mode (vs real-time)")
	seed := flag.Uint64("seed", 0, "random seed; 0 means non-deterministic")

	frequency := flag.Float64("frequency", 0, "carrier frequency in Hz (overrides scenario)")
	amplitude := flag.Float64("amplitude", -1, "carrier amplitude (overrides scenario)")
	jamType := flag.String("jam-type", "", "jam model: none, noise, pulse or sweep (overrides scenario)")
	jamIntensity := flag.Float64("jam-intensity", -1, "jam intensity in [0,5] (overrides scenario)")
	threatLat := flag.Float64("threat-lat", 361, "threat latitude in degrees (overrides scenario)")
	threatLon := flag.Float64("threat-lon", 361, "threat longitude in degrees (overrides scenario)")

	flag.Parse()

	scenario := loadScenario(*scenarioPath)
	cfg := scenario.Defaults

	if *frequency > 0 {
		cfg.FrequencyHz = *frequency
	}
	if *amplitude >= 0 {
		cfg.Amplitude = *amplitude
	}
	if *jamType != "" {
		jt, err := core.ParseJamType(*jamType)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -jam-type: %v\n", err)
			os.Exit(2)
		}
		cfg.JamType = jt
	}
	if *jamIntensity >= 0 {
		cfg.JamIntensity = *jamIntensity
	}
	if *threatLat <= 90 && *threatLat >= -90 {
		cfg.ThreatLat = *threatLat
	}
	if *threatLon <= 180 && *threatLon >= -180 {
		cfg.ThreatLon = *threatLon
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(2)
	}

	engineOpts := []core.Option{
		core.WithDefenseNodes(scenario.Nodes),
		core.WithMeasurementError(scenario.MeasurementError),
	}
	if *seed != 0 {
		engineOpts = append(engineOpts, core.WithSeed(*seed))
	}
	engine := core.NewEngine(engineOpts...)

	mode := timectrl.RealTime
	if *accelerated {
		mode = timectrl.Accelerated
	}
	tc := timectrl.NewTimeController(time.Now().UTC(), *tick, mode)

	tc.AddListener(func(simTime time.Time) {
		result, err := engine.RunTick(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tick failed: %v\n", err)
			return
		}

		peak := core.PeakBin(result.Spectrum)
		fmt.Printf("[%s] jam=%-5s intensity=%.1f SNR=%6.1f dB status=%-11s peak=%5.1f Hz @ %6.1f dB\n",
			simTime.Format(time.RFC3339),
			cfg.JamType,
			cfg.JamIntensity,
			result.Link.SNRdB,
			result.Link.Status,
			peak.FrequencyHz,
			peak.PowerDB,
		)

		for _, r := range result.Threat.Ranges {
			fmt.Printf("↳ %-14s range=%.3f° detected=%.3f°\n",
				r.Node.Name, r.DistanceDeg, r.DetectedRadiusDeg)
		}
	})

	fmt.Printf("Starting simulation %q: duration=%s, tick=%s, jam=%s\n",
		scenario.Name, *duration, *tick, cfg.JamType)
	done := tc.Start(*duration)
	<-done
	fmt.Println("Simulation complete.")
}

// loadScenario reads the scenario file, falling back to the built-in
// defaults when no path is given.
func loadScenario(path string) *core.Scenario {
	if path == "" {
		return core.DefaultScenario()
	}
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open scenario %q: %v\n", path, err)
		os.Exit(1)
	}
	defer f.Close()

	scenario, err := core.LoadScenario(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load scenario %q: %v\n", path, err)
		os.Exit(1)
	}
	return scenario
}
