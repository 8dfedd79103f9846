package main

import (
	"testing"
	"time"

	"github.com/signalsfoundry/ewsim/core"
	"github.com/signalsfoundry/ewsim/timectrl"
)

// TestIntegration_TickLoop runs a short accelerated simulation the way
// main wires it: a time controller driving engine ticks.
func TestIntegration_TickLoop(t *testing.T) {
	engine := core.NewEngine(core.WithSeed(7))
	cfg := core.DefaultConfig()
	cfg.JamType = core.JamNoise
	cfg.JamIntensity = 1.5

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	tc := timectrl.NewTimeController(start, time.Second, timectrl.Accelerated)

	ticks := 0
	var lastStatus core.LinkStatus
	tc.AddListener(func(simTime time.Time) {
		result, err := engine.RunTick(cfg)
		if err != nil {
			t.Errorf("tick at %s failed: %v", simTime, err)
			return
		}
		if len(result.Received) != cfg.SampleCount() {
			t.Errorf("tick at %s produced %d samples, want %d",
				simTime, len(result.Received), cfg.SampleCount())
		}
		lastStatus = result.Link.Status
		ticks++
	})

	done := tc.Start(5 * time.Second)
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("accelerated run did not finish")
	}

	if ticks != 5 {
		t.Fatalf("ran %d ticks, want 5", ticks)
	}
	if lastStatus == "" {
		t.Fatalf("ticks never produced a link status")
	}
}

func TestLoadScenarioFallsBackToDefaults(t *testing.T) {
	scenario := loadScenario("")
	if scenario.Name != "default" {
		t.Fatalf("scenario name = %q, want default", scenario.Name)
	}
	if len(scenario.Nodes) != 3 {
		t.Fatalf("scenario has %d nodes, want 3", len(scenario.Nodes))
	}
	if err := scenario.Defaults.Validate(); err != nil {
		t.Fatalf("default scenario config invalid: %v", err)
	}
}
