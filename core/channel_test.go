package core

import (
	"errors"
	"math"
	"testing"
)

func TestCombine_ElementwiseSum(t *testing.T) {
	clean := SignalTrace{1, 2, 3}
	interference := SignalTrace{0.5, -2, 1}

	received, err := Combine(clean, interference)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	want := []float64{1.5, 0, 4}
	for i := range want {
		if received[i] != want[i] {
			t.Errorf("received[%d] = %v, want %v", i, received[i], want[i])
		}
	}
}

func TestCombine_ShapeMismatch(t *testing.T) {
	_, err := Combine(SignalTrace{1, 2, 3}, SignalTrace{1, 2})
	if !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("got %v, want ErrShapeMismatch", err)
	}
}

func TestComputeSNRdB_ZeroInterferenceReportsCeiling(t *testing.T) {
	clean := SignalTrace{1, -1, 1, -1}
	zero := make(SignalTrace, 4)

	snr, err := ComputeSNRdB(clean, zero)
	if err != nil {
		t.Fatalf("ComputeSNRdB: %v", err)
	}
	if snr != MaxSNRdB {
		t.Errorf("snr = %v, want sentinel ceiling %v", snr, MaxSNRdB)
	}
	if math.IsNaN(snr) || math.IsInf(snr, 0) {
		t.Errorf("snr = %v, must be finite", snr)
	}
}

func TestComputeSNRdB_KnownRatio(t *testing.T) {
	// Clean power 4, interference power 1: SNR = 10·log10(4) ≈ 6.0206 dB.
	clean := SignalTrace{2, -2, 2, -2}
	interference := SignalTrace{1, -1, 1, -1}

	snr, err := ComputeSNRdB(clean, interference)
	if err != nil {
		t.Fatalf("ComputeSNRdB: %v", err)
	}
	want := 10 * math.Log10(4)
	if math.Abs(snr-want) > 1e-9 {
		t.Errorf("snr = %v, want %v", snr, want)
	}
}

func TestComputeSNRdB_SilentCarrierUnderJammingIsFinite(t *testing.T) {
	clean := make(SignalTrace, 4)
	interference := SignalTrace{1, -1, 1, -1}

	snr, err := ComputeSNRdB(clean, interference)
	if err != nil {
		t.Fatalf("ComputeSNRdB: %v", err)
	}
	if snr != -MaxSNRdB {
		t.Errorf("snr = %v, want floor %v", snr, -MaxSNRdB)
	}
}

func TestComputeSNRdB_ShapeMismatch(t *testing.T) {
	_, err := ComputeSNRdB(SignalTrace{1}, SignalTrace{1, 2})
	if !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("got %v, want ErrShapeMismatch", err)
	}
}
