package core

import "testing"

func TestClassifySNR_Buckets(t *testing.T) {
	cases := []struct {
		snr  float64
		want LinkStatus
	}{
		{25, StatusOperational},
		{10.0001, StatusOperational},
		{10.0, StatusDegraded}, // inclusive-lower: 10 dB is still degraded
		{5, StatusDegraded},
		{0.0, StatusDegraded}, // inclusive-lower: 0 dB is still degraded
		{-0.0001, StatusCritical},
		{-40, StatusCritical},
		{MaxSNRdB, StatusOperational},
		{-MaxSNRdB, StatusCritical},
	}
	for _, tc := range cases {
		if got := ClassifySNR(tc.snr); got != tc.want {
			t.Errorf("ClassifySNR(%v) = %v, want %v", tc.snr, got, tc.want)
		}
	}
}
