package core

// LinkStatus is the coarse health classification of the simulated
// radio link, derived solely from the SNR estimate.
type LinkStatus string

const (
	StatusOperational LinkStatus = "OPERATIONAL"
	StatusDegraded    LinkStatus = "DEGRADED"
	StatusCritical    LinkStatus = "CRITICAL"
)

// LinkQuality bundles the SNR estimate with its classification.
type LinkQuality struct {
	SNRdB  float64    `json:"SNRdB"`
	Status LinkStatus `json:"Status"`
}

// ClassifySNR maps an SNR in dB onto a link status. Boundaries are
// inclusive-lower: exactly 0 dB is DEGRADED, exactly 10 dB is still
// DEGRADED, and OPERATIONAL starts strictly above 10 dB. The
// classification is total: every finite input lands in a bucket.
func ClassifySNR(snrDB float64) LinkStatus {
	switch {
	case snrDB < 0:
		return StatusCritical
	case snrDB <= 10:
		return StatusDegraded
	default:
		return StatusOperational
	}
}
