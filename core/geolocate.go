package core

import "math"

// DefenseNode is one fixed triangulation site. The set never changes
// at runtime; every ThreatEstimate covers exactly the configured set.
type DefenseNode struct {
	Name string  `json:"Name" yaml:"name"`
	Lat  float64 `json:"Lat" yaml:"lat"`
	Lon  float64 `json:"Lon" yaml:"lon"`
}

// DefaultDefenseNodes returns the three sites the simulation ships
// with, spanning the Venezuelan theatre the map display models.
func DefaultDefenseNodes() []DefenseNode {
	return []DefenseNode{
		{Name: "Caracas (HQ)", Lat: 10.4806, Lon: -66.9036},
		{Name: "Maracaibo", Lat: 10.6549, Lon: -71.6364},
		{Name: "Puerto Ordaz", Lat: 8.2968, Lon: -62.7116},
	}
}

// NodeRange is the triangulation result for a single defense node.
// DistanceDeg is the exact flat-plane distance in degrees;
// DetectedRadiusDeg carries the simulated measurement error and is
// what the map overlay draws.
type NodeRange struct {
	Node              DefenseNode `json:"Node"`
	DistanceDeg       float64     `json:"DistanceDeg"`
	DetectedRadiusDeg float64     `json:"DetectedRadiusDeg"`
}

// ThreatEstimate places the simulated threat relative to the fixed
// defense nodes. Recomputed every tick from position data alone.
type ThreatEstimate struct {
	Lat    float64     `json:"Lat"`
	Lon    float64     `json:"Lon"`
	Ranges []NodeRange `json:"Ranges"`
}

// DistanceTo returns the exact distance to the named node, with a
// found flag, so callers do not have to know the node ordering.
func (te ThreatEstimate) DistanceTo(nodeName string) (float64, bool) {
	for _, r := range te.Ranges {
		if r.Node.Name == nodeName {
			return r.DistanceDeg, true
		}
	}
	return 0, false
}

// Triangulate computes the flat-plane distance in degrees from each
// defense node to the threat position. Longitude differences are
// scaled by the cosine of the mean latitude; that is the whole
// refinement, because the regional extent modelled here is far too
// small to justify great-circle math. rangeError, when non-nil, is
// sampled once per node to perturb the detected radius the way a real
// receiver's range measurement would wander; the exact distance stays
// untouched. A nil rangeError yields detected radii equal to the true
// distances.
func Triangulate(threatLat, threatLon float64, nodes []DefenseNode, rangeError func() float64) ThreatEstimate {
	est := ThreatEstimate{
		Lat:    threatLat,
		Lon:    threatLon,
		Ranges: make([]NodeRange, 0, len(nodes)),
	}
	for _, node := range nodes {
		dLat := node.Lat - threatLat
		meanLat := (node.Lat + threatLat) / 2 * math.Pi / 180
		dLon := (node.Lon - threatLon) * math.Cos(meanLat)
		dist := math.Hypot(dLat, dLon)

		detected := dist
		if rangeError != nil {
			detected = dist * rangeError()
		}
		est.Ranges = append(est.Ranges, NodeRange{
			Node:              node,
			DistanceDeg:       dist,
			DetectedRadiusDeg: detected,
		})
	}
	return est
}
