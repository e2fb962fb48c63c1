// Package metrics builds the derived views of a profile: the score gauge, the
// growth-signal histogram, the funding timeline and the dashboard that combines them.
//
// Builders are stateless and never fail; absent input produces an empty result.
package metrics

import "github.com/jonathan/leadgen/internal/scoring"

// Gauge constants are fixed and independent of the profile.
const (
	GaugeMin       = 0
	GaugeMax       = 100
	GaugeReference = 50
	GaugeThreshold = 90
)

// Gauge is a bounded score indicator.
type Gauge struct {
	Value     int               `json:"value"`
	RawScore  int               `json:"raw_score"`
	Min       int               `json:"min"`
	Max       int               `json:"max"`
	Reference int               `json:"reference"`
	Delta     int               `json:"delta"`
	Threshold int               `json:"threshold"`
	Bands     []scoring.Band    `json:"bands"`
	Risk      scoring.RiskLevel `json:"risk"`
}

// BuildGauge wraps an extracted score. The score is clipped to [0,100] for
// display; the risk label is computed from the unclipped score.
func BuildGauge(score int) Gauge {
	value := min(max(score, GaugeMin), GaugeMax)
	return Gauge{
		Value:     value,
		RawScore:  score,
		Min:       GaugeMin,
		Max:       GaugeMax,
		Reference: GaugeReference,
		Delta:     value - GaugeReference,
		Threshold: GaugeThreshold,
		Bands:     scoring.RiskBands(),
		Risk:      scoring.ClassifyRisk(score),
	}
}

// AboveThreshold reports whether the gauge crosses the alert line.
func (g Gauge) AboveThreshold() bool {
	return g.Value >= g.Threshold
}
