package scoring

// RiskLevel is the categorical risk label of an investment score.
type RiskLevel string

// Risk labels, ordered from safest to riskiest.
const (
	RiskLow          RiskLevel = "Low Risk"
	RiskModerate     RiskLevel = "Moderate Risk"
	RiskModerateHigh RiskLevel = "Moderate-High Risk"
	RiskHigh         RiskLevel = "High Risk"
)

// Severity is a coarse styling hint for rendering hosts.
type Severity string

// Severity values
const (
	SeverityLow      Severity = "low"
	SeverityModerate Severity = "moderate"
	SeverityElevated Severity = "elevated"
	SeverityHigh     Severity = "high"
)

// Band is the score range covered by one risk level. Min is inclusive, Max exclusive
// except for the top band, which includes 100.
type Band struct {
	Min   int       `json:"min"`
	Max   int       `json:"max"`
	Level RiskLevel `json:"level"`
}

// riskThresholds is evaluated top-down; the first match wins.
var riskThresholds = []struct {
	min   int
	level RiskLevel
}{
	{80, RiskLow},
	{60, RiskModerate},
	{40, RiskModerateHigh},
}

// ClassifyRisk maps a score to its risk level. Boundary scores belong to the
// safer bucket: 80 is Low Risk and 60 is Moderate Risk.
func ClassifyRisk(score int) RiskLevel {
	for _, t := range riskThresholds {
		if score >= t.min {
			return t.level
		}
	}
	return RiskHigh
}

// Severity returns the styling hint for the level.
func (r RiskLevel) Severity() Severity {
	switch r {
	case RiskLow:
		return SeverityLow
	case RiskModerate:
		return SeverityModerate
	case RiskModerateHigh:
		return SeverityElevated
	default:
		return SeverityHigh
	}
}

// String returns the display label.
func (r RiskLevel) String() string { return string(r) }

// RiskBands returns the gauge bands from the lowest score upward.
func RiskBands() []Band {
	return []Band{
		{Min: 0, Max: 40, Level: RiskHigh},
		{Min: 40, Max: 60, Level: RiskModerateHigh},
		{Min: 60, Max: 80, Level: RiskModerate},
		{Min: 80, Max: 100, Level: RiskLow},
	}
}
