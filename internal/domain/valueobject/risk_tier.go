package valueobject

import "fmt"

// RiskTier is an immutable value object bucketing a zombie-risk
// probability for display and triage.
type RiskTier struct {
	value string
}

var (
	TierHigh    = RiskTier{value: "HIGH"}
	TierMedium  = RiskTier{value: "MEDIUM"}
	TierLow     = RiskTier{value: "LOW"}
	TierVeryLow = RiskTier{value: "VERY_LOW"}
)

// RiskTierFromString reconstructs a RiskTier from its string form.
func RiskTierFromString(s string) (RiskTier, error) {
	switch s {
	case "HIGH":
		return TierHigh, nil
	case "MEDIUM":
		return TierMedium, nil
	case "LOW":
		return TierLow, nil
	case "VERY_LOW":
		return TierVeryLow, nil
	default:
		return RiskTier{}, fmt.Errorf("invalid risk tier: %s", s)
	}
}

// TierBands holds the inclusive lower probability bound of each tier
// above VERY_LOW. Bands are a pure, total classification: every
// probability in [0,1] maps to exactly one tier.
type TierBands struct {
	High   float64
	Medium float64
	Low    float64
}

// DefaultTierBands returns the standard bands: HIGH at 0.70, MEDIUM at
// 0.40, LOW at 0.20.
func DefaultTierBands() TierBands {
	return TierBands{High: 0.70, Medium: 0.40, Low: 0.20}
}

// Classify maps a probability to its tier. Boundaries belong to the
// higher tier: exactly 0.70 is HIGH, exactly 0.40 is MEDIUM.
func (b TierBands) Classify(probability float64) RiskTier {
	switch {
	case probability >= b.High:
		return TierHigh
	case probability >= b.Medium:
		return TierMedium
	case probability >= b.Low:
		return TierLow
	default:
		return TierVeryLow
	}
}

// String returns the string representation.
func (t RiskTier) String() string {
	return t.value
}

// Label returns the human-readable form used in explanation summaries.
func (t RiskTier) Label() string {
	switch t.value {
	case "HIGH":
		return "HIGH RISK"
	case "MEDIUM":
		return "MEDIUM RISK"
	case "LOW":
		return "LOW RISK"
	case "VERY_LOW":
		return "VERY LOW RISK"
	default:
		return "UNKNOWN"
	}
}

// Color returns the hex color associated with the tier in dashboards.
func (t RiskTier) Color() string {
	switch t.value {
	case "HIGH":
		return "#ff6b6b"
	case "MEDIUM":
		return "#ffa500"
	case "LOW":
		return "#ffd93d"
	default:
		return "#42d392"
	}
}

// IsZero returns true if the RiskTier has not been set.
func (t RiskTier) IsZero() bool {
	return t.value == ""
}

// Equal checks equality with another RiskTier.
func (t RiskTier) Equal(other RiskTier) bool {
	return t.value == other.value
}
