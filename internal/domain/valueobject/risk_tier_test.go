package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudvigil/zombiescan/internal/domain/valueobject"
)

func TestTierBands_Classify(t *testing.T) {
	bands := valueobject.DefaultTierBands()

	tests := []struct {
		name        string
		probability float64
		expected    valueobject.RiskTier
	}{
		{"certain zombie", 1.0, valueobject.TierHigh},
		{"just above high", 0.71, valueobject.TierHigh},
		{"exact high boundary", 0.70, valueobject.TierHigh},
		{"just below high", 0.699999, valueobject.TierMedium},
		{"exact medium boundary", 0.40, valueobject.TierMedium},
		{"just below medium", 0.399999, valueobject.TierLow},
		{"exact low boundary", 0.20, valueobject.TierLow},
		{"just below low", 0.199999, valueobject.TierVeryLow},
		{"zero", 0.0, valueobject.TierVeryLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, bands.Classify(tt.probability))
		})
	}
}

func TestRiskTierFromString(t *testing.T) {
	for _, s := range []string{"HIGH", "MEDIUM", "LOW", "VERY_LOW"} {
		tier, err := valueobject.RiskTierFromString(s)
		require.NoError(t, err)
		assert.Equal(t, s, tier.String())
		assert.False(t, tier.IsZero())
	}

	_, err := valueobject.RiskTierFromString("CRITICAL")
	assert.Error(t, err)

	_, err = valueobject.RiskTierFromString("high")
	assert.Error(t, err)
}

func TestRiskTier_Label(t *testing.T) {
	assert.Equal(t, "HIGH RISK", valueobject.TierHigh.Label())
	assert.Equal(t, "MEDIUM RISK", valueobject.TierMedium.Label())
	assert.Equal(t, "LOW RISK", valueobject.TierLow.Label())
	assert.Equal(t, "VERY LOW RISK", valueobject.TierVeryLow.Label())
}

func TestRiskTier_Color(t *testing.T) {
	assert.Equal(t, "#ff6b6b", valueobject.TierHigh.Color())
	assert.Equal(t, "#ffa500", valueobject.TierMedium.Color())
	assert.Equal(t, "#ffd93d", valueobject.TierLow.Color())
	assert.Equal(t, "#42d392", valueobject.TierVeryLow.Color())
}
