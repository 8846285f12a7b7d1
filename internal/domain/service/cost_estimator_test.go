package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/cloudvigil/zombiescan/internal/domain/service"
	"github.com/cloudvigil/zombiescan/internal/domain/valueobject"
)

func TestMonthlyCost_EC2KnownInstanceType(t *testing.T) {
	estimator := service.NewCostEstimator()

	cost := estimator.MonthlyCost(valueobject.ResourceEC2, "t2.micro")

	// 0.0116 * 730
	assert.True(t, cost.Equal(decimal.RequireFromString("8.468")), "got %s", cost)
}

func TestMonthlyCost_EC2UnknownInstanceTypeUsesDefaultRate(t *testing.T) {
	estimator := service.NewCostEstimator()

	cost := estimator.MonthlyCost(valueobject.ResourceEC2, "x2gd.metal")

	// 0.05 * 730
	assert.True(t, cost.Equal(decimal.RequireFromString("36.5")), "got %s", cost)
}

func TestMonthlyCost_FlatRateResourceTypes(t *testing.T) {
	estimator := service.NewCostEstimator()

	tests := []struct {
		resourceType valueobject.ResourceType
		expected     string
	}{
		{valueobject.ResourceEBS, "8.00"},
		{valueobject.ResourceRDS, "12.41"},
		{valueobject.ResourceELB, "16.43"},
	}

	for _, tt := range tests {
		cost := estimator.MonthlyCost(tt.resourceType, "")
		assert.True(t, cost.Equal(decimal.RequireFromString(tt.expected)),
			"%s: got %s", tt.resourceType, cost)
	}
}
