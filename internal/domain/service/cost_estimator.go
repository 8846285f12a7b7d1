package service

import (
	"github.com/shopspring/decimal"

	"github.com/cloudvigil/zombiescan/internal/domain/valueobject"
)

const hoursPerMonth = 730

// CostEstimator produces rough monthly cost figures for zombie
// candidates so reports can show potential savings. Prices are static
// on-demand list prices, not a billing integration.
type CostEstimator struct {
	hourlyByInstanceType map[string]decimal.Decimal
	defaultHourly        decimal.Decimal
	flatMonthly          map[valueobject.ResourceType]decimal.Decimal
}

// NewCostEstimator creates an estimator with the built-in price table.
func NewCostEstimator() *CostEstimator {
	hourly := map[string]string{
		"t2.micro":  "0.0116",
		"t2.small":  "0.023",
		"t2.medium": "0.0464",
		"t3.micro":  "0.0104",
		"t3.small":  "0.0208",
		"t3.medium": "0.0416",
		"m5.large":  "0.096",
		"m5.xlarge": "0.192",
		"r5.large":  "0.126",
		"c5.large":  "0.085",
	}
	table := make(map[string]decimal.Decimal, len(hourly))
	for instanceType, price := range hourly {
		table[instanceType] = decimal.RequireFromString(price)
	}

	return &CostEstimator{
		hourlyByInstanceType: table,
		defaultHourly:        decimal.RequireFromString("0.05"),
		flatMonthly: map[valueobject.ResourceType]decimal.Decimal{
			// 100 GB gp3 volume.
			valueobject.ResourceEBS: decimal.RequireFromString("8.00"),
			// db.t3.micro single-AZ.
			valueobject.ResourceRDS: decimal.RequireFromString("12.41"),
			// ALB base hourly charge, excluding LCUs.
			valueobject.ResourceELB: decimal.RequireFromString("16.43"),
		},
	}
}

// MonthlyCost estimates the monthly cost of a resource. EC2 uses the
// per-instance-type hourly table with a default for unknown types;
// other resource types use flat monthly estimates.
func (e *CostEstimator) MonthlyCost(resourceType valueobject.ResourceType, instanceType string) decimal.Decimal {
	if flat, ok := e.flatMonthly[resourceType]; ok {
		return flat
	}

	rate, ok := e.hourlyByInstanceType[instanceType]
	if !ok {
		rate = e.defaultHourly
	}
	return rate.Mul(decimal.NewFromInt(hoursPerMonth))
}
