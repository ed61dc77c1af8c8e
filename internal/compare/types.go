package compare

import (
	"fmt"

	"github.com/homecare-ojt/ltcsim/internal/domain"
	"github.com/shopspring/decimal"
)

// VariantResult is one priced worksheet variant with its deltas from the base
type VariantResult struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Worksheet   domain.Worksheet         `json:"worksheet"`
	Result      *domain.SimulationResult `json:"-"`

	TotalCost          domain.Won `json:"totalCost"`
	UserBurden         domain.Won `json:"userBurden"`
	InsuranceCoverage  domain.Won `json:"insuranceCoverage"`
	LimitConfigured    bool       `json:"limitConfigured"`
	MonthlyLimit       domain.Won `json:"monthlyLimit"`
	IsOverMonthlyLimit bool       `json:"isOverMonthlyLimit"`
	UnresolvedLines    int        `json:"unresolvedLines"`

	CostDiffFromBase   domain.Won      `json:"costDiffFromBase"`
	BurdenDiffFromBase domain.Won      `json:"burdenDiffFromBase"`
	BurdenPctFromBase  decimal.Decimal `json:"burdenPctFromBase"`
}

// ComparisonSet is a base worksheet compared against its variants
type ComparisonSet struct {
	BaseName           string          `json:"baseName"`
	BaseResult         *VariantResult  `json:"baseResult"`
	AlternativeResults []VariantResult `json:"alternativeResults"`
	Recommendations    []string        `json:"recommendations"`
	WorksheetPath      string          `json:"worksheetPath,omitempty"`
}

// Metrics extracts the comparison figures from a simulation result
func Metrics(name, description string, ws domain.Worksheet, result *domain.SimulationResult) VariantResult {
	agg := result.Aggregate
	return VariantResult{
		Name:               name,
		Description:        description,
		Worksheet:          ws,
		Result:             result,
		TotalCost:          agg.TotalCost,
		UserBurden:         agg.TotalUserBurden,
		InsuranceCoverage:  agg.TotalInsuranceCoverage,
		LimitConfigured:    agg.LimitConfigured,
		MonthlyLimit:       agg.MonthlyLimit,
		IsOverMonthlyLimit: agg.IsOverMonthlyLimit,
		UnresolvedLines:    len(result.Unresolved()),
	}
}

// WithDeltas fills the differences of variant from base
func WithDeltas(variant, base VariantResult) VariantResult {
	variant.CostDiffFromBase = variant.TotalCost - base.TotalCost
	variant.BurdenDiffFromBase = variant.UserBurden - base.UserBurden
	variant.BurdenPctFromBase = decimal.Zero
	if base.UserBurden != 0 {
		variant.BurdenPctFromBase = decimal.NewFromInt(int64(variant.BurdenDiffFromBase)).
			Div(decimal.NewFromInt(int64(base.UserBurden))).
			Mul(decimal.NewFromInt(100)).
			Round(1)
	}
	return variant
}

// GenerateRecommendations summarizes which variants lower the beneficiary's
// burden or the total cost, and which ones break the monthly limit
func GenerateRecommendations(set *ComparisonSet) []string {
	recommendations := []string{}
	if set.BaseResult == nil || len(set.AlternativeResults) == 0 {
		return recommendations
	}
	base := set.BaseResult

	lowestBurden := base
	for i := range set.AlternativeResults {
		alt := &set.AlternativeResults[i]
		if alt.UserBurden < lowestBurden.UserBurden {
			lowestBurden = alt
		}
	}
	if lowestBurden != base {
		recommendations = append(recommendations, fmt.Sprintf(
			"Lowest Burden: %s saves %s per month out of pocket",
			lowestBurden.Name, base.UserBurden-lowestBurden.UserBurden))
	}

	lowestCost := base
	for i := range set.AlternativeResults {
		alt := &set.AlternativeResults[i]
		if alt.TotalCost < lowestCost.TotalCost {
			lowestCost = alt
		}
	}
	if lowestCost != base {
		recommendations = append(recommendations, fmt.Sprintf(
			"Lowest Cost: %s reduces the total by %s",
			lowestCost.Name, base.TotalCost-lowestCost.TotalCost))
	}

	for _, alt := range set.AlternativeResults {
		if alt.IsOverMonthlyLimit && !base.IsOverMonthlyLimit {
			recommendations = append(recommendations, fmt.Sprintf(
				"Limit Warning: %s exceeds the %s monthly limit", alt.Name, alt.MonthlyLimit))
		}
	}
	return recommendations
}
