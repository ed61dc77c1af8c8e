package calculation

import (
	"github.com/homecare-ojt/ltcsim/internal/domain"
	"github.com/shopspring/decimal"
)

// Aggregate totals line results and checks them against the monthly limit of
// a care grade. An unrecognized grade yields an aggregate with no limit and
// an issue describing it.
func (e *Engine) Aggregate(lines []domain.LineResult, careGradeID string) (domain.Aggregate, []domain.Issue) {
	agg := domain.Aggregate{CareGradeID: careGradeID}
	for _, l := range lines {
		agg.TotalCost += l.TotalCost
		agg.TotalUserBurden += l.UserBurden
		agg.TotalInsuranceCoverage += l.InsuranceCoverage
	}

	grade, ok := e.Tariff.Grade(careGradeID)
	if !ok {
		e.Logger.Warnf("care grade %q has no monthly limit configured", careGradeID)
		return agg, []domain.Issue{{
			Kind:      domain.IssueUnrecognizedGrade,
			LineIndex: -1,
			Message:   (&domain.UnrecognizedGradeError{GradeID: careGradeID}).Error(),
		}}
	}

	agg.LimitConfigured = true
	agg.MonthlyLimit = grade.MonthlyLimit
	agg.IsOverMonthlyLimit = agg.TotalCost > grade.MonthlyLimit
	if agg.IsOverMonthlyLimit {
		agg.OverLimitPercent = OverLimitPercent(agg.TotalCost, grade.MonthlyLimit)
	} else {
		agg.RemainingLimit = grade.MonthlyLimit - agg.TotalCost
	}

	return agg, nil
}

// OverLimitPercent returns (total − limit) / limit × 100 to two places.
// It is zero when the limit is not positive or not exceeded.
func OverLimitPercent(total, limit domain.Won) decimal.Decimal {
	if limit <= 0 || total <= limit {
		return decimal.Zero
	}
	over := decimal.NewFromInt(int64(total - limit))
	return over.Div(decimal.NewFromInt(int64(limit))).Mul(hundred).Round(2)
}
