package calculation

import (
	"github.com/homecare-ojt/ltcsim/internal/domain"
)

const (
	// CostSavingThreshold is the per-line user burden above which a
	// cost-saving advisory is raised
	CostSavingThreshold domain.Won = 50000
	// MaxBudgetSuggestions caps the services proposed for unused budget
	MaxBudgetSuggestions = 3
)

// Recommend derives advisories from a finished simulation. It never changes
// any amount; it only reads the result and the catalog.
func (e *Engine) Recommend(ws domain.Worksheet, result *domain.SimulationResult) []domain.Recommendation {
	if result == nil {
		return nil
	}
	lines := result.Results()
	if len(lines) == 0 {
		return nil
	}

	ws = ws.Normalize()
	agg := result.Aggregate
	var recs []domain.Recommendation

	if agg.LimitConfigured && agg.RemainingLimit > 0 {
		if rec, ok := e.budgetSuggestion(ws, agg.RemainingLimit); ok {
			recs = append(recs, rec)
		}
	}

	var expensive []string
	for _, l := range lines {
		if l.UserBurden > CostSavingThreshold {
			expensive = append(expensive, l.ServiceID)
		}
	}
	if len(expensive) > 0 {
		recs = append(recs, domain.Recommendation{
			Kind:       domain.RecommendCostSaving,
			Title:      "Review high-burden services",
			ServiceIDs: expensive,
			Amount:     CostSavingThreshold,
		})
	}

	if agg.LimitConfigured && agg.IsOverMonthlyLimit {
		recs = append(recs, domain.Recommendation{
			Kind:    domain.RecommendLimit,
			Title:   "Monthly limit exceeded",
			Amount:  agg.TotalCost,
			Limit:   agg.MonthlyLimit,
			Percent: agg.OverLimitPercent,
		})
	}

	return recs
}

// budgetSuggestion lists catalog services that are not on the worksheet and
// whose single unit on the default day type fits the remaining budget
func (e *Engine) budgetSuggestion(ws domain.Worksheet, remaining domain.Won) (domain.Recommendation, bool) {
	multiplier, _ := e.dayMultiplier(ws.DefaultDayType)

	var ids []string
	for _, svc := range e.Tariff.Services {
		if ws.HasService(svc.ID) {
			continue
		}
		if priceUnits(1, svc.UnitPrice, multiplier) > remaining {
			continue
		}
		ids = append(ids, svc.ID)
		if len(ids) == MaxBudgetSuggestions {
			break
		}
	}
	if len(ids) == 0 {
		return domain.Recommendation{}, false
	}

	return domain.Recommendation{
		Kind:       domain.RecommendBudget,
		Title:      "Unused monthly budget",
		ServiceIDs: ids,
		Amount:     remaining,
	}, true
}
