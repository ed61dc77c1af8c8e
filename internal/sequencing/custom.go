package sequencing

import (
	"github.com/homecare-ojt/ltcsim/internal/domain"
)

// CustomStrategy cuts categories in a user-specified order. Within a
// category the largest saving goes first. Categories missing from the order
// are never cut. If the order is invalid it falls back to largest saving.
type CustomStrategy struct {
	Order []domain.Category
}

func NewCustomStrategy(order []domain.Category) *CustomStrategy { return &CustomStrategy{Order: order} }

func (s *CustomStrategy) Name() string { return StrategyCustom }

func (s *CustomStrategy) Plan(sources []ReductionSource, ctx StrategyContext) ReductionPlan {
	seen := map[domain.Category]bool{}
	valid := len(s.Order) > 0
	for _, c := range s.Order {
		if !c.Valid() || seen[c] {
			valid = false
			break
		}
		seen[c] = true
	}
	if !valid {
		plan := NewLargestSavingStrategy().Plan(sources, ctx)
		plan.StrategyUsed = "custom->largest_saving_fallback"
		plan.Notes = append(plan.Notes, "invalid or empty category order - falling back to largest saving")
		return plan
	}

	state := newCutState(sources, ctx)
	for _, category := range s.Order {
		if state.done() {
			break
		}
		state.greedy(func(i int) bool { return sources[i].Category == category })
	}
	return state.plan(s.Name())
}
