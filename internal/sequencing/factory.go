package sequencing

import (
	"fmt"
	"strings"

	"github.com/homecare-ojt/ltcsim/internal/calculation"
	"github.com/homecare-ojt/ltcsim/internal/domain"
)

// Strategy names
const (
	StrategyLargestSaving = "largest_saving"
	StrategyOverageFirst  = "overage_first"
	StrategySpread        = "spread"
	StrategyCustom        = "custom"
)

// StrategyNames lists the accepted strategy names
func StrategyNames() []string {
	return []string{StrategyLargestSaving, StrategyOverageFirst, StrategySpread, StrategyCustom}
}

// CreateStrategy creates a strategy by name. An empty name is largest saving;
// order is only read by the custom strategy.
func CreateStrategy(name string, order []domain.Category) (SequencingStrategy, error) {
	switch name {
	case "", StrategyLargestSaving:
		return NewLargestSavingStrategy(), nil
	case StrategyOverageFirst:
		return NewOverageFirstStrategy(), nil
	case StrategySpread:
		return NewSpreadStrategy(), nil
	case StrategyCustom:
		return NewCustomStrategy(order), nil
	}
	return nil, fmt.Errorf("unknown strategy %q (available: %s)", name, strings.Join(StrategyNames(), ", "))
}

// ParseCategoryOrder parses a comma-separated category list
func ParseCategoryOrder(s string) []domain.Category {
	var order []domain.Category
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			order = append(order, domain.Category(trimmed))
		}
	}
	return order
}

// CreateStrategyContext sets the target to whatever brings the total down to
// the monthly limit less buffer. It errors when no limit is configured.
func CreateStrategyContext(result *domain.SimulationResult, buffer domain.Won) (StrategyContext, error) {
	agg := result.Aggregate
	if !agg.LimitConfigured {
		return StrategyContext{}, &domain.UnrecognizedGradeError{GradeID: agg.CareGradeID}
	}
	if buffer < 0 {
		buffer = 0
	}
	ctx := StrategyContext{Buffer: buffer}
	if excess := agg.TotalCost - (agg.MonthlyLimit - buffer); excess > 0 {
		ctx.Target = excess
	}
	return ctx, nil
}

// CreateReductionSources prices every resolved line at each quantity from
// 1 up to its current quantity. Unresolved lines are not sources.
func CreateReductionSources(engine *calculation.Engine, result *domain.SimulationResult) ([]ReductionSource, error) {
	sources := []ReductionSource{}
	for _, o := range result.Lines {
		if !o.Resolved() {
			continue
		}
		line := o.Result
		src := ReductionSource{
			LineIndex:   o.Index,
			ServiceID:   line.ServiceID,
			ServiceName: line.ServiceName,
			Category:    line.Category,
			Quantity:    line.Quantity,
			Costs:       make([]domain.Won, line.Quantity+1),
		}
		for q := 1; q <= line.Quantity; q++ {
			cost, err := engine.ComputeLineCost(line.ServiceID, q, line.DayType)
			if err != nil {
				return nil, fmt.Errorf("failed to price line %d at quantity %d: %w", o.Index, q, err)
			}
			src.Costs[q] = cost.TotalCost
		}
		if service, ok := engine.Tariff.Service(line.ServiceID); ok {
			if rule, tiered := engine.Tariff.RuleFor(service); tiered && line.Quantity > rule.BaseAllowance {
				src.OverageUnits = line.Quantity - rule.BaseAllowance
			}
		}
		sources = append(sources, src)
	}
	return sources, nil
}
