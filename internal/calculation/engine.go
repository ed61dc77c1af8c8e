package calculation

import (
	"context"
	"fmt"

	"github.com/homecare-ojt/ltcsim/internal/domain"
	"github.com/shopspring/decimal"
)

// Engine prices worksheets against a tariff. It holds no mutable state
// besides its logger, so one Engine may serve any number of callers.
type Engine struct {
	Tariff *domain.Tariff
	Logger Logger
}

// NewEngine creates an engine over the given tariff
func NewEngine(tariff *domain.Tariff) *Engine {
	return &Engine{
		Tariff: tariff,
		Logger: NopLogger{},
	}
}

// SetLogger replaces the engine logger. nil installs a no-op logger.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// ComputeLineCost prices quantity units of a service on a given day type,
// before the burden split
func (e *Engine) ComputeLineCost(serviceID string, quantity int, dayType domain.DayType) (domain.LineCost, error) {
	cost, _, err := e.lineCost(serviceID, quantity, dayType)
	return cost, err
}

// lineCost also reports whether the day type was priced by the tariff
func (e *Engine) lineCost(serviceID string, quantity int, dayType domain.DayType) (domain.LineCost, bool, error) {
	service, ok := e.Tariff.Service(serviceID)
	if !ok {
		return domain.LineCost{}, false, &domain.UnknownServiceError{ServiceID: serviceID}
	}

	if quantity < 1 {
		e.Logger.Warnf("service %s: quantity %d clamped to 1", serviceID, quantity)
		quantity = 1
	}

	multiplier, dayKnown := e.dayMultiplier(dayType)

	cost := domain.LineCost{DayMultiplierApplied: multiplier}

	rule, tiered := e.Tariff.RuleFor(service)
	if tiered {
		allowed := min(quantity, rule.BaseAllowance)
		cost.BaseCost = priceUnits(allowed, service.UnitPrice, multiplier)

		if quantity > rule.BaseAllowance {
			cost.IsOverLimit = true
			if rule.HasOverage() {
				overage, ok := e.Tariff.Service(rule.OverageServiceID)
				if ok {
					cost.OverageCost = priceUnits(quantity-rule.BaseAllowance, overage.UnitPrice, multiplier)
				} else {
					e.Logger.Errorf("tier rule for %s references missing overage service %s", serviceID, rule.OverageServiceID)
				}
			}
		}
	} else {
		cost.BaseCost = priceUnits(quantity, service.UnitPrice, multiplier)
	}

	cost.TotalCost = cost.BaseCost + cost.OverageCost

	e.Logger.Debugf("line %s x%d (%s x%s): base=%d overage=%d total=%d over_limit=%t",
		serviceID, quantity, dayType, multiplier.String(),
		cost.BaseCost, cost.OverageCost, cost.TotalCost, cost.IsOverLimit)

	return cost, dayKnown, nil
}

// dayMultiplier resolves the surcharge for a day type, defaulting to 1.0
func (e *Engine) dayMultiplier(dayType domain.DayType) (decimal.Decimal, bool) {
	rule, ok := e.Tariff.DayRule(dayType)
	if !ok {
		e.Logger.Warnf("day type %q not in tariff, using multiplier 1.0", dayType)
		return one, false
	}
	return rule.Multiplier, true
}

// ApplyBurden splits a cost into the beneficiary's share and the insurer's
// share. The insurer's share is derived by subtraction so the two always add
// back up to totalCost.
func ApplyBurden(totalCost domain.Won, burdenRate decimal.Decimal) domain.BurdenSplit {
	if totalCost < 0 {
		totalCost = 0
	}
	rate := clampRate(burdenRate)
	user := roundWon(decimal.NewFromInt(int64(totalCost)).Mul(rate))
	return domain.BurdenSplit{
		UserBurden:        user,
		InsuranceCoverage: totalCost - user,
	}
}

// ComputeLine prices one worksheet line end to end
func (e *Engine) ComputeLine(item domain.LineItem) (*domain.LineResult, []domain.Issue, error) {
	return e.computeLine(-1, item)
}

func (e *Engine) computeLine(index int, item domain.LineItem) (*domain.LineResult, []domain.Issue, error) {
	var issues []domain.Issue

	service, ok := e.Tariff.Service(item.ServiceID)
	if !ok {
		return nil, nil, &domain.UnknownServiceError{ServiceID: item.ServiceID}
	}
	tier, ok := e.Tariff.BurdenTier(item.BurdenTierID)
	if !ok {
		return nil, nil, &domain.UnknownBurdenTierError{BurdenTierID: item.BurdenTierID}
	}

	quantity := item.Quantity
	if quantity < 1 {
		issues = append(issues, domain.Issue{
			Kind:      domain.IssueInvalidQuantity,
			LineIndex: index,
			Message:   (&domain.InvalidQuantityError{ServiceID: item.ServiceID, Quantity: quantity}).Error() + "; clamped to 1",
		})
		quantity = 1
	}

	cost, dayKnown, err := e.lineCost(item.ServiceID, quantity, item.DayType)
	if err != nil {
		return nil, nil, err
	}
	if !dayKnown {
		issues = append(issues, domain.Issue{
			Kind:      domain.IssueUnrecognizedDay,
			LineIndex: index,
			Message:   (&domain.UnrecognizedDayTypeError{DayType: item.DayType}).Error(),
		})
	}

	rate := clampRate(tier.Rate)
	split := ApplyBurden(cost.TotalCost, rate)

	return &domain.LineResult{
		ServiceID:            service.ID,
		ServiceName:          service.Name,
		Category:             service.Category,
		Quantity:             quantity,
		UnitPrice:            service.UnitPrice,
		DayType:              item.DayType,
		BurdenTierID:         tier.ID,
		BaseCost:             cost.BaseCost,
		OverageCost:          cost.OverageCost,
		TotalCost:            cost.TotalCost,
		DayMultiplierApplied: cost.DayMultiplierApplied,
		BurdenRateApplied:    rate,
		UserBurden:           split.UserBurden,
		InsuranceCoverage:    split.InsuranceCoverage,
		IsOverLimit:          cost.IsOverLimit,
	}, issues, nil
}

// Simulate prices every line of a worksheet and aggregates the lines that
// resolved. A failing line is reported in its outcome and in Issues and does
// not stop the remaining lines.
func (e *Engine) Simulate(ctx context.Context, ws domain.Worksheet) (*domain.SimulationResult, error) {
	if e.Tariff == nil {
		return nil, fmt.Errorf("engine has no tariff loaded")
	}

	ws = ws.Normalize()
	result := &domain.SimulationResult{
		Lines: make([]domain.LineOutcome, 0, len(ws.Lines)),
	}

	resolved := make([]domain.LineResult, 0, len(ws.Lines))
	for i, item := range ws.Lines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		outcome := domain.LineOutcome{Index: i, Item: item}
		line, issues, err := e.computeLine(i, item)
		result.Issues = append(result.Issues, issues...)
		if err != nil {
			e.Logger.Warnf("line %d unresolved: %v", i, err)
			outcome.Err = err
			outcome.Error = err.Error()
			result.Issues = append(result.Issues, domain.Issue{
				Kind:      issueKindFor(err),
				LineIndex: i,
				Message:   err.Error(),
			})
		} else {
			outcome.Result = line
			resolved = append(resolved, *line)
		}
		result.Lines = append(result.Lines, outcome)
	}

	agg, issues := e.Aggregate(resolved, ws.CareGradeID)
	result.Aggregate = agg
	result.Issues = append(result.Issues, issues...)

	e.Logger.Infof("simulated %d lines (%d unresolved): total=%d user=%d insurance=%d",
		len(ws.Lines), len(ws.Lines)-len(resolved), agg.TotalCost, agg.TotalUserBurden, agg.TotalInsuranceCoverage)

	return result, nil
}

func issueKindFor(err error) domain.IssueKind {
	switch err.(type) {
	case *domain.UnknownServiceError:
		return domain.IssueUnknownService
	case *domain.UnknownBurdenTierError:
		return domain.IssueUnknownBurdenTier
	case *domain.InvalidQuantityError:
		return domain.IssueInvalidQuantity
	}
	return domain.IssueUnknownService
}
