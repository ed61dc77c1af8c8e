package sequencing

import (
	"github.com/homecare-ojt/ltcsim/internal/domain"
)

// ReductionSource is a priced worksheet line that can give up units.
// Costs[q] is the line's total cost at quantity q, so Costs[0] is 0 and
// Costs[Quantity] is the current cost.
type ReductionSource struct {
	LineIndex    int
	ServiceID    string
	ServiceName  string
	Category     domain.Category
	Quantity     int
	OverageUnits int // units billed at the overage price
	Costs        []domain.Won
}

// ReductionStep lowers one line's quantity
type ReductionStep struct {
	LineIndex           int        `json:"lineIndex"`
	ServiceID           string     `json:"serviceId"`
	ServiceName         string     `json:"serviceName"`
	FromQuantity        int        `json:"fromQuantity"`
	ToQuantity          int        `json:"toQuantity"`
	UnitsRemoved        int        `json:"unitsRemoved"`
	OverageUnitsRemoved int        `json:"overageUnitsRemoved"`
	Savings             domain.Won `json:"savings"`
}

// RemovesLine reports whether the step drops the line entirely
func (s ReductionStep) RemovesLine() bool {
	return s.ToQuantity == 0
}

// ReductionPlan lists the cuts a strategy chose to cover the requested amount.
// Requested: cost to remove (excess over the limit plus any buffer)
// RemainingExcess: what the cuts could not cover
type ReductionPlan struct {
	Requested       domain.Won      `json:"requested"`
	Steps           []ReductionStep `json:"steps"`
	TotalSavings    domain.Won      `json:"totalSavings"`
	RemainingExcess domain.Won      `json:"remainingExcess"`
	Notes           []string        `json:"notes,omitempty"`
	StrategyUsed    string          `json:"strategyUsed"`
}

// StrategyContext provides inputs required by reduction strategies
// Target: cost the plan should remove
// Buffer: amount kept free below the limit, already included in Target
type StrategyContext struct {
	Target domain.Won
	Buffer domain.Won
}

// SequencingStrategy decides which units to cut first
type SequencingStrategy interface {
	Name() string
	Plan(sources []ReductionSource, ctx StrategyContext) ReductionPlan
}

// cutState tracks units removed per source while a strategy runs
type cutState struct {
	sources []ReductionSource
	removed []int
	saved   domain.Won
	target  domain.Won
}

func newCutState(sources []ReductionSource, ctx StrategyContext) *cutState {
	return &cutState{
		sources: sources,
		removed: make([]int, len(sources)),
		target:  ctx.Target,
	}
}

func (c *cutState) done() bool {
	return c.saved >= c.target
}

// next returns the saving of removing one more unit from source i
func (c *cutState) next(i int) (domain.Won, bool) {
	src := c.sources[i]
	q := src.Quantity - c.removed[i]
	if q <= 0 || len(src.Costs) <= q {
		return 0, false
	}
	return src.Costs[q] - src.Costs[q-1], true
}

// overageLeft reports whether source i still has overage units to give up
func (c *cutState) overageLeft(i int) bool {
	return c.removed[i] < c.sources[i].OverageUnits
}

func (c *cutState) cut(i int) {
	saving, ok := c.next(i)
	if !ok {
		return
	}
	c.removed[i]++
	c.saved += saving
}

// best returns the source with the largest next saving among those allowed,
// or -1 when none can give up a unit
func (c *cutState) best(allowed func(i int) bool) int {
	best := -1
	var bestSaving domain.Won
	for i := range c.sources {
		if allowed != nil && !allowed(i) {
			continue
		}
		saving, ok := c.next(i)
		if !ok || saving <= 0 {
			continue
		}
		if best == -1 || saving > bestSaving {
			best, bestSaving = i, saving
		}
	}
	return best
}

// greedy cuts the best allowed unit until the target is met or nothing is left
func (c *cutState) greedy(allowed func(i int) bool) {
	for !c.done() {
		i := c.best(allowed)
		if i < 0 {
			return
		}
		c.cut(i)
	}
}

func (c *cutState) plan(strategy string) ReductionPlan {
	plan := ReductionPlan{
		Requested:    c.target,
		Steps:        []ReductionStep{},
		TotalSavings: c.saved,
		StrategyUsed: strategy,
	}
	for i, src := range c.sources {
		n := c.removed[i]
		if n == 0 {
			continue
		}
		plan.Steps = append(plan.Steps, ReductionStep{
			LineIndex:           src.LineIndex,
			ServiceID:           src.ServiceID,
			ServiceName:         src.ServiceName,
			FromQuantity:        src.Quantity,
			ToQuantity:          src.Quantity - n,
			UnitsRemoved:        n,
			OverageUnitsRemoved: min(n, src.OverageUnits),
			Savings:             src.Costs[src.Quantity] - src.Costs[src.Quantity-n],
		})
	}
	if !c.done() {
		plan.RemainingExcess = c.target - c.saved
		plan.Notes = append(plan.Notes, "cuts available to this strategy do not cover the excess")
	}
	return plan
}
