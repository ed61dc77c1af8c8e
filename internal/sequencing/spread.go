package sequencing

// SpreadStrategy takes one unit from each line in turn, in worksheet order,
// so no single service absorbs the whole reduction
type SpreadStrategy struct{}

func NewSpreadStrategy() *SpreadStrategy { return &SpreadStrategy{} }

func (s *SpreadStrategy) Name() string { return StrategySpread }

func (s *SpreadStrategy) Plan(sources []ReductionSource, ctx StrategyContext) ReductionPlan {
	state := newCutState(sources, ctx)
	for !state.done() {
		progressed := false
		for i := range sources {
			if state.done() {
				break
			}
			if saving, ok := state.next(i); !ok || saving <= 0 {
				continue
			}
			state.cut(i)
			progressed = true
		}
		if !progressed {
			break
		}
	}
	return state.plan(s.Name())
}
