package sequencing

// LargestSavingStrategy removes whichever unit saves the most, one unit at a
// time. It reaches the target with the fewest units cut.
type LargestSavingStrategy struct{}

func NewLargestSavingStrategy() *LargestSavingStrategy { return &LargestSavingStrategy{} }

func (s *LargestSavingStrategy) Name() string { return StrategyLargestSaving }

func (s *LargestSavingStrategy) Plan(sources []ReductionSource, ctx StrategyContext) ReductionPlan {
	state := newCutState(sources, ctx)
	state.greedy(nil)
	return state.plan(s.Name())
}
