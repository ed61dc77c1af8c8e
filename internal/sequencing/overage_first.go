package sequencing

// OverageFirstStrategy gives up units billed past a tier allowance before
// touching any base-priced unit. Base units are then cut largest saving first.
type OverageFirstStrategy struct{}

func NewOverageFirstStrategy() *OverageFirstStrategy { return &OverageFirstStrategy{} }

func (s *OverageFirstStrategy) Name() string { return StrategyOverageFirst }

func (s *OverageFirstStrategy) Plan(sources []ReductionSource, ctx StrategyContext) ReductionPlan {
	state := newCutState(sources, ctx)
	state.greedy(state.overageLeft)
	overageOnly := state.done()
	state.greedy(nil)

	plan := state.plan(s.Name())
	if !overageOnly && len(plan.Steps) > 0 {
		plan.Notes = append(plan.Notes, "overage units alone were not enough; base units were also cut")
	}
	return plan
}
