package sequencing

import (
	"context"
	"fmt"

	"github.com/homecare-ojt/ltcsim/internal/calculation"
	"github.com/homecare-ojt/ltcsim/internal/domain"
)

// Reducer plans and applies quantity cuts that bring a worksheet under its
// monthly limit
type Reducer struct {
	Calc *calculation.Engine
}

// NewReducer creates a reducer
func NewReducer(calc *calculation.Engine) *Reducer {
	return &Reducer{Calc: calc}
}

// Outcome is a reduction plan with the worksheet before and after it
type Outcome struct {
	Plan      ReductionPlan            `json:"plan"`
	Before    *domain.SimulationResult `json:"before"`
	After     *domain.SimulationResult `json:"after"`
	Worksheet domain.Worksheet         `json:"worksheet"`
}

// Reduce prices ws, plans cuts with strategy and re-prices the reduced
// worksheet. A worksheet already under the limit less buffer comes back
// unchanged with an empty plan.
func (r *Reducer) Reduce(ctx context.Context, ws domain.Worksheet, strategy SequencingStrategy, buffer domain.Won) (*Outcome, error) {
	before, err := r.Calc.Simulate(ctx, ws)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate worksheet: %w", err)
	}
	sctx, err := CreateStrategyContext(before, buffer)
	if err != nil {
		return nil, fmt.Errorf("worksheet has no monthly limit: %w", err)
	}

	out := &Outcome{Before: before, Worksheet: ws.Clone()}
	if sctx.Target == 0 {
		out.Plan = ReductionPlan{Steps: []ReductionStep{}, StrategyUsed: strategy.Name()}
		out.Plan.Notes = append(out.Plan.Notes, "already within the monthly limit")
		out.After = before
		return out, nil
	}

	sources, err := CreateReductionSources(r.Calc, before)
	if err != nil {
		return nil, err
	}
	out.Plan = strategy.Plan(sources, sctx)
	out.Worksheet = ApplyPlan(ws, out.Plan)

	out.After, err = r.Calc.Simulate(ctx, out.Worksheet)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate reduced worksheet: %w", err)
	}
	return out, nil
}

// ApplyPlan returns a copy of ws with the plan's quantities. Lines cut to
// zero are removed.
func ApplyPlan(ws domain.Worksheet, plan ReductionPlan) domain.Worksheet {
	out := ws.Clone()
	drop := map[int]bool{}
	for _, step := range plan.Steps {
		if step.LineIndex < 0 || step.LineIndex >= len(out.Lines) {
			continue
		}
		if step.RemovesLine() {
			drop[step.LineIndex] = true
			continue
		}
		out.Lines[step.LineIndex].Quantity = step.ToQuantity
	}
	if len(drop) == 0 {
		return out
	}
	kept := out.Lines[:0]
	for i, l := range out.Lines {
		if !drop[i] {
			kept = append(kept, l)
		}
	}
	out.Lines = kept
	return out
}
