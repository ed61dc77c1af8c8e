package breakeven

import (
	"context"
	"fmt"

	"github.com/homecare-ojt/ltcsim/internal/calculation"
	"github.com/homecare-ojt/ltcsim/internal/domain"
	"github.com/homecare-ojt/ltcsim/internal/transform"
)

// Solver finds how many units of a service fit under a cost ceiling
type Solver struct {
	Calc    *calculation.Engine
	Options SolverOptions
}

// NewSolver creates a new solver
func NewSolver(calc *calculation.Engine, options SolverOptions) *Solver {
	return &Solver{
		Calc:    calc,
		Options: options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calc *calculation.Engine) *Solver {
	return NewSolver(calc, DefaultSolverOptions())
}

// measurement is the worksheet priced with a candidate quantity added
type measurement struct {
	quantity  int
	aggregate domain.Aggregate
	value     domain.Won
}

// Solve binary-searches the quantity range. Cost never decreases as
// quantity grows, so the largest fitting quantity is well defined.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if req.Constraints.MinQuantity == 0 {
		req.Constraints.MinQuantity = 1
	}
	if req.Constraints.MaxQuantity == 0 {
		req.Constraints.MaxQuantity = s.Options.DefaultMaxQuantity
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Target == "" {
		req.Target = TargetMonthlyLimit
	}
	if err := req.Constraints.Validate(req.Target); err != nil {
		return nil, err
	}

	svc, ok := s.Calc.Tariff.Service(req.Constraints.ServiceID)
	if !ok {
		return nil, &BreakEvenError{
			Operation: "solve",
			Message:   "service not in tariff",
			Cause:     &domain.UnknownServiceError{ServiceID: req.Constraints.ServiceID},
		}
	}
	if err := s.checkBurdenTier(req); err != nil {
		return nil, err
	}
	ceiling, err := s.ceiling(req)
	if err != nil {
		return nil, err
	}

	base, err := s.measure(ctx, req, 0)
	if err != nil {
		return nil, err
	}
	result := &Result{
		Request:        req,
		Target:         req.Target,
		ServiceID:      svc.ID,
		ServiceName:    svc.Name,
		Ceiling:        ceiling,
		BaseTotalCost:  base.aggregate.TotalCost,
		BaseUserBurden: base.aggregate.TotalUserBurden,
	}

	lo, err := s.measure(ctx, req, req.Constraints.MinQuantity)
	if err != nil {
		return nil, err
	}
	result.Iterations++
	if lo.value > ceiling {
		s.fill(result, base, ceiling)
		result.ConvergenceInfo = fmt.Sprintf("%d units already exceed the ceiling", req.Constraints.MinQuantity)
		return result, nil
	}

	hi, err := s.measure(ctx, req, req.Constraints.MaxQuantity)
	if err != nil {
		return nil, err
	}
	result.Iterations++
	if hi.value <= ceiling {
		result.Feasible = true
		s.fill(result, hi, ceiling)
		result.ConvergenceInfo = "upper quantity bound reached"
		return result, nil
	}

	// lo fits and hi does not
	for hi.quantity-lo.quantity > 1 {
		if result.Iterations >= req.MaxIterations {
			result.Feasible = true
			s.fill(result, lo, ceiling)
			result.ConvergenceInfo = fmt.Sprintf("max iterations (%d) reached", req.MaxIterations)
			return result, nil
		}
		mid, err := s.measure(ctx, req, lo.quantity+(hi.quantity-lo.quantity)/2)
		if err != nil {
			return nil, err
		}
		result.Iterations++
		if mid.value <= ceiling {
			lo = mid
		} else {
			hi = mid
		}
	}

	result.Feasible = true
	s.fill(result, lo, ceiling)
	result.ConvergenceInfo = "binary search converged"
	return result, nil
}

func (s *Solver) ceiling(req Request) (domain.Won, error) {
	if req.Target != TargetMonthlyLimit {
		return req.Constraints.Budget, nil
	}
	grade, ok := s.Calc.Tariff.Grade(req.Worksheet.CareGradeID)
	if !ok || grade.MonthlyLimit <= 0 {
		return 0, &BreakEvenError{
			Operation: "solve",
			Message:   "worksheet has no monthly limit",
			Cause:     &domain.UnrecognizedGradeError{GradeID: req.Worksheet.CareGradeID},
		}
	}
	return grade.MonthlyLimit, nil
}

// checkBurdenTier rejects an added line the engine could not price. The
// line falls back to the worksheet default tier when none is given.
func (s *Solver) checkBurdenTier(req Request) error {
	id := req.Constraints.BurdenTierID
	if id == "" {
		id = req.Worksheet.DefaultBurden
	}
	if _, ok := s.Calc.Tariff.BurdenTier(id); !ok {
		return &BreakEvenError{
			Operation: "solve",
			Message:   "no burden tier for the added service",
			Cause:     &domain.UnknownBurdenTierError{BurdenTierID: id},
		}
	}
	return nil
}

func (s *Solver) measure(ctx context.Context, req Request, quantity int) (measurement, error) {
	ws := req.Worksheet.Clone()
	if quantity > 0 {
		add := &transform.AddService{
			ServiceID:    req.Constraints.ServiceID,
			Quantity:     quantity,
			DayType:      req.Constraints.DayType,
			BurdenTierID: req.Constraints.BurdenTierID,
		}
		modified, err := transform.ApplyTransforms(&ws, []transform.WorksheetTransform{add})
		if err != nil {
			return measurement{}, &BreakEvenError{
				Operation: "solve",
				Message:   "failed to add service",
				Cause:     err,
			}
		}
		ws = *modified
	}

	sim, err := s.Calc.Simulate(ctx, ws)
	if err != nil {
		return measurement{}, &BreakEvenError{
			Operation: "solve",
			Message:   "failed to calculate worksheet",
			Cause:     err,
		}
	}

	if quantity > 0 {
		added := sim.Lines[len(sim.Lines)-1]
		if !added.Resolved() {
			return measurement{}, &BreakEvenError{
				Operation: "solve",
				Message:   "added service could not be priced",
				Cause:     added.Err,
			}
		}
	}

	m := measurement{quantity: quantity, aggregate: sim.Aggregate, value: sim.Aggregate.TotalCost}
	if req.Target == TargetBurdenBudget {
		m.value = sim.Aggregate.TotalUserBurden
	}
	return m, nil
}

func (s *Solver) fill(r *Result, m measurement, ceiling domain.Won) {
	r.Quantity = m.quantity
	r.TotalCost = m.aggregate.TotalCost
	r.UserBurden = m.aggregate.TotalUserBurden
	r.InsuranceCoverage = m.aggregate.TotalInsuranceCoverage
	r.Headroom = ceiling - m.value
}
