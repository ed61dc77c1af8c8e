package breakeven

import (
	"context"
	"fmt"
)

// SolveServices runs the solver once per service. An empty list means every
// service in the tariff. Services the solver rejects are skipped; a burden
// tier that cannot price any of them is an error.
func (s *Solver) SolveServices(ctx context.Context, req Request, serviceIDs []string) (*MultiResult, error) {
	if len(serviceIDs) == 0 {
		for _, svc := range s.Calc.Tariff.Services {
			serviceIDs = append(serviceIDs, svc.ID)
		}
	}

	if err := s.checkBurdenTier(req); err != nil {
		return nil, err
	}

	var results []Result
	var lastErr error
	for _, id := range serviceIDs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r := req
		r.Constraints.ServiceID = id
		result, err := s.Solve(ctx, r)
		if err != nil {
			lastErr = err
			continue
		}
		results = append(results, *result)
	}

	if len(results) == 0 {
		return nil, &BreakEvenError{
			Operation: "solve_services",
			Message:   "no service could be solved",
			Cause:     lastErr,
		}
	}

	mr := &MultiResult{
		Target:  results[0].Target,
		Results: results,
	}
	for i := range results {
		if !results[i].Feasible {
			continue
		}
		if mr.MostUnits == nil || results[i].Quantity > mr.MostUnits.Quantity {
			mr.MostUnits = &results[i]
		}
	}
	mr.Recommendations = generateRecommendations(mr)
	return mr, nil
}

func generateRecommendations(mr *MultiResult) []string {
	var recs []string
	if mr.MostUnits != nil {
		recs = append(recs, fmt.Sprintf("Most units: %s fits %d more units, leaving %s",
			mr.MostUnits.ServiceName, mr.MostUnits.Quantity, mr.MostUnits.Headroom))
	}

	blocked := 0
	for _, r := range mr.Results {
		if !r.Feasible {
			blocked++
		}
	}
	if blocked > 0 {
		recs = append(recs, fmt.Sprintf("No room: %d of %d services do not fit even once", blocked, len(mr.Results)))
	}
	return recs
}
