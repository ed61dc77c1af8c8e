package breakeven

import (
	"fmt"

	"github.com/homecare-ojt/ltcsim/internal/domain"
)

// Target is the ceiling the solver keeps the worksheet under
type Target string

const (
	TargetMonthlyLimit Target = "monthly_limit" // total cost within the care grade's monthly limit
	TargetCostBudget   Target = "cost_budget"   // total cost within Constraints.Budget
	TargetBurdenBudget Target = "burden_budget" // user burden within Constraints.Budget
)

// ParseTarget accepts the target names and the short forms limit, cost and burden
func ParseTarget(s string) (Target, error) {
	switch s {
	case "", "limit", string(TargetMonthlyLimit):
		return TargetMonthlyLimit, nil
	case "cost", string(TargetCostBudget):
		return TargetCostBudget, nil
	case "burden", string(TargetBurdenBudget):
		return TargetBurdenBudget, nil
	}
	return "", fmt.Errorf("unknown target %q (limit, cost, burden)", s)
}

// Constraints bound the quantity search for one service
type Constraints struct {
	ServiceID    string         `json:"service_id"`
	DayType      domain.DayType `json:"day_type,omitempty"`
	BurdenTierID string         `json:"burden_tier,omitempty"`
	MinQuantity  int            `json:"min_quantity"`
	MaxQuantity  int            `json:"max_quantity"`
	Budget       domain.Won     `json:"budget,omitempty"`
}

// Request asks how much of a service can be added to a worksheet
type Request struct {
	Worksheet     domain.Worksheet
	Target        Target
	Constraints   Constraints
	MaxIterations int
}

// Result is the largest quantity that keeps the worksheet under the ceiling.
// Quantity is 0 when not even MinQuantity fits.
type Result struct {
	Request         Request `json:"-"`
	Target          Target  `json:"target"`
	ServiceID       string  `json:"service_id"`
	ServiceName     string  `json:"service_name"`
	Feasible        bool    `json:"feasible"`
	Quantity        int     `json:"quantity"`
	Iterations      int     `json:"iterations"`
	ConvergenceInfo string  `json:"convergence_info"`

	Ceiling           domain.Won `json:"ceiling"`
	TotalCost         domain.Won `json:"total_cost"`
	UserBurden        domain.Won `json:"user_burden"`
	InsuranceCoverage domain.Won `json:"insurance_coverage"`
	Headroom          domain.Won `json:"headroom"`

	BaseTotalCost  domain.Won `json:"base_total_cost"`
	BaseUserBurden domain.Won `json:"base_user_burden"`
}

// AddedCost is the cost of the solved quantity
func (r *Result) AddedCost() domain.Won {
	return r.TotalCost - r.BaseTotalCost
}

// AddedBurden is the user burden of the solved quantity
func (r *Result) AddedBurden() domain.Won {
	return r.UserBurden - r.BaseUserBurden
}

// MultiResult holds one result per service, in catalog order
type MultiResult struct {
	Target          Target   `json:"target"`
	Results         []Result `json:"results"`
	MostUnits       *Result  `json:"most_units,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// SolverOptions configures the search
type SolverOptions struct {
	MaxIterations      int
	DefaultMaxQuantity int // upper bound when Constraints.MaxQuantity is 0
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxIterations:      32,
		DefaultMaxQuantity: 100,
	}
}

// Validate checks that the constraints describe a searchable range
func (c *Constraints) Validate(target Target) error {
	if c.ServiceID == "" {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "service id is required",
		}
	}
	if c.MinQuantity < 1 {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_quantity must be at least 1",
			Cause:     &domain.InvalidQuantityError{ServiceID: c.ServiceID, Quantity: c.MinQuantity},
		}
	}
	if c.MaxQuantity < c.MinQuantity {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "max_quantity cannot be less than min_quantity",
		}
	}
	if target != TargetMonthlyLimit && c.Budget <= 0 {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   fmt.Sprintf("%s needs a positive budget", target),
		}
	}
	return nil
}

// BreakEvenError represents errors from the capacity solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
