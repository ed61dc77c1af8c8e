package domain

import "fmt"

// UnknownServiceError is returned when a line references a service id
// missing from the catalog
type UnknownServiceError struct {
	ServiceID string
}

func (e *UnknownServiceError) Error() string {
	return fmt.Sprintf("unknown service: %q", e.ServiceID)
}

// InvalidQuantityError is returned when a line is built with quantity < 1
type InvalidQuantityError struct {
	ServiceID string
	Quantity  int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %d for service %q: must be at least 1", e.Quantity, e.ServiceID)
}

// UnknownBurdenTierError is returned when a line references a burden tier
// missing from the tariff
type UnknownBurdenTierError struct {
	BurdenTierID string
}

func (e *UnknownBurdenTierError) Error() string {
	return fmt.Sprintf("unknown burden tier: %q", e.BurdenTierID)
}

// UnrecognizedDayTypeError records a day type the tariff does not price.
// The engine falls back to a 1.0 multiplier.
type UnrecognizedDayTypeError struct {
	DayType DayType
}

func (e *UnrecognizedDayTypeError) Error() string {
	return fmt.Sprintf("unrecognized day type %q: multiplier 1.0 applied", e.DayType)
}

// UnrecognizedGradeError records a care grade with no configured monthly
// limit. Aggregation continues without a limit check.
type UnrecognizedGradeError struct {
	GradeID string
}

func (e *UnrecognizedGradeError) Error() string {
	return fmt.Sprintf("unrecognized care grade %q: no monthly limit applied", e.GradeID)
}
