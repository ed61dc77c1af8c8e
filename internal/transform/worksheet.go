package transform

import (
	"fmt"

	"github.com/homecare-ojt/ltcsim/internal/domain"
)

// SetDayType moves every line, and the worksheet default, to one day type
type SetDayType struct {
	DayType domain.DayType
}

func (s *SetDayType) Name() string { return "set_day" }

func (s *SetDayType) Description() string {
	return fmt.Sprintf("Deliver every service on %s", s.DayType)
}

func (s *SetDayType) Validate(base *domain.Worksheet) error {
	if base == nil {
		return NewTransformError(s.Name(), "validate", "base worksheet cannot be nil", nil)
	}
	for _, dt := range domain.DayTypes {
		if dt == domain.NormalizeDayType(string(s.DayType)) {
			return nil
		}
	}
	return NewTransformError(s.Name(), "validate", fmt.Sprintf("unknown day type %q", s.DayType), nil)
}

func (s *SetDayType) Apply(base *domain.Worksheet) (*domain.Worksheet, error) {
	out := base.Clone()
	day := domain.NormalizeDayType(string(s.DayType))
	out.DefaultDayType = day
	for i := range out.Lines {
		out.Lines[i].DayType = day
	}
	return &out, nil
}

// SetBurdenTier applies one burden tier to every line
type SetBurdenTier struct {
	TierID string
}

func (s *SetBurdenTier) Name() string { return "set_tier" }

func (s *SetBurdenTier) Description() string {
	return fmt.Sprintf("Apply the %s burden tier to every line", s.TierID)
}

func (s *SetBurdenTier) Validate(base *domain.Worksheet) error {
	if base == nil {
		return NewTransformError(s.Name(), "validate", "base worksheet cannot be nil", nil)
	}
	if s.TierID == "" {
		return NewTransformError(s.Name(), "validate", "tier id is required", nil)
	}
	return nil
}

func (s *SetBurdenTier) Apply(base *domain.Worksheet) (*domain.Worksheet, error) {
	out := base.Clone()
	out.DefaultBurden = s.TierID
	for i := range out.Lines {
		out.Lines[i].BurdenTierID = s.TierID
	}
	return &out, nil
}

// SetCareGrade changes the beneficiary's grade and therefore the monthly limit
type SetCareGrade struct {
	GradeID string
}

func (s *SetCareGrade) Name() string { return "set_grade" }

func (s *SetCareGrade) Description() string {
	return fmt.Sprintf("Evaluate against the %s monthly limit", s.GradeID)
}

func (s *SetCareGrade) Validate(base *domain.Worksheet) error {
	if base == nil {
		return NewTransformError(s.Name(), "validate", "base worksheet cannot be nil", nil)
	}
	if s.GradeID == "" {
		return NewTransformError(s.Name(), "validate", "grade id is required", nil)
	}
	return nil
}

func (s *SetCareGrade) Apply(base *domain.Worksheet) (*domain.Worksheet, error) {
	out := base.Clone()
	out.CareGradeID = s.GradeID
	for i := range out.Lines {
		out.Lines[i].CareGradeID = ""
	}
	return &out, nil
}

// SetQuantity changes the quantity of every line selecting a service
type SetQuantity struct {
	ServiceID string
	Quantity  int
}

func (s *SetQuantity) Name() string { return "set_quantity" }

func (s *SetQuantity) Description() string {
	return fmt.Sprintf("Use %d units of %s", s.Quantity, s.ServiceID)
}

func (s *SetQuantity) Validate(base *domain.Worksheet) error {
	if base == nil {
		return NewTransformError(s.Name(), "validate", "base worksheet cannot be nil", nil)
	}
	if s.Quantity < 1 {
		return NewTransformError(s.Name(), "validate", "quantity must be at least 1",
			&domain.InvalidQuantityError{ServiceID: s.ServiceID, Quantity: s.Quantity})
	}
	if !base.HasService(s.ServiceID) {
		return NewTransformError(s.Name(), "validate", fmt.Sprintf("worksheet has no %s line", s.ServiceID), nil)
	}
	return nil
}

func (s *SetQuantity) Apply(base *domain.Worksheet) (*domain.Worksheet, error) {
	out := base.Clone()
	for i := range out.Lines {
		if out.Lines[i].ServiceID == s.ServiceID {
			out.Lines[i].Quantity = s.Quantity
		}
	}
	return &out, nil
}

// AddService appends a line using the worksheet defaults
type AddService struct {
	ServiceID    string
	Quantity     int
	DayType      domain.DayType // empty uses the worksheet default
	BurdenTierID string         // empty uses the worksheet default
}

func (a *AddService) Name() string { return "add_service" }

func (a *AddService) Description() string {
	return fmt.Sprintf("Add %d units of %s", a.Quantity, a.ServiceID)
}

func (a *AddService) Validate(base *domain.Worksheet) error {
	if base == nil {
		return NewTransformError(a.Name(), "validate", "base worksheet cannot be nil", nil)
	}
	if a.ServiceID == "" {
		return NewTransformError(a.Name(), "validate", "service id is required", nil)
	}
	if a.Quantity < 1 {
		return NewTransformError(a.Name(), "validate", "quantity must be at least 1",
			&domain.InvalidQuantityError{ServiceID: a.ServiceID, Quantity: a.Quantity})
	}
	return nil
}

func (a *AddService) Apply(base *domain.Worksheet) (*domain.Worksheet, error) {
	out := base.Clone()
	out.AddLine(domain.LineItem{
		ServiceID:    a.ServiceID,
		Quantity:     a.Quantity,
		DayType:      a.DayType,
		BurdenTierID: a.BurdenTierID,
	})
	return &out, nil
}

// RemoveService drops every line selecting a service
type RemoveService struct {
	ServiceID string
}

func (r *RemoveService) Name() string { return "remove_service" }

func (r *RemoveService) Description() string {
	return fmt.Sprintf("Remove %s", r.ServiceID)
}

func (r *RemoveService) Validate(base *domain.Worksheet) error {
	if base == nil {
		return NewTransformError(r.Name(), "validate", "base worksheet cannot be nil", nil)
	}
	if !base.HasService(r.ServiceID) {
		return NewTransformError(r.Name(), "validate", fmt.Sprintf("worksheet has no %s line", r.ServiceID), nil)
	}
	return nil
}

func (r *RemoveService) Apply(base *domain.Worksheet) (*domain.Worksheet, error) {
	out := base.Clone()
	lines := out.Lines[:0]
	for _, l := range out.Lines {
		if l.ServiceID != r.ServiceID {
			lines = append(lines, l)
		}
	}
	out.Lines = lines
	return &out, nil
}
