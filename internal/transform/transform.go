package transform

import (
	"fmt"

	"github.com/homecare-ojt/ltcsim/internal/domain"
)

// WorksheetTransform is a composable edit of a worksheet. Transforms never
// mutate their input; Apply returns a new worksheet.
type WorksheetTransform interface {
	// Apply returns the transformed copy of base
	Apply(base *domain.Worksheet) (*domain.Worksheet, error)

	// Name returns a short identifier such as "set_day"
	Name() string

	// Description returns a human-readable summary
	Description() string

	// Validate checks the parameters against base without applying
	Validate(base *domain.Worksheet) error
}

// ApplyTransforms applies transforms in order, each receiving the output of
// the previous one.
func ApplyTransforms(base *domain.Worksheet, transforms []WorksheetTransform) (*domain.Worksheet, error) {
	if base == nil {
		return nil, fmt.Errorf("base worksheet cannot be nil")
	}

	current := base.Clone()
	for i, t := range transforms {
		if t == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}
		if err := t.Validate(&current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", t.Name(), err)
		}
		next, err := t.Apply(&current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", t.Name(), err)
		}
		current = *next
	}
	return &current, nil
}

// TransformError describes a transform that could not be validated or applied
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
