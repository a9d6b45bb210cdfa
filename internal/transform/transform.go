package transform

import (
	"fmt"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// ProfileTransform is a what-if edit of an intake profile. Transforms never
// modify their input; Apply returns a new profile.
type ProfileTransform interface {
	// Apply returns a modified copy of base
	Apply(base *domain.Profile) (*domain.Profile, error)

	// Name returns a short identifier (e.g., "set_risk")
	Name() string

	// Description returns a human-readable description of the edit
	Description() string

	// Validate checks the transform parameters against base without applying
	Validate(base *domain.Profile) error
}

// ApplyTransforms applies transforms in order, each receiving the output of
// the previous one. With no transforms it returns a copy of base.
func ApplyTransforms(base *domain.Profile, transforms []ProfileTransform) (*domain.Profile, error) {
	if base == nil {
		return nil, fmt.Errorf("base profile cannot be nil")
	}

	current := base.Clone()
	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}
		current = next
	}

	return current, nil
}

// Describe joins the descriptions of a transform chain
func Describe(transforms []ProfileTransform) string {
	desc := ""
	for i, t := range transforms {
		if i > 0 {
			desc += "; "
		}
		desc += t.Description()
	}
	return desc
}

// TransformError represents an error that occurred during transformation
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
