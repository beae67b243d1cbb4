package domain

import (
	"time"

	"github.com/google/uuid"
)

// TimeRange half-open interval [Start, End)
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Overlaps returns true if the ranges share at least one instant.
// Ranges that only touch at a boundary do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && r.End.After(other.Start)
}

// Duration returns the length of the range
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// ProfessionalSelector selects a concrete professional or any working one.
// A nil ProfessionalID means any.
type ProfessionalSelector struct {
	ProfessionalID *uuid.UUID
}

// AnyProfessional returns the "no preference" selector
func AnyProfessional() ProfessionalSelector {
	return ProfessionalSelector{}
}

// SpecificProfessional returns a selector for the given professional
func SpecificProfessional(id uuid.UUID) ProfessionalSelector {
	return ProfessionalSelector{ProfessionalID: &id}
}

// IsAny returns true if no specific professional was requested
func (s ProfessionalSelector) IsAny() bool {
	return s.ProfessionalID == nil
}

// String returns the professional id or AnyProfessionalValue
func (s ProfessionalSelector) String() string {
	if s.IsAny() {
		return AnyProfessionalValue
	}
	return s.ProfessionalID.String()
}

// ParseProfessionalSelector parses a uuid or the "any" sentinel
func ParseProfessionalSelector(value string) (ProfessionalSelector, error) {
	if value == "" || value == AnyProfessionalValue {
		return AnyProfessional(), nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return ProfessionalSelector{}, err
	}
	return SpecificProfessional(id), nil
}
