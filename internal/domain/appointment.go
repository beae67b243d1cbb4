package domain

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusNoShow    AppointmentStatus = "no_show"
	StatusCanceled  AppointmentStatus = "canceled"
)

// Appointment represents a booked service in the salon
type Appointment struct {
	ID             int64
	ClientName     string
	ClientPhone    string
	ClientID       *int64     // set when the client is in the salon client base
	ProfessionalID *uuid.UUID // nil only on legacy "any professional" rows
	ServiceID      int64
	StartTime      time.Time
	EndTime        time.Time
	Status         AppointmentStatus
	Notes          *string
	CreatedBy      *uuid.UUID

	// Denormalized data for reports
	ServiceName  string
	ServicePrice float64

	CancellationReason *string
	CanceledAt         *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Range returns the [start, end) interval occupied by the appointment
func (a *Appointment) Range() TimeRange {
	return TimeRange{Start: a.StartTime, End: a.EndTime}
}

// BlocksTime returns true if the appointment occupies its interval.
// Canceled appointments never block slots.
func (a *Appointment) BlocksTime() bool {
	return a.Status != StatusCanceled
}

// BlocksProfessional returns true if the appointment occupies time of the given professional.
// An appointment without a professional blocks everyone.
func (a *Appointment) BlocksProfessional(id uuid.UUID) bool {
	if !a.BlocksTime() {
		return false
	}
	return a.ProfessionalID == nil || *a.ProfessionalID == id
}

// CanBeCanceled returns true if the appointment can still be canceled
func (a *Appointment) CanBeCanceled() bool {
	return a.Status == StatusScheduled
}

// CanChangeStatus returns true if the appointment can be moved to a final status
func (a *Appointment) CanChangeStatus() bool {
	return a.Status == StatusScheduled
}

// IsAssignedTo returns true if the appointment belongs to the professional
func (a *Appointment) IsAssignedTo(id uuid.UUID) bool {
	return a.ProfessionalID != nil && *a.ProfessionalID == id
}

// AppointmentsFilter narrows appointment queries
type AppointmentsFilter struct {
	ProfessionalID  *uuid.UUID // nil means all professionals
	From            *time.Time // appointments ending after From
	To              *time.Time // appointments starting before To
	Status          *AppointmentStatus
	IncludeCanceled bool
	ForUpdate       bool // lock rows, only inside a transaction
}

// RevenueSummary aggregates completed appointments over a period
type RevenueSummary struct {
	AppointmentsCount int
	Total             float64
}

// ProfessionalRevenue is the revenue and commission of one professional over a period
type ProfessionalRevenue struct {
	ProfessionalID       uuid.UUID
	FullName             string
	AppointmentsCount    int
	Total                float64
	CommissionPercentage *float64
}

// Commission returns the commission amount for the period
func (p *ProfessionalRevenue) Commission() float64 {
	if p.CommissionPercentage == nil {
		return 0
	}
	return p.Total * *p.CommissionPercentage / 100
}
