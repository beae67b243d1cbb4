package domain

import (
	"time"

	"github.com/google/uuid"
)

// Service represents a salon service offered to clients
type Service struct {
	ID                     int64
	Name                   string
	Price                  float64
	AverageDurationMinutes int
	Active                 bool
	CreatedAt              time.Time
}

// Professional represents a member of the salon staff
type Professional struct {
	ID                   uuid.UUID
	FullName             string
	Email                string
	Phone                *string
	IsWorking            bool
	CommissionPercentage *float64
	CreatedAt            time.Time
}
