package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingPolicy salon rules shared by slot calculation and booking confirmation.
// Day boundaries are computed in Location.
type BookingPolicy struct {
	Hours              BusinessHours
	Location           *time.Location
	MinNoticeMinutes   int
	AdvanceBookingDays int // 0 = unlimited
}

func (p BookingPolicy) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

// Local converts t to the salon location
func (p BookingPolicy) Local(t time.Time) time.Time {
	return t.In(p.location())
}

// Date returns midnight of the calendar date of day in the salon location.
// The time of day and the location of the argument are ignored.
func (p BookingPolicy) Date(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, p.location())
}

// Today returns midnight of the current salon day
func (p BookingPolicy) Today(now time.Time) time.Time {
	return p.Date(now.In(p.location()))
}

// DayRange returns [midnight, next midnight) of the given salon day
func (p BookingPolicy) DayRange(day time.Time) TimeRange {
	start := p.Date(day)
	return TimeRange{Start: start, End: start.AddDate(0, 0, 1)}
}

// IsPast returns true if the day ended before the current salon day
func (p BookingPolicy) IsPast(day, now time.Time) bool {
	return p.Date(day).Before(p.Today(now))
}

// IsBeyondHorizon returns true if the day is after the advance booking limit
func (p BookingPolicy) IsBeyondHorizon(day, now time.Time) bool {
	if p.AdvanceBookingDays <= 0 {
		return false
	}
	return p.Date(day).After(p.Today(now).AddDate(0, 0, p.AdvanceBookingDays))
}

// EarliestStart returns the first instant a new appointment may start at
func (p BookingPolicy) EarliestStart(now time.Time) time.Time {
	return now.Add(time.Duration(p.MinNoticeMinutes) * time.Minute)
}

// FreeProfessionals returns the professionals of the roster, in roster order,
// whose time does not intersect any blocking appointment
func FreeProfessionals(candidate TimeRange, roster []uuid.UUID, appointments []*Appointment) []uuid.UUID {
	free := make([]uuid.UUID, 0, len(roster))
	for _, id := range roster {
		busy := false
		for _, a := range appointments {
			if a.BlocksProfessional(id) && candidate.Overlaps(a.Range()) {
				busy = true
				break
			}
		}
		if !busy {
			free = append(free, id)
		}
	}
	return free
}
