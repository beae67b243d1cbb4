package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// BusinessHours daily opening window of the salon and the slot grid
type BusinessHours struct {
	Open           types.TimeString
	Close          types.TimeString
	StepMinutes    int
	ClosedWeekdays []time.Weekday
}

// IsOpenOn returns false for configured closed weekdays
func (h BusinessHours) IsOpenOn(day time.Time) bool {
	for _, wd := range h.ClosedWeekdays {
		if day.Weekday() == wd {
			return false
		}
	}
	return true
}

// Window returns the opening window on the given day in the day's location
func (h BusinessHours) Window(day time.Time) TimeRange {
	return TimeRange{Start: h.Open.On(day), End: h.Close.On(day)}
}

// IsAligned returns true if t starts on the slot grid of its day
func (h BusinessHours) IsAligned(t time.Time) bool {
	if h.StepMinutes <= 0 {
		return false
	}
	offset := t.Sub(h.Open.On(t))
	if offset < 0 {
		return false
	}
	return offset%(time.Duration(h.StepMinutes)*time.Minute) == 0
}
