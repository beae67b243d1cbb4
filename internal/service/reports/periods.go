package reports

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Period границы отчетных периодов в часовом поясе салона
type Period struct {
	Day   domain.TimeRange
	Week  domain.TimeRange // ISO неделя, с понедельника
	Month domain.TimeRange
}

// periodsAt считает границы дня, недели и месяца, содержащих now, в часовом поясе loc
func periodsAt(now time.Time, loc *time.Location) Period {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	// Воскресенье = 0, сдвигаем так, чтобы понедельник был началом недели
	offset := (int(today.Weekday()) + 6) % 7
	weekStart := today.AddDate(0, 0, -offset)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)

	return Period{
		Day:   domain.TimeRange{Start: today, End: today.AddDate(0, 0, 1)},
		Week:  domain.TimeRange{Start: weekStart, End: weekStart.AddDate(0, 0, 7)},
		Month: domain.TimeRange{Start: monthStart, End: monthStart.AddDate(0, 1, 0)},
	}
}
