package domain

// Default configuration values
const (
	DefaultOpenTime                = "09:00"
	DefaultCloseTime               = "18:00"
	DefaultSlotStepMinutes         = 30
	DefaultMinBookingNoticeMinutes = 0
	DefaultAdvanceBookingDays      = 0 // 0 = unlimited
	DefaultTimezone                = "America/Sao_Paulo"
)

// Business validation constants
const (
	MinSlotStepMinutes    = 5
	MaxSlotStepMinutes    = 240
	MaxServiceDuration    = 12 * 60
	MaxNotesLength        = 500
	MaxClientNameLength   = 120
	MaxCancellationReason = 500
	AnyProfessionalValue  = "any"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// FinalStatuses are the statuses a scheduled appointment may be moved to
var FinalStatuses = []AppointmentStatus{
	StatusCompleted,
	StatusNoShow,
}

// AllStatuses lists every known appointment status
var AllStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusCompleted,
	StatusNoShow,
	StatusCanceled,
}
