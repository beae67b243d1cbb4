package create_appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ClientName) == "" {
		return fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}

	if len(req.ClientName) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: client name must be at most %d characters", ErrInvalidInput, domain.MaxClientNameLength)
	}

	if strings.TrimSpace(req.ClientPhone) == "" {
		return fmt.Errorf("%w: client phone is required", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.ClientID != nil && *req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что на день можно записаться
func validateDate(policy domain.BookingPolicy, day, now time.Time) error {
	if policy.IsPast(day, now) {
		return ErrInvalidDate
	}

	if policy.IsBeyondHorizon(day, now) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, policy.AdvanceBookingDays)
	}

	if !policy.Hours.IsOpenOn(day) {
		return ErrSalonClosed
	}

	return nil
}

// validateService проверяет, что услугу можно записать
func validateService(service *domain.Service) error {
	if !service.Active {
		return ErrServiceInactive
	}

	if service.AverageDurationMinutes <= 0 || service.AverageDurationMinutes > domain.MaxServiceDuration {
		return fmt.Errorf("%w: service duration must be in (0, %d] minutes, got %d",
			ErrInvalidInput, domain.MaxServiceDuration, service.AverageDurationMinutes)
	}

	return nil
}

// validateSlot проверяет, что интервал совпадает с одним из слотов дня
func validateSlot(policy domain.BookingPolicy, candidate domain.TimeRange, now time.Time) error {
	window := policy.Hours.Window(candidate.Start)

	if candidate.Start.Before(window.Start) || candidate.End.After(window.End) {
		return fmt.Errorf("%w: %s-%s is outside business hours %s-%s", ErrInvalidTimeSlot,
			candidate.Start.Format(domain.TimeFormat), candidate.End.Format(domain.TimeFormat),
			policy.Hours.Open, policy.Hours.Close)
	}

	if !policy.Hours.IsAligned(candidate.Start) {
		return fmt.Errorf("%w: start time must be aligned to %d minutes", ErrInvalidTimeSlot, policy.Hours.StepMinutes)
	}

	if candidate.Start.Before(policy.EarliestStart(now)) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, policy.MinNoticeMinutes)
	}

	return nil
}
