package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Day.IsZero() {
		return fmt.Errorf("%w: day is required", ErrInvalidInput)
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
