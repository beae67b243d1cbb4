package create_appointment

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrServiceInactive возвращается, когда услуга снята с записи
	ErrServiceInactive = errors.New("create_appointment: service is not available for booking")

	// ErrProfessionalNotFound возвращается, когда профессионал не найден
	ErrProfessionalNotFound = errors.New("create_appointment: professional not found")

	// ErrProfessionalNotWorking возвращается, когда выбранный профессионал не принимает записи
	ErrProfessionalNotWorking = errors.New("create_appointment: professional is not accepting appointments")

	// ErrInvalidDate возвращается, когда день записи уже прошел
	ErrInvalidDate = errors.New("create_appointment: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advance_booking_days
	ErrDateTooFarInFuture = errors.New("create_appointment: date is too far in the future")

	// ErrSalonClosed возвращается, когда салон не работает в этот день
	ErrSalonClosed = errors.New("create_appointment: salon is closed on this date")

	// ErrInvalidTimeSlot возвращается, когда время не попадает в сетку слотов или выходит за рабочие часы
	ErrInvalidTimeSlot = errors.New("create_appointment: invalid time slot")

	// ErrTooLateToBook возвращается, когда до начала меньше минимального времени записи
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")

	// errNoFreeProfessional повторная проверка в транзакции не нашла свободного профессионала
	errNoFreeProfessional = errors.New("create_appointment: no free professional")

	// errRetryable чтение в транзакции прервано конфликтом сериализации
	errRetryable = errors.New("create_appointment: transaction conflict")
)
