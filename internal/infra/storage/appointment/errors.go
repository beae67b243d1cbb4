package appointment

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotTaken возвращается, когда интервал уже занят у профессионала (exclusion constraint)
	ErrSlotTaken = errors.New("appointment.repository: time range already booked")

	// ErrConcurrentUpdate возвращается при конфликте сериализации или взаимоблокировке
	ErrConcurrentUpdate = errors.New("appointment.repository: concurrent update, retry")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)

// Коды ошибок PostgreSQL
const (
	pqExclusionViolation   = "23P01"
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
)

// IsSlotTaken true, если ошибка означает пересечение с существующей записью
func IsSlotTaken(err error) bool {
	if errors.Is(err, ErrSlotTaken) {
		return true
	}
	return hasPQCode(err, pqExclusionViolation)
}

// IsRetryable true для ошибок сериализации и взаимоблокировок,
// в том числе полученных при коммите транзакции
func IsRetryable(err error) bool {
	if errors.Is(err, ErrConcurrentUpdate) {
		return true
	}
	return hasPQCode(err, pqSerializationFailure) || hasPQCode(err, pqDeadlockDetected)
}

// classifyWriteError переводит ошибки PostgreSQL в ошибки репозитория
func classifyWriteError(err error) error {
	switch {
	case hasPQCode(err, pqExclusionViolation):
		return ErrSlotTaken
	case hasPQCode(err, pqSerializationFailure), hasPQCode(err, pqDeadlockDetected):
		return ErrConcurrentUpdate
	default:
		return nil
	}
}

func hasPQCode(err error, code string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}
	return false
}
