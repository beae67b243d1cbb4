package catalog

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("catalog.repository: service not found")

	// ErrProfessionalNotFound возвращается, когда профессионал не найден
	ErrProfessionalNotFound = errors.New("catalog.repository: professional not found")

	// ErrProfileNotFound возвращается, когда у пользователя нет профиля
	ErrProfileNotFound = errors.New("catalog.repository: profile not found")

	// ErrConcurrentUpdate возвращается при конфликте сериализации или взаимоблокировке
	ErrConcurrentUpdate = errors.New("catalog.repository: concurrent update, retry")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)

// Коды ошибок PostgreSQL
const (
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
)

// IsRetryable true для ошибок сериализации и взаимоблокировок
func IsRetryable(err error) bool {
	if errors.Is(err, ErrConcurrentUpdate) {
		return true
	}
	return hasPQCode(err, pqSerializationFailure) || hasPQCode(err, pqDeadlockDetected)
}

// wrapError оборачивает ошибку драйвера в sentinel репозитория.
// Конфликты сериализации получают ErrConcurrentUpdate, чтобы их можно было повторить
func wrapError(sentinel error, msg string, err error) error {
	if hasPQCode(err, pqSerializationFailure) || hasPQCode(err, pqDeadlockDetected) {
		sentinel = ErrConcurrentUpdate
	}
	return fmt.Errorf("%w: %s: %v", sentinel, msg, err)
}

func hasPQCode(err error, code string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}
	return false
}
