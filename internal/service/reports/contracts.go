package reports

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// ReportsRepository интерфейс агрегатов по записям
type ReportsRepository interface {
	CountByStatus(ctx context.Context, from, to time.Time) (map[domain.AppointmentStatus]int, error)
	GetRevenueSummary(ctx context.Context, from, to time.Time) (*domain.RevenueSummary, error)
	GetRevenueByProfessional(ctx context.Context, from, to time.Time) ([]*domain.ProfessionalRevenue, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
