package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// CatalogRepository интерфейс репозитория услуг и профессионалов
type CatalogRepository interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
	ListServices(ctx context.Context, activeOnly bool) ([]*domain.Service, error)
	CreateService(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	UpdateService(ctx context.Context, svc *domain.Service) error
	GetProfessionalByID(ctx context.Context, id uuid.UUID) (*domain.Professional, error)
	ListProfessionals(ctx context.Context, workingOnly bool) ([]*domain.Professional, error)
	SetWorking(ctx context.Context, id uuid.UUID, working bool) error
	UpdateProfessional(ctx context.Context, p *domain.Professional) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
