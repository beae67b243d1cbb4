package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/authservice"
)

// UserResolver проверяет токен доступа во внешнем сервисе аутентификации
type UserResolver interface {
	GetUser(ctx context.Context, accessToken string) (*authservice.User, error)
}

// RoleResolver получает роль пользователя из его профиля
type RoleResolver interface {
	GetProfileRole(ctx context.Context, userID uuid.UUID) (domain.Role, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
