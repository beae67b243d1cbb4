package authservice

import "github.com/google/uuid"

// User модель пользователя из сервиса аутентификации
type User struct {
	ID           uuid.UUID    `json:"id"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone,omitempty"`
	UserMetadata UserMetadata `json:"user_metadata"`
}

// UserMetadata данные, указанные при регистрации
type UserMetadata struct {
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role,omitempty"`
}

// ErrorResponse модель ошибки от сервиса аутентификации
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"msg"`
}
