package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// CreateClientRequest новый клиент, записанный администратором или профессионалом
type CreateClientRequest struct {
	FullName string `json:"fullName" validate:"required,max=120"`
	Phone    string `json:"phone" validate:"required,max=32"`
}

// UpdateClientRequest изменение данных клиента. Незаданные поля не меняются
type UpdateClientRequest struct {
	FullName *string `json:"fullName,omitempty" validate:"omitempty,min=1,max=120"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=1,max=32"`
}

// ClientResponse клиент салона
type ClientResponse struct {
	ID         int64     `json:"id"`
	FullName   string    `json:"fullName"`
	Phone      string    `json:"phone"`
	Registered bool      `json:"registered"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ClientListResponse список клиентов
type ClientListResponse struct {
	Clients []ClientResponse `json:"clients"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

// FromDomain конвертирует domain модель в DTO
func FromDomain(c *domain.Client) ClientResponse {
	return ClientResponse{
		ID:         c.ID,
		FullName:   c.FullName,
		Phone:      c.Phone,
		Registered: c.UserID != nil,
		CreatedAt:  c.CreatedAt,
	}
}
