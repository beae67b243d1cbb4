package models

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// SetWorkingRequest отметка начала или конца смены
type SetWorkingRequest struct {
	IsWorking *bool `json:"isWorking" validate:"required"`
}

// CreateServiceRequest новая услуга салона
type CreateServiceRequest struct {
	Name            string  `json:"name" validate:"required,max=120"`
	Price           float64 `json:"price" validate:"gte=0"`
	DurationMinutes int     `json:"durationMinutes" validate:"required,gt=0,lte=720"`
}

// UpdateServiceRequest изменение услуги. Незаданные поля не меняются
type UpdateServiceRequest struct {
	Name            *string  `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Price           *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	DurationMinutes *int     `json:"durationMinutes,omitempty" validate:"omitempty,gt=0,lte=720"`
}

// SetServiceActiveRequest включение или отключение услуги для записи
type SetServiceActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// UpdateProfessionalRequest изменение данных профессионала. Незаданные поля не меняются
type UpdateProfessionalRequest struct {
	FullName             *string  `json:"fullName,omitempty" validate:"omitempty,min=1,max=120"`
	Phone                *string  `json:"phone,omitempty" validate:"omitempty,max=32"`
	CommissionPercentage *float64 `json:"commissionPercentage,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// ServiceResponse услуга салона
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
	Active          bool    `json:"active"`
}

// ServiceListResponse список услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// ProfessionalResponse профессионал салона
type ProfessionalResponse struct {
	ID                   string   `json:"id"`
	FullName             string   `json:"fullName"`
	IsWorking            bool     `json:"isWorking"`
	CommissionPercentage *float64 `json:"commissionPercentage,omitempty"` // Только для администратора
}

// ProfessionalListResponse список профессионалов
type ProfessionalListResponse struct {
	Professionals []ProfessionalResponse `json:"professionals"`
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Price:           s.Price,
		DurationMinutes: s.AverageDurationMinutes,
		Active:          s.Active,
	}
}

// FromDomainProfessional конвертирует domain модель в DTO.
// Процент комиссии виден только администратору.
func FromDomainProfessional(p *domain.Professional, withCommission bool) ProfessionalResponse {
	resp := ProfessionalResponse{
		ID:        p.ID.String(),
		FullName:  p.FullName,
		IsWorking: p.IsWorking,
	}
	if withCommission {
		resp.CommissionPercentage = p.CommissionPercentage
	}
	return resp
}
