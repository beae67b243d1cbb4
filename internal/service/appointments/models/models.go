package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelRequest запрос на отмену записи
type CancelRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// UpdateStatusRequest запрос на перевод записи в финальный статус
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=completed no_show"`
}

// AgendaRequest запрос расписания профессионала на день
type AgendaRequest struct {
	ProfessionalID  *uuid.UUID // nil: для профессионала его собственное расписание, для администратора все
	Day             time.Time  // Нулевое значение означает сегодня
	IncludeCanceled bool
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID             int64   `json:"id"`
	ClientName     string  `json:"clientName"`
	ClientPhone    string  `json:"clientPhone"`
	ClientID       *int64  `json:"clientId,omitempty"`
	ProfessionalID *string `json:"professionalId,omitempty"`
	ServiceID      int64   `json:"serviceId"`
	StartTime      string  `json:"startTime"` // RFC 3339 в часовом поясе салона
	EndTime        string  `json:"endTime"`
	Status         string  `json:"status"`

	// Денормализованные данные
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
	Notes        *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CanceledAt         *string `json:"canceledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AgendaResponse расписание на день
type AgendaResponse struct {
	Day            string                `json:"day"` // "2026-03-10"
	ProfessionalID *string               `json:"professionalId,omitempty"`
	Appointments   []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment, loc *time.Location) *AppointmentResponse {
	if a == nil {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		ClientName:         a.ClientName,
		ClientPhone:        a.ClientPhone,
		ClientID:           a.ClientID,
		ServiceID:          a.ServiceID,
		StartTime:          a.StartTime.In(loc).Format(time.RFC3339),
		EndTime:            a.EndTime.In(loc).Format(time.RFC3339),
		Status:             string(a.Status),
		ServiceName:        a.ServiceName,
		ServicePrice:       a.ServicePrice,
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	if a.ProfessionalID != nil {
		id := a.ProfessionalID.String()
		resp.ProfessionalID = &id
	}

	// Конвертируем CanceledAt в строку ISO 8601
	if a.CanceledAt != nil {
		canceledStr := a.CanceledAt.In(loc).Format(time.RFC3339)
		resp.CanceledAt = &canceledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment, loc *time.Location) []AppointmentResponse {
	result := make([]AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		if resp := FromDomainAppointment(a, loc); resp != nil {
			result = append(result, *resp)
		}
	}
	return result
}

// ToDomainFinalStatus конвертирует строку в финальный статус записи с валидацией
func ToDomainFinalStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)

	for _, valid := range domain.FinalStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
