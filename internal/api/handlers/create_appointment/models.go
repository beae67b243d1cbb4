package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments/models"
	createAppointment "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ClientName     string  `json:"clientName" validate:"required,max=120"`
	ClientPhone    string  `json:"clientPhone" validate:"required,max=32"`
	ClientID       *int64  `json:"clientId,omitempty" validate:"omitempty,gt=0"`
	ServiceID      int64   `json:"serviceId" validate:"required,gt=0"`
	ProfessionalID string  `json:"professionalId"`                // UUID или "any", пусто = any
	StartTime      string  `json:"startTime" validate:"required"` // RFC 3339, из списка доступных слотов
	Notes          *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// ConfirmationResponse HTTP response model
type ConfirmationResponse struct {
	Outcome     string                      `json:"outcome"`
	Appointment *models.AppointmentResponse `json:"appointment,omitempty"`
	Error       string                      `json:"error,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(session *domain.Session) (*createAppointment.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidStartTime, err)
	}

	selector, err := domain.ParseProfessionalSelector(r.ProfessionalID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidProfessional, err)
	}

	return &createAppointment.Request{
		Session:      session,
		ClientName:   r.ClientName,
		ClientPhone:  r.ClientPhone,
		ClientID:     r.ClientID,
		ServiceID:    r.ServiceID,
		Professional: selector,
		StartTime:    startTime,
		Notes:        r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует результат подтверждения в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response, loc *time.Location) *ConfirmationResponse {
	return &ConfirmationResponse{
		Outcome:     string(resp.Outcome),
		Appointment: models.FromDomainAppointment(resp.Appointment, loc),
	}
}
