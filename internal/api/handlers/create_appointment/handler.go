package create_appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	createAppointment "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidStartTime       = "некорректное время начала, ожидается RFC 3339"
	msgInvalidProfessional    = "некорректный профессионал, ожидается UUID или any"
	msgInvalidInput           = "некорректные данные записи"
	msgPastDate               = "нельзя записаться на прошедшую дату"
	msgDateTooFar             = "дата записи слишком далеко в будущем"
	msgInvalidTimeSlot        = "время не совпадает ни с одним слотом"
	msgServiceNotFound        = "услуга не найдена"
	msgProfessionalNotFound   = "профессионал не найден"
	msgServiceInactive        = "услуга недоступна для записи"
	msgProfessionalNotWorking = "профессионал сейчас не принимает записи"
	msgSalonClosed            = "салон не работает в выбранную дату"
	msgTooLateToBook          = "слишком поздно для записи на это время"
	msgSlotNoLongerAvailable  = "slot no longer available, please pick another"
	msgTransientError         = "не удалось подтвердить запись, повторите попытку"
)

var (
	errInvalidStartTime    = errors.New("invalid start time")
	errInvalidProfessional = errors.New("invalid professional")
)

type Handler struct {
	useCase  CreateAppointmentUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateAppointmentUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Сессия необязательна: клиент может записаться без входа
	session, _ := middleware.GetSession(r.Context())

	useCaseReq, err := req.ToUseCaseRequest(session)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidProfessional) {
			handlers.RespondBadRequest(w, msgInvalidProfessional)
		} else {
			handlers.RespondBadRequest(w, msgInvalidStartTime)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Past date: service_id=%d, start=%s", req.ServiceID, req.StartTime)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, createAppointment.ErrDateTooFarInFuture):
			h.logger.Warn("POST /appointments - Date too far: service_id=%d, start=%s", req.ServiceID, req.StartTime)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("POST /appointments - Invalid time slot: service_id=%d, start=%s", req.ServiceID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrProfessionalNotFound):
			h.logger.Warn("POST /appointments - Professional not found: professional=%s", useCaseReq.Professional)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, createAppointment.ErrServiceInactive):
			h.logger.Warn("POST /appointments - Service inactive: service_id=%d", req.ServiceID)
			handlers.RespondUnprocessable(w, msgServiceInactive)

		case errors.Is(err, createAppointment.ErrProfessionalNotWorking):
			h.logger.Warn("POST /appointments - Professional not working: professional=%s", useCaseReq.Professional)
			handlers.RespondUnprocessable(w, msgProfessionalNotWorking)

		case errors.Is(err, createAppointment.ErrSalonClosed):
			h.logger.Warn("POST /appointments - Salon closed: start=%s", req.StartTime)
			handlers.RespondUnprocessable(w, msgSalonClosed)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: start=%s", req.StartTime)
			handlers.RespondUnprocessable(w, msgTooLateToBook)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: service_id=%d, start=%s, error=%v",
				req.ServiceID, req.StartTime, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result, h.location)

	switch result.Outcome {
	case createAppointment.OutcomeConfirmed:
		h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, professional=%s",
			result.Appointment.ID, result.Appointment.ProfessionalID)
		handlers.RespondJSON(w, http.StatusCreated, response)

	case createAppointment.OutcomeSlotNoLongerAvailable:
		h.logger.Warn("POST /appointments - Slot no longer available: service_id=%d, professional=%s, start=%s",
			req.ServiceID, useCaseReq.Professional, req.StartTime)
		response.Error = msgSlotNoLongerAvailable
		handlers.RespondJSON(w, http.StatusConflict, response)

	case createAppointment.OutcomeTransientError:
		h.logger.Warn("POST /appointments - Transient error: service_id=%d, start=%s", req.ServiceID, req.StartTime)
		response.Error = msgTransientError
		w.Header().Set("Retry-After", "1")
		handlers.RespondJSON(w, http.StatusServiceUnavailable, response)

	default:
		h.logger.Error("POST /appointments - Unknown outcome: %s", result.Outcome)
		handlers.RespondInternalError(w)
	}
}
