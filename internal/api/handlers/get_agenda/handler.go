package get_agenda

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments"
)

const (
	msgInvalidQuery   = "некорректные параметры: date (YYYY-MM-DD), professionalId (UUID), includeCanceled (bool)"
	msgMissingSession = "требуется авторизация"
	msgForbidden      = "доступ запрещен"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/agenda
// Query params: date (по умолчанию сегодня), professionalId, includeCanceled
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("GET /agenda - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	req, err := ToServiceRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /agenda - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	agenda, err := h.service.DayAgenda(r.Context(), session, req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /agenda - Access denied: user_id=%s, role=%s", session.UserID, session.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /agenda - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /agenda - Failed to get agenda: user_id=%s, error=%v", session.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /agenda - Agenda retrieved successfully: day=%s, user_id=%s, count=%d",
		agenda.Day, session.UserID, len(agenda.Appointments))
	handlers.RespondJSON(w, http.StatusOK, agenda)
}
