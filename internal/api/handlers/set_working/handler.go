package set_working

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
)

const (
	msgInvalidProfessionalID = "некорректный ID профессионала"
	msgInvalidRequestBody    = "некорректное тело запроса, ожидается isWorking"
	msgMissingSession        = "требуется авторизация"
	msgForbidden             = "доступ запрещен"
	msgNotFound              = "профессионал не найден"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/professionals/{professionalId}/working
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionalID, err := uuid.Parse(mux.Vars(r)["professionalId"])
	if err != nil {
		h.logger.Warn("PATCH /professionals/{id}/working - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("PATCH /professionals/{id}/working - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	var req models.SetWorkingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /professionals/{id}/working - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	professional, err := h.service.SetWorking(r.Context(), session, professionalID, &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PATCH /professionals/{id}/working - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("PATCH /professionals/{id}/working - Access denied: professional=%s, user_id=%s",
				professionalID, session.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrProfessionalNotFound):
			h.logger.Warn("PATCH /professionals/{id}/working - Professional not found: professional=%s", professionalID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /professionals/{id}/working - Failed to update: professional=%s, error=%v", professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /professionals/{id}/working - Updated successfully: professional=%s, is_working=%t, user_id=%s",
		professionalID, professional.IsWorking, session.UserID)
	handlers.RespondJSON(w, http.StatusOK, professional)
}
