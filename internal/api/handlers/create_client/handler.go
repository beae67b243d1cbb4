package create_client

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/clients"
	"github.com/m04kA/SMC-SalonBooking/internal/service/clients/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса, ожидаются fullName и phone"
	msgMissingSession     = "требуется авторизация"
	msgForbidden          = "клиентская база доступна только сотрудникам салона"
)

type Handler struct {
	service ClientsService
	logger  Logger
}

func NewHandler(service ClientsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/clients
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("POST /clients - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	var req models.CreateClientRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /clients - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	client, err := h.service.CreateClient(r.Context(), session, &req)
	if err != nil {
		switch {
		case errors.Is(err, clients.ErrInvalidInput):
			h.logger.Warn("POST /clients - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, clients.ErrAccessDenied):
			h.logger.Warn("POST /clients - Access denied: user_id=%s", session.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /clients - Failed to create client: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /clients - Client created: id=%d, user_id=%s", client.ID, session.UserID)
	handlers.RespondJSON(w, http.StatusCreated, client)
}
