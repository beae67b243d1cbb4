package list_clients

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/clients"
)

const (
	msgInvalidPaging  = "некорректные параметры limit или offset"
	msgMissingSession = "требуется авторизация"
	msgForbidden      = "клиентская база доступна только сотрудникам салона"
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

// Handle GET /api/v1/clients
// Query params: search (подстрока имени или телефона), limit, offset
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("GET /clients - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	query := r.URL.Query()
	filter := domain.ClientsFilter{Search: query.Get("search")}

	var err error
	if filter.Limit, err = intParam(query.Get("limit")); err != nil {
		h.logger.Warn("GET /clients - Invalid limit: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPaging)
		return
	}
	if filter.Offset, err = intParam(query.Get("offset")); err != nil {
		h.logger.Warn("GET /clients - Invalid offset: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPaging)
		return
	}

	list, err := h.service.ListClients(r.Context(), session, filter)
	if err != nil {
		switch {
		case errors.Is(err, clients.ErrInvalidInput):
			h.logger.Warn("GET /clients - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPaging)

		case errors.Is(err, clients.ErrAccessDenied):
			h.logger.Warn("GET /clients - Access denied: user_id=%s", session.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /clients - Failed to list clients: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clients - Clients retrieved successfully: count=%d, user_id=%s", len(list.Clients), session.UserID)
	handlers.RespondJSON(w, http.StatusOK, list)
}

func intParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
