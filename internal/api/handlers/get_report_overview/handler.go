package get_report_overview

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/reports"
)

const (
	msgMissingSession = "требуется авторизация"
	msgForbidden      = "отчеты доступны только администратору"
)

type Handler struct {
	service ReportsService
	logger  Logger
}

func NewHandler(service ReportsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reports/overview
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("GET /reports/overview - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	overview, err := h.service.Overview(r.Context(), session)
	if err != nil {
		switch {
		case errors.Is(err, reports.ErrAccessDenied):
			h.logger.Warn("GET /reports/overview - Access denied: user_id=%s, role=%s", session.UserID, session.Role)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /reports/overview - Failed to build overview: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reports/overview - Overview built successfully: today=%s, user_id=%s", overview.Today, session.UserID)
	handlers.RespondJSON(w, http.StatusOK, overview)
}
