package list_professionals

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
)

const msgInvalidFlag = "некорректный параметр workingOnly"

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

// Handle GET /api/v1/professionals
// Query params: workingOnly (по умолчанию true, для выбора профессионала при записи)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	workingOnly := true
	if v := r.URL.Query().Get("workingOnly"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			h.logger.Warn("GET /professionals - Invalid workingOnly: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFlag)
			return
		}
		workingOnly = parsed
	}

	session, _ := middleware.GetSession(r.Context())

	professionals, err := h.service.ListProfessionals(r.Context(), session, workingOnly)
	if err != nil {
		h.logger.Error("GET /professionals - Failed to list professionals: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /professionals - Professionals retrieved successfully: count=%d, working_only=%t",
		len(professionals.Professionals), workingOnly)
	handlers.RespondJSON(w, http.StatusOK, professionals)
}
