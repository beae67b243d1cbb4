package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
)

const (
	msgInvalidServiceID       = "некорректный ID услуги"
	msgMissingDate            = "дата обязательна"
	msgInvalidDate            = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidProfessional    = "некорректный профессионал, ожидается UUID или any"
	msgInvalidInput           = "некорректные параметры запроса"
	msgPastDate               = "нельзя записаться на прошедшую дату"
	msgDateTooFar             = "дата записи слишком далеко в будущем"
	msgServiceNotFound        = "услуга не найдена"
	msgServiceInactive        = "услуга недоступна для записи"
	msgProfessionalNotFound   = "профессионал не найден"
	msgProfessionalNotWorking = "профессионал сейчас не принимает записи"
)

var (
	errInvalidDate         = errors.New("invalid date")
	errInvalidProfessional = errors.New("invalid professional")
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/available-slots
// Query params: date (required, YYYY-MM-DD), professional (UUID или any, по умолчанию any)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := strconv.ParseInt(mux.Vars(r)["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /services/{id}/available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	query := r.URL.Query()
	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /services/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Сессия необязательна: слоты доступны анонимным клиентам
	session, _ := middleware.GetSession(r.Context())

	useCaseReq, err := ToUseCaseRequest(session, serviceID, dateStr, query.Get("professional"))
	if err != nil {
		h.logger.Warn("GET /services/{id}/available-slots - Invalid query: %v", err)
		if errors.Is(err, errInvalidProfessional) {
			handlers.RespondBadRequest(w, msgInvalidProfessional)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /services/{id}/available-slots - Invalid input: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /services/{id}/available-slots - Past date: service_id=%d, date=%s", serviceID, dateStr)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /services/{id}/available-slots - Date too far: service_id=%d, date=%s", serviceID, dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /services/{id}/available-slots - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrProfessionalNotFound):
			h.logger.Warn("GET /services/{id}/available-slots - Professional not found: professional=%s", useCaseReq.Professional)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceInactive):
			h.logger.Warn("GET /services/{id}/available-slots - Service inactive: service_id=%d", serviceID)
			handlers.RespondUnprocessable(w, msgServiceInactive)

		case errors.Is(err, getAvailableSlots.ErrProfessionalNotWorking):
			h.logger.Warn("GET /services/{id}/available-slots - Professional not working: professional=%s", useCaseReq.Professional)
			handlers.RespondUnprocessable(w, msgProfessionalNotWorking)

		default:
			h.logger.Error("GET /services/{id}/available-slots - Failed to get slots: service_id=%d, date=%s, error=%v",
				serviceID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /services/{id}/available-slots - Slots retrieved successfully: service_id=%d, date=%s, professional=%s, slots_count=%d",
		serviceID, dateStr, result.Professional, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
