package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
)

// UseCase use case для получения доступных слотов для записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	policy          domain.BookingPolicy
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	policy domain.BookingPolicy,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		policy:          policy,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных до любых запросов
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	day := uc.policy.Date(req.Day)
	uc.logger.Info("GetAvailableSlots: user=%s, service=%d, professional=%s, day=%s",
		sessionUser(req.Session), req.ServiceID, req.Professional, day.Format(domain.DateFormat))

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация даты
	if err := validateDate(uc.policy, day, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем услугу
	service, err := uc.catalogRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if err := validateService(service); err != nil {
		uc.logger.Warn("GetAvailableSlots: service id=%d rejected: %v", req.ServiceID, err)
		return nil, err
	}

	response := &Response{
		Day:             day,
		ServiceID:       req.ServiceID,
		Professional:    req.Professional,
		DurationMinutes: service.AverageDurationMinutes,
		Slots:           []Slot{},
	}

	// 5. Получаем список профессионалов, среди которых ищем свободное время
	roster, err := uc.resolveRoster(ctx, req.Professional)
	if err != nil {
		return nil, err
	}

	// 6. В выходной день слотов нет
	if !uc.policy.Hours.IsOpenOn(day) {
		uc.logger.Info("GetAvailableSlots: salon is closed on %s", day.Format(domain.DateFormat))
		return response, nil
	}

	// 7. Получаем записи, пересекающиеся с днем
	dayRange := uc.policy.DayRange(day)
	filter := domain.AppointmentsFilter{
		ProfessionalID: req.Professional.ProfessionalID,
		From:           &dayRange.Start,
		To:             &dayRange.End,
	}

	appointments, err := uc.appointmentRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 8. Генерируем кандидатов и отбрасываем занятые
	candidates := generateCandidates(
		uc.policy.Hours,
		day,
		service.AverageDurationMinutes,
		uc.policy.EarliestStart(now),
	)
	response.Slots = calculateSlots(candidates, roster, appointments)

	uc.metrics.IncSlotsComputed(selectorLabel(req.Professional))
	uc.logger.Info("GetAvailableSlots: generated %d of %d slots for service=%d, professional=%s, day=%s",
		len(response.Slots), len(candidates), req.ServiceID, req.Professional, day.Format(domain.DateFormat))

	return response, nil
}

// resolveRoster возвращает профессионалов, для которых считаются слоты.
// Для "любого" это все работающие профессионалы в порядке списка сотрудников.
func (uc *UseCase) resolveRoster(ctx context.Context, selector domain.ProfessionalSelector) ([]uuid.UUID, error) {
	if selector.IsAny() {
		professionals, err := uc.catalogRepo.ListProfessionals(ctx, true)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to list professionals: %v", err)
			return nil, fmt.Errorf("%w: failed to list professionals: %v", ErrInternal, err)
		}

		roster := make([]uuid.UUID, 0, len(professionals))
		for _, p := range professionals {
			roster = append(roster, p.ID)
		}
		return roster, nil
	}

	professional, err := uc.catalogRepo.GetProfessionalByID(ctx, *selector.ProfessionalID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			uc.logger.Warn("GetAvailableSlots: professional id=%s not found", selector)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get professional id=%s: %v", selector, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}

	if !professional.IsWorking {
		uc.logger.Warn("GetAvailableSlots: professional id=%s is not working", selector)
		return nil, ErrProfessionalNotWorking
	}

	return []uuid.UUID{professional.ID}, nil
}

func selectorLabel(selector domain.ProfessionalSelector) string {
	if selector.IsAny() {
		return "any"
	}
	return "specific"
}

func sessionUser(session *domain.Session) string {
	if session == nil {
		return "anonymous"
	}
	return session.UserID.String()
}
