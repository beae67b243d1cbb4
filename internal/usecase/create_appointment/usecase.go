package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
)

// UseCase use case для подтверждения записи на выбранный слот
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	txManager       TransactionManager
	policy          domain.BookingPolicy
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	policy domain.BookingPolicy,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		txManager:       txManager,
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

// Execute выполняет use case подтверждения записи.
// Повторная проверка и вставка выполняются в сериализуемой транзакции,
// пересечение с чужой записью дополнительно отсекает exclusion constraint в БД.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	start := uc.policy.Local(req.StartTime)
	day := uc.policy.Date(start)
	uc.logger.Info("CreateAppointment: user=%s, service=%d, professional=%s, start=%s",
		sessionUser(req.Session), req.ServiceID, req.Professional, start.Format(time.RFC3339))

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация даты
	if err := validateDate(uc.policy, day, now); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем услугу
	service, err := uc.catalogRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if err := validateService(service); err != nil {
		uc.logger.Warn("CreateAppointment: service id=%d rejected: %v", req.ServiceID, err)
		return nil, err
	}

	// 5. Проверяем, что время совпадает со слотом
	candidate := domain.TimeRange{
		Start: start,
		End:   start.Add(time.Duration(service.AverageDurationMinutes) * time.Minute),
	}
	if err := validateSlot(uc.policy, candidate, now); err != nil {
		uc.logger.Warn("CreateAppointment: slot validation failed: %v", err)
		return nil, err
	}

	var result *domain.Appointment

	// 6. Повторная проверка и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Профессионалы, среди которых ищем свободного
		roster, err := uc.resolveRoster(txCtx, req.Professional)
		if err != nil {
			return err
		}

		// 6.2. Получаем записи дня с блокировкой (FOR UPDATE)
		dayRange := uc.policy.DayRange(day)
		filter := domain.AppointmentsFilter{
			ProfessionalID: req.Professional.ProfessionalID,
			From:           &dayRange.Start,
			To:             &dayRange.End,
			ForUpdate:      true,
		}

		appointments, err := uc.appointmentRepo.List(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("failed to get appointments: %w", err)
		}

		// 6.3. Выбираем первого свободного профессионала в порядке списка
		free := domain.FreeProfessionals(candidate, roster, appointments)
		if len(free) == 0 {
			return errNoFreeProfessional
		}

		professionalID := free[0]
		appointment := &domain.Appointment{
			ClientName:     req.ClientName,
			ClientPhone:    req.ClientPhone,
			ClientID:       req.ClientID,
			ProfessionalID: &professionalID,
			ServiceID:      service.ID,
			StartTime:      candidate.Start,
			EndTime:        candidate.End,
			Status:         domain.StatusScheduled,
			Notes:          req.Notes,
			CreatedBy:      sessionUserID(req.Session),
			// Денормализация данных услуги
			ServiceName:  service.Name,
			ServicePrice: service.Price,
		}

		// 6.4. Сохраняем запись
		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}

		result = created
		return nil
	})

	outcome, err := uc.classify(err)
	if err != nil {
		return nil, err
	}
	uc.metrics.IncConfirmation(string(outcome))

	if outcome != OutcomeConfirmed {
		return &Response{Outcome: outcome}, nil
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d for professional=%s",
		result.ID, result.ProfessionalID)

	return &Response{Outcome: OutcomeConfirmed, Appointment: result}, nil
}

// classify переводит ошибку транзакции в результат подтверждения.
// Ошибки валидации и внутренние ошибки возвращаются как есть.
func (uc *UseCase) classify(err error) (Outcome, error) {
	switch {
	case err == nil:
		return OutcomeConfirmed, nil
	case errors.Is(err, errNoFreeProfessional):
		uc.logger.Warn("CreateAppointment: slot taken before confirmation")
		return OutcomeSlotNoLongerAvailable, nil
	case appointmentRepo.IsSlotTaken(err):
		uc.logger.Warn("CreateAppointment: slot taken by concurrent booking: %v", err)
		return OutcomeSlotNoLongerAvailable, nil
	case appointmentRepo.IsRetryable(err), errors.Is(err, errRetryable):
		uc.logger.Warn("CreateAppointment: transaction conflict: %v", err)
		return OutcomeTransientError, nil
	case errors.Is(err, ErrProfessionalNotFound), errors.Is(err, ErrProfessionalNotWorking), errors.Is(err, ErrInternal):
		return "", err
	default:
		uc.logger.Error("CreateAppointment: transaction failed: %v", err)
		return "", fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

// resolveRoster возвращает профессионалов, среди которых выбирается исполнитель
func (uc *UseCase) resolveRoster(ctx context.Context, selector domain.ProfessionalSelector) ([]uuid.UUID, error) {
	if selector.IsAny() {
		professionals, err := uc.catalogRepo.ListProfessionals(ctx, true)
		if err != nil {
			if catalogRepo.IsRetryable(err) {
				return nil, fmt.Errorf("%w: list professionals: %v", errRetryable, err)
			}
			uc.logger.Error("CreateAppointment: failed to list professionals: %v", err)
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
			uc.logger.Warn("CreateAppointment: professional id=%s not found", selector)
			return nil, ErrProfessionalNotFound
		}
		if catalogRepo.IsRetryable(err) {
			return nil, fmt.Errorf("%w: get professional: %v", errRetryable, err)
		}
		uc.logger.Error("CreateAppointment: failed to get professional id=%s: %v", selector, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}

	if !professional.IsWorking {
		uc.logger.Warn("CreateAppointment: professional id=%s is not working", selector)
		return nil, ErrProfessionalNotWorking
	}

	return []uuid.UUID{professional.ID}, nil
}

func sessionUser(session *domain.Session) string {
	if session == nil {
		return "anonymous"
	}
	return session.UserID.String()
}

func sessionUserID(session *domain.Session) *uuid.UUID {
	if session == nil {
		return nil
	}
	id := session.UserID
	return &id
}
