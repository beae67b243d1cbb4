package appointments

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments/models"
)

// Service сервис для работы с записями салона
type Service struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	policy          domain.BookingPolicy
	timeProvider    TimeProvider
	logger          Logger
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	policy domain.BookingPolicy,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		policy:          policy,
		timeProvider:    realTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает запись по ID.
// Доступно администратору и профессионалу, назначенному на запись.
func (s *Service) GetByID(ctx context.Context, session *domain.Session, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%s", id, sessionUser(session))

	appointment, err := s.getAppointment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := checkAccess(session, appointment); err != nil {
		s.logger.Warn("GetByID: access denied for user=%s to appointment id=%d", sessionUser(session), id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appointment, s.policy.Location), nil
}

// DayAgenda получает расписание на день.
// Сначала идут записи в статусе scheduled, затем остальные, внутри групп по времени начала.
// Профессионал видит только свое расписание, администратор любое.
func (s *Service) DayAgenda(ctx context.Context, session *domain.Session, req *models.AgendaRequest) (*models.AgendaResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	professionalID := req.ProfessionalID
	switch {
	case session.IsAdmin():
	case session.IsProfessional():
		if professionalID == nil {
			professionalID = &session.UserID
		}
		if *professionalID != session.UserID {
			s.logger.Warn("DayAgenda: professional=%s requested agenda of %s", session.UserID, *professionalID)
			return nil, ErrAccessDenied
		}
	default:
		s.logger.Warn("DayAgenda: access denied for user=%s", sessionUser(session))
		return nil, ErrAccessDenied
	}

	day := s.policy.Today(s.timeProvider.Now())
	if !req.Day.IsZero() {
		day = s.policy.Date(req.Day)
	}

	logMsg := fmt.Sprintf("DayAgenda: fetching agenda for day=%s, user=%s", day.Format(domain.DateFormat), sessionUser(session))
	if professionalID != nil {
		logMsg += fmt.Sprintf(", professional=%s", *professionalID)
	}
	if req.IncludeCanceled {
		logMsg += ", includeCanceled=true"
	}
	s.logger.Info(logMsg)

	dayRange := s.policy.DayRange(day)
	filter := domain.AppointmentsFilter{
		ProfessionalID:  professionalID,
		From:            &dayRange.Start,
		To:              &dayRange.End,
		IncludeCanceled: req.IncludeCanceled,
	}

	appointments, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("DayAgenda: repository error: %v", err)
		return nil, fmt.Errorf("%w: DayAgenda - repository error: %v", ErrInternal, err)
	}

	sortAgenda(appointments)

	resp := &models.AgendaResponse{
		Day:          day.Format(domain.DateFormat),
		Appointments: models.FromDomainAppointmentList(appointments, s.policy.Location),
	}
	if professionalID != nil {
		id := professionalID.String()
		resp.ProfessionalID = &id
	}

	s.logger.Info("DayAgenda: successfully fetched %d appointments", len(appointments))
	return resp, nil
}

// Cancel отменяет запись.
// Отменить можно только запись в статусе scheduled.
func (s *Service) Cancel(ctx context.Context, session *domain.Session, id int64, req *models.CancelRequest) error {
	s.logger.Info("Cancel: canceling appointment id=%d by user=%s", id, sessionUser(session))

	reason := ""
	if req != nil {
		reason = strings.TrimSpace(req.Reason)
	}
	if len(reason) > domain.MaxCancellationReason {
		return fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxCancellationReason)
	}

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		appointment, err := s.getAppointment(txCtx, "Cancel", id)
		if err != nil {
			return err
		}

		if err := checkAccess(session, appointment); err != nil {
			s.logger.Warn("Cancel: access denied for user=%s to appointment id=%d", sessionUser(session), id)
			return err
		}

		// Проверяем, можно ли отменить запись
		if !appointment.CanBeCanceled() {
			s.logger.Warn("Cancel: appointment id=%d cannot be canceled, status=%s", id, appointment.Status)
			return ErrCannotCancel
		}

		if err := s.appointmentRepo.Cancel(txCtx, id, reason); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				s.logger.Warn("Cancel: appointment id=%d not found during cancellation", id)
				return ErrAppointmentNotFound
			}
			s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("Cancel: successfully canceled appointment id=%d", id)
		return nil
	})
}

// UpdateStatus переводит запись в статус completed или no_show
func (s *Service) UpdateStatus(ctx context.Context, session *domain.Session, id int64, req *models.UpdateStatusRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s by user=%s", id, req.Status, sessionUser(session))

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainFinalStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, id)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		appointment, err := s.getAppointment(txCtx, "UpdateStatus", id)
		if err != nil {
			return err
		}

		if err := checkAccess(session, appointment); err != nil {
			s.logger.Warn("UpdateStatus: access denied for user=%s to appointment id=%d", sessionUser(session), id)
			return err
		}

		if !appointment.CanChangeStatus() {
			s.logger.Warn("UpdateStatus: appointment id=%d has final status=%s", id, appointment.Status)
			return ErrCannotChangeStatus
		}

		if err := s.appointmentRepo.UpdateStatus(txCtx, id, newStatus); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				s.logger.Warn("UpdateStatus: appointment id=%d not found during update", id)
				return ErrAppointmentNotFound
			}
			s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", id, newStatus)
		return nil
	})
}

// Вспомогательные методы

func (s *Service) getAppointment(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	return appointment, nil
}

// checkAccess администратор имеет доступ ко всем записям, профессионал только к своим
func checkAccess(session *domain.Session, appointment *domain.Appointment) error {
	if session.IsAdmin() {
		return nil
	}
	if session.IsProfessional() && appointment.IsAssignedTo(session.UserID) {
		return nil
	}
	return ErrAccessDenied
}

func sortAgenda(appointments []*domain.Appointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		iScheduled := appointments[i].Status == domain.StatusScheduled
		jScheduled := appointments[j].Status == domain.StatusScheduled
		if iScheduled != jScheduled {
			return iScheduled
		}
		return appointments[i].StartTime.Before(appointments[j].StartTime)
	})
}

func sessionUser(session *domain.Session) string {
	if session == nil {
		return "anonymous"
	}
	return session.UserID.String()
}
