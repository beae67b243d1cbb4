package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/reports/models"
)

// Service сервис отчетов для администратора.
// Границы дня, недели и месяца считаются в часовом поясе салона.
type Service struct {
	repo         ReportsRepository
	txManager    TransactionManager
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}

// NewService создает новый экземпляр сервиса отчетов
func NewService(repo ReportsRepository, txManager TransactionManager, location *time.Location, logger Logger) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		repo:         repo,
		txManager:    txManager,
		location:     location,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Overview собирает сводку: записи за сегодня по статусам,
// выручку за день, неделю и месяц и комиссии профессионалов за месяц
func (s *Service) Overview(ctx context.Context, session *domain.Session) (*models.OverviewResponse, error) {
	if !session.IsAdmin() {
		s.logger.Warn("Overview: access denied for non-admin user")
		return nil, ErrAccessDenied
	}

	period := periodsAt(s.timeProvider.Now(), s.location)
	s.logger.Info("Overview: building overview for day=%s, user=%s", period.Day.Start.Format(domain.DateFormat), session.UserID)

	resp := &models.OverviewResponse{
		Timezone:      s.location.String(),
		Today:         period.Day.Start.Format(domain.DateFormat),
		TodayByStatus: make(map[string]int, len(domain.AllStatuses)),
	}

	// Все агрегаты читаются из одного снимка данных
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		counts, err := s.repo.CountByStatus(txCtx, period.Day.Start, period.Day.End)
		if err != nil {
			return fmt.Errorf("count by status: %v", err)
		}
		for _, status := range domain.AllStatuses {
			resp.TodayByStatus[string(status)] = counts[status]
		}

		if resp.Revenue.Day, err = s.revenue(txCtx, period.Day); err != nil {
			return err
		}
		if resp.Revenue.Week, err = s.revenue(txCtx, period.Week); err != nil {
			return err
		}
		if resp.Revenue.Month, err = s.revenue(txCtx, period.Month); err != nil {
			return err
		}

		professionals, err := s.repo.GetRevenueByProfessional(txCtx, period.Month.Start, period.Month.End)
		if err != nil {
			return fmt.Errorf("revenue by professional: %v", err)
		}
		resp.Professionals = make([]models.ProfessionalRevenueResponse, 0, len(professionals))
		for _, p := range professionals {
			resp.Professionals = append(resp.Professionals, models.ProfessionalRevenueResponse{
				ProfessionalID:       p.ProfessionalID.String(),
				FullName:             p.FullName,
				AppointmentsCount:    p.AppointmentsCount,
				Total:                p.Total,
				CommissionPercentage: p.CommissionPercentage,
				Commission:           p.Commission(),
			})
		}

		return nil
	})
	if err != nil {
		s.logger.Error("Overview: failed to build overview: %v", err)
		return nil, fmt.Errorf("%w: Overview - %v", ErrInternal, err)
	}

	s.logger.Info("Overview: month revenue=%.2f from %d appointments", resp.Revenue.Month.Total, resp.Revenue.Month.AppointmentsCount)
	return resp, nil
}

func (s *Service) revenue(ctx context.Context, r domain.TimeRange) (models.RevenueResponse, error) {
	summary, err := s.repo.GetRevenueSummary(ctx, r.Start, r.End)
	if err != nil {
		return models.RevenueResponse{}, fmt.Errorf("revenue %s-%s: %v",
			r.Start.Format(domain.DateFormat), r.End.Format(domain.DateFormat), err)
	}

	return models.RevenueResponse{
		From:              r.Start.Format(time.RFC3339),
		To:                r.End.Format(time.RFC3339),
		AppointmentsCount: summary.AppointmentsCount,
		Total:             summary.Total,
	}, nil
}
