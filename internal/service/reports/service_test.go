package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

type revenueCall struct {
	from, to time.Time
}

type fakeRepo struct {
	counts       map[domain.AppointmentStatus]int
	revenue      map[time.Time]*domain.RevenueSummary
	byPro        []*domain.ProfessionalRevenue
	revenueCalls []revenueCall
	err          error
}

func (f *fakeRepo) CountByStatus(_ context.Context, _, _ time.Time) (map[domain.AppointmentStatus]int, error) {
	return f.counts, f.err
}

func (f *fakeRepo) GetRevenueSummary(_ context.Context, from, to time.Time) (*domain.RevenueSummary, error) {
	f.revenueCalls = append(f.revenueCalls, revenueCall{from: from, to: to})
	if s, ok := f.revenue[from.UTC()]; ok {
		return s, nil
	}
	return &domain.RevenueSummary{}, nil
}

func (f *fakeRepo) GetRevenueByProfessional(_ context.Context, _, _ time.Time) ([]*domain.ProfessionalRevenue, error) {
	return f.byPro, nil
}

type fakeTx struct {
	calls int
}

func (f *fakeTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

func TestService_Overview(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	proID := uuid.New()
	repo := &fakeRepo{
		counts: map[domain.AppointmentStatus]int{domain.StatusScheduled: 3, domain.StatusCompleted: 2},
		revenue: map[time.Time]*domain.RevenueSummary{
			time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC): {AppointmentsCount: 2, Total: 130},
			time.Date(2026, 3, 9, 3, 0, 0, 0, time.UTC):  {AppointmentsCount: 5, Total: 400},
			time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC):  {AppointmentsCount: 20, Total: 1800},
		},
		byPro: []*domain.ProfessionalRevenue{
			{ProfessionalID: proID, FullName: "Ana", AppointmentsCount: 12, Total: 1000, CommissionPercentage: ptr.Ptr(40.0)},
		},
	}
	tx := &fakeTx{}
	svc := NewService(repo, tx, loc, logger.NewNop()).
		WithTimeProvider(fixedTime{now: time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)})

	resp, err := svc.Overview(context.Background(), &domain.Session{Role: domain.RoleAdmin})

	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, "America/Sao_Paulo", resp.Timezone)
	assert.Equal(t, "2026-03-10", resp.Today)

	assert.Equal(t, 3, resp.TodayByStatus["scheduled"])
	assert.Equal(t, 2, resp.TodayByStatus["completed"])
	assert.Equal(t, 0, resp.TodayByStatus["canceled"])
	assert.Len(t, resp.TodayByStatus, 4)

	assert.InDelta(t, 130.0, resp.Revenue.Day.Total, 0.001)
	assert.InDelta(t, 400.0, resp.Revenue.Week.Total, 0.001)
	assert.InDelta(t, 1800.0, resp.Revenue.Month.Total, 0.001)
	assert.Equal(t, "2026-03-09T00:00:00-03:00", resp.Revenue.Week.From)

	require.Len(t, resp.Professionals, 1)
	assert.InDelta(t, 400.0, resp.Professionals[0].Commission, 0.001)
	assert.Equal(t, proID.String(), resp.Professionals[0].ProfessionalID)
}

func TestService_Overview_AdminOnly(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeTx{}, nil, logger.NewNop())

	_, err := svc.Overview(context.Background(), &domain.Session{Role: domain.RoleProfessional})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Overview(context.Background(), nil)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_Overview_RepositoryError(t *testing.T) {
	svc := NewService(&fakeRepo{err: errors.New("boom")}, &fakeTx{}, nil, logger.NewNop())

	resp, err := svc.Overview(context.Background(), &domain.Session{Role: domain.RoleAdmin})

	assert.ErrorIs(t, err, ErrInternal)
	assert.Nil(t, resp)
}
