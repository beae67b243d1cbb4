package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var testDay = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func clock(hour, minute int) time.Time {
	return testDay.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

type fakeAppointments struct {
	existing  []*domain.Appointment
	listErr   error
	createErr error
	created   []*domain.Appointment
	filters   []domain.AppointmentsFilter
}

func (f *fakeAppointments) List(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	f.filters = append(f.filters, filter)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.existing, nil
}

func (f *fakeAppointments) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	a.ID = int64(len(f.created) + 1)
	f.created = append(f.created, a)
	return a, nil
}

type fakeCatalog struct {
	professionals []*domain.Professional
	rosterErr     error
}

func (f *fakeCatalog) GetServiceByID(_ context.Context, id int64) (*domain.Service, error) {
	switch id {
	case 1:
		return &domain.Service{ID: 1, Name: "Corte", Price: 80, AverageDurationMinutes: 60, Active: true}, nil
	case 2:
		return &domain.Service{ID: 2, Name: "Escova", Price: 50, AverageDurationMinutes: 30, Active: false}, nil
	default:
		return nil, catalogRepo.ErrServiceNotFound
	}
}

func (f *fakeCatalog) GetProfessionalByID(_ context.Context, id uuid.UUID) (*domain.Professional, error) {
	if f.rosterErr != nil {
		return nil, f.rosterErr
	}
	for _, p := range f.professionals {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, catalogRepo.ErrProfessionalNotFound
}

func (f *fakeCatalog) ListProfessionals(_ context.Context, workingOnly bool) ([]*domain.Professional, error) {
	if f.rosterErr != nil {
		return nil, f.rosterErr
	}
	result := make([]*domain.Professional, 0)
	for _, p := range f.professionals {
		if workingOnly && !p.IsWorking {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

// fakeTx выполняет функцию без транзакции и может вернуть ошибку коммита
type fakeTx struct {
	commitErr error
	calls     int
}

func (f *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if err := fn(ctx); err != nil {
		return err
	}
	return f.commitErr
}

type fakeMetrics struct {
	outcomes []string
}

func (m *fakeMetrics) IncConfirmation(outcome string) {
	m.outcomes = append(m.outcomes, outcome)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type fixture struct {
	uc           *UseCase
	appointments *fakeAppointments
	catalog      *fakeCatalog
	tx           *fakeTx
	metrics      *fakeMetrics
	ana, bia     uuid.UUID
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	ana, bia := uuid.New(), uuid.New()

	f := &fixture{
		appointments: &fakeAppointments{},
		catalog: &fakeCatalog{professionals: []*domain.Professional{
			{ID: ana, FullName: "Ana", IsWorking: true},
			{ID: bia, FullName: "Bia", IsWorking: true},
		}},
		tx:      &fakeTx{},
		metrics: &fakeMetrics{},
		ana:     ana,
		bia:     bia,
	}

	policy := domain.BookingPolicy{
		Hours: domain.BusinessHours{
			Open:           types.TimeString("09:00"),
			Close:          types.TimeString("18:00"),
			StepMinutes:    30,
			ClosedWeekdays: []time.Weekday{time.Sunday},
		},
		Location:         time.UTC,
		MinNoticeMinutes: 0,
	}

	f.uc = NewUseCase(f.appointments, f.catalog, f.tx, policy, f.metrics, logger.NewNop()).
		WithTimeProvider(fixedTime{now: now})
	return f
}

func validRequest(start time.Time, selector domain.ProfessionalSelector) *Request {
	return &Request{
		ClientName:   "Maria",
		ClientPhone:  "+5511999990000",
		ServiceID:    1,
		Professional: selector,
		StartTime:    start,
		Notes:        ptr.Ptr("primeira vez"),
	}
}

func scheduled(professional uuid.UUID, start, end time.Time) *domain.Appointment {
	return &domain.Appointment{ProfessionalID: &professional, StartTime: start, EndTime: end, Status: domain.StatusScheduled}
}

func TestExecute_ConfirmsSpecificProfessional(t *testing.T) {
	f := newFixture(t, time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC))
	session := &domain.Session{UserID: uuid.New(), Role: domain.RoleClient}
	req := validRequest(clock(11, 0), domain.SpecificProfessional(f.ana))
	req.Session = session
	f.appointments.existing = []*domain.Appointment{scheduled(f.ana, clock(10, 0), clock(11, 0))}

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, OutcomeConfirmed, resp.Outcome)
	require.NotNil(t, resp.Appointment)

	a := resp.Appointment
	assert.Equal(t, f.ana, *a.ProfessionalID)
	assert.Equal(t, clock(11, 0), a.StartTime)
	assert.Equal(t, clock(12, 0), a.EndTime)
	assert.Equal(t, domain.StatusScheduled, a.Status)
	assert.Equal(t, "Corte", a.ServiceName)
	assert.InDelta(t, 80.0, a.ServicePrice, 0.001)
	assert.Equal(t, session.UserID, *a.CreatedBy)

	require.Len(t, f.appointments.filters, 1)
	assert.True(t, f.appointments.filters[0].ForUpdate)
	assert.Equal(t, f.ana, *f.appointments.filters[0].ProfessionalID)
	assert.Equal(t, []string{"confirmed"}, f.metrics.outcomes)
}

func TestExecute_AnyAssignsFirstFreeProfessional(t *testing.T) {
	f := newFixture(t, time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC))
	f.appointments.existing = []*domain.Appointment{scheduled(f.ana, clock(9, 30), clock(10, 30))}

	resp, err := f.uc.Execute(context.Background(), validRequest(clock(10, 0), domain.AnyProfessional()))

	require.NoError(t, err)
	assert.Equal(t, OutcomeConfirmed, resp.Outcome)
	assert.Equal(t, f.bia, *resp.Appointment.ProfessionalID)
	assert.Nil(t, resp.Appointment.CreatedBy)
	assert.Nil(t, f.appointments.filters[0].ProfessionalID)
}

func TestExecute_SlotTakenBeforeConfirmation(t *testing.T) {
	f := newFixture(t, time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC))
	f.appointments.existing = []*domain.Appointment{scheduled(f.ana, clock(10, 30), clock(11, 30))}

	resp, err := f.uc.Execute(context.Background(), validRequest(clock(10, 0), domain.SpecificProfessional(f.ana)))

	require.NoError(t, err)
	assert.Equal(t, OutcomeSlotNoLongerAvailable, resp.Outcome)
	assert.Nil(t, resp.Appointment)
	assert.Empty(t, f.appointments.created)
	assert.Equal(t, []string{"slot_no_longer_available"}, f.metrics.outcomes)
}

func TestExecute_ExclusionViolation(t *testing.T) {
	f := newFixture(t, time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC))
	f.appointments.createErr = fmt.Errorf("%w: Create: %v", appointmentRepo.ErrSlotTaken, &pq.Error{Code: "23P01"})

	resp, err := f.uc.Execute(context.Background(), validRequest(clock(10, 0), domain.SpecificProfessional(f.ana)))

	require.NoError(t, err)
	assert.Equal(t, OutcomeSlotNoLongerAvailable, resp.Outcome)
}

func TestExecute_SerializationFailureOnCommit(t *testing.T) {
	f := newFixture(t, time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC))
	f.tx.commitErr = fmt.Errorf("commit: %w", &pq.Error{Code: "40001"})

	resp, err := f.uc.Execute(context.Background(), validRequest(clock(10, 0), domain.SpecificProfessional(f.ana)))

	require.NoError(t, err)
	assert.Equal(t, OutcomeTransientError, resp.Outcome)
	assert.Equal(t, []string{"transient_error"}, f.metrics.outcomes)
}

func TestExecute_SerializationFailureWhileReadingRoster(t *testing.T) {
	selectors := map[string]func(f *fixture) domain.ProfessionalSelector{
		"any":      func(_ *fixture) domain.ProfessionalSelector { return domain.AnyProfessional() },
		"specific": func(f *fixture) domain.ProfessionalSelector { return domain.SpecificProfessional(f.ana) },
	}

	for name, selector := range selectors {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC))
			f.catalog.rosterErr = fmt.Errorf("%w: ListProfessionals - execute query: %v",
				catalogRepo.ErrConcurrentUpdate, &pq.Error{Code: "40001"})

			resp, err := f.uc.Execute(context.Background(), validRequest(clock(10, 0), selector(f)))

			require.NoError(t, err)
			assert.Equal(t, OutcomeTransientError, resp.Outcome)
			assert.Equal(t, []string{"transient_error"}, f.metrics.outcomes)
		})
	}
}

func TestExecute_RosterFailureIsInternal(t *testing.T) {
	f := newFixture(t, time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC))
	f.catalog.rosterErr = fmt.Errorf("%w: connection reset", catalogRepo.ErrExecQuery)

	resp, err := f.uc.Execute(context.Background(), validRequest(clock(10, 0), domain.AnyProfessional()))

	assert.ErrorIs(t, err, ErrInternal)
	assert.Nil(t, resp)
}

func TestExecute_DaylightSavingDayKeepsBusinessHours(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	f := newFixture(t, time.Date(2026, 3, 28, 8, 0, 0, 0, time.UTC))
	f.uc.policy.Location = berlin
	f.uc.policy.Hours.ClosedWeekdays = nil

	first, err := f.uc.Execute(context.Background(),
		validRequest(time.Date(2026, 3, 29, 9, 0, 0, 0, berlin), domain.SpecificProfessional(f.ana)))
	require.NoError(t, err)
	require.Equal(t, OutcomeConfirmed, first.Outcome)
	assert.Equal(t, 9, first.Appointment.StartTime.In(berlin).Hour())

	last, err := f.uc.Execute(context.Background(),
		validRequest(time.Date(2026, 3, 29, 17, 0, 0, 0, berlin), domain.SpecificProfessional(f.bia)))
	require.NoError(t, err)
	require.Equal(t, OutcomeConfirmed, last.Outcome)
	assert.Equal(t, 18, last.Appointment.EndTime.In(berlin).Hour())

	_, err = f.uc.Execute(context.Background(),
		validRequest(time.Date(2026, 3, 29, 17, 30, 0, 0, berlin), domain.SpecificProfessional(f.bia)))
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_StorageFailureIsInternal(t *testing.T) {
	f := newFixture(t, time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC))
	f.appointments.listErr = errors.New("connection reset")

	resp, err := f.uc.Execute(context.Background(), validRequest(clock(10, 0), domain.SpecificProfessional(f.ana)))

	assert.ErrorIs(t, err, ErrInternal)
	assert.Nil(t, resp)
	assert.Empty(t, f.metrics.outcomes)
}

func TestExecute_Rejections(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 10, 0, 0, time.UTC)

	tests := []struct {
		name    string
		modify  func(f *fixture, req *Request)
		wantErr error
	}{
		{
			name:    "empty client name",
			modify:  func(_ *fixture, req *Request) { req.ClientName = " " },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing phone",
			modify:  func(_ *fixture, req *Request) { req.ClientPhone = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "past day",
			modify:  func(_ *fixture, req *Request) { req.StartTime = clock(15, 0).AddDate(0, 0, -1) },
			wantErr: ErrInvalidDate,
		},
		{
			name:    "closed weekday",
			modify:  func(_ *fixture, req *Request) { req.StartTime = clock(15, 0).AddDate(0, 0, 5) },
			wantErr: ErrSalonClosed,
		},
		{
			name:    "misaligned start",
			modify:  func(_ *fixture, req *Request) { req.StartTime = clock(15, 10) },
			wantErr: ErrInvalidTimeSlot,
		},
		{
			name:    "ends after close",
			modify:  func(_ *fixture, req *Request) { req.StartTime = clock(17, 30) },
			wantErr: ErrInvalidTimeSlot,
		},
		{
			name:    "start already passed",
			modify:  func(_ *fixture, req *Request) { req.StartTime = clock(14, 0) },
			wantErr: ErrTooLateToBook,
		},
		{
			name:    "inactive service",
			modify:  func(_ *fixture, req *Request) { req.ServiceID = 2 },
			wantErr: ErrServiceInactive,
		},
		{
			name:    "unknown service",
			modify:  func(_ *fixture, req *Request) { req.ServiceID = 42 },
			wantErr: ErrServiceNotFound,
		},
		{
			name: "professional not working",
			modify: func(f *fixture, req *Request) {
				f.catalog.professionals[0].IsWorking = false
			},
			wantErr: ErrProfessionalNotWorking,
		},
		{
			name: "unknown professional",
			modify: func(_ *fixture, req *Request) {
				req.Professional = domain.SpecificProfessional(uuid.New())
			},
			wantErr: ErrProfessionalNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, now)
			req := validRequest(clock(15, 0), domain.SpecificProfessional(f.ana))
			tt.modify(f, req)

			resp, err := f.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, resp)
			assert.Empty(t, f.appointments.created)
			assert.Empty(t, f.metrics.outcomes)
		})
	}
}

func TestExecute_SalonTimezoneAlignment(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	f := newFixture(t, time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC))
	f.uc.policy.Location = loc

	// 12:00 UTC = 09:00 в Сан-Паулу, первый слот дня
	resp, err := f.uc.Execute(context.Background(), validRequest(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), domain.AnyProfessional()))

	require.NoError(t, err)
	assert.Equal(t, OutcomeConfirmed, resp.Outcome)
	assert.Equal(t, time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC), f.appointments.filters[0].From.UTC())

	// 09:00 UTC = 06:00 в Сан-Паулу, до открытия
	_, err = f.uc.Execute(context.Background(), validRequest(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), domain.AnyProfessional()))
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}
