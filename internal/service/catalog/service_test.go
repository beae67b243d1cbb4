package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

type fakeRepo struct {
	services        []*domain.Service
	professionals   []*domain.Professional
	activeOnlyCalls []bool
	updated         []domain.Service
}

func (f *fakeRepo) CreateService(_ context.Context, svc *domain.Service) (*domain.Service, error) {
	created := *svc
	created.ID = int64(len(f.services) + 1)
	f.services = append(f.services, &created)
	return &created, nil
}

func (f *fakeRepo) UpdateService(_ context.Context, svc *domain.Service) error {
	for i, existing := range f.services {
		if existing.ID == svc.ID {
			updated := *svc
			f.services[i] = &updated
			f.updated = append(f.updated, updated)
			return nil
		}
	}
	return catalogRepo.ErrServiceNotFound
}

func (f *fakeRepo) UpdateProfessional(_ context.Context, p *domain.Professional) error {
	for i, existing := range f.professionals {
		if existing.ID == p.ID {
			updated := *p
			f.professionals[i] = &updated
			return nil
		}
	}
	return catalogRepo.ErrProfessionalNotFound
}

func (f *fakeRepo) GetServiceByID(_ context.Context, id int64) (*domain.Service, error) {
	for _, s := range f.services {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, catalogRepo.ErrServiceNotFound
}

func (f *fakeRepo) ListServices(_ context.Context, activeOnly bool) ([]*domain.Service, error) {
	f.activeOnlyCalls = append(f.activeOnlyCalls, activeOnly)
	return f.services, nil
}

func (f *fakeRepo) GetProfessionalByID(_ context.Context, id uuid.UUID) (*domain.Professional, error) {
	for _, p := range f.professionals {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, catalogRepo.ErrProfessionalNotFound
}

func (f *fakeRepo) ListProfessionals(_ context.Context, _ bool) ([]*domain.Professional, error) {
	return f.professionals, nil
}

func (f *fakeRepo) SetWorking(_ context.Context, id uuid.UUID, working bool) error {
	for _, p := range f.professionals {
		if p.ID == id {
			p.IsWorking = working
			return nil
		}
	}
	return catalogRepo.ErrProfessionalNotFound
}

func TestService_ListServices_InactiveOnlyForAdmin(t *testing.T) {
	repo := &fakeRepo{services: []*domain.Service{{ID: 1, Name: "Corte", AverageDurationMinutes: 60, Active: true}}}
	svc := NewService(repo, logger.NewNop())
	admin := &domain.Session{Role: domain.RoleAdmin}

	resp, err := svc.ListServices(context.Background(), nil, true)
	require.NoError(t, err)
	require.Len(t, resp.Services, 1)
	assert.Equal(t, 60, resp.Services[0].DurationMinutes)

	_, err = svc.ListServices(context.Background(), admin, true)
	require.NoError(t, err)

	assert.Equal(t, []bool{true, false}, repo.activeOnlyCalls)
}

func TestService_GetService_NotFound(t *testing.T) {
	svc := NewService(&fakeRepo{}, logger.NewNop())

	_, err := svc.GetService(context.Background(), 7)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = svc.GetService(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_ListProfessionals_HidesCommission(t *testing.T) {
	repo := &fakeRepo{professionals: []*domain.Professional{
		{ID: uuid.New(), FullName: "Ana", IsWorking: true, CommissionPercentage: ptr.Ptr(40.0)},
	}}
	svc := NewService(repo, logger.NewNop())

	public, err := svc.ListProfessionals(context.Background(), nil, true)
	require.NoError(t, err)
	assert.Nil(t, public.Professionals[0].CommissionPercentage)

	admin, err := svc.ListProfessionals(context.Background(), &domain.Session{Role: domain.RoleAdmin}, true)
	require.NoError(t, err)
	assert.InDelta(t, 40.0, *admin.Professionals[0].CommissionPercentage, 0.001)
}

func TestService_SetWorking(t *testing.T) {
	ana, bia := uuid.New(), uuid.New()
	repo := &fakeRepo{professionals: []*domain.Professional{
		{ID: ana, FullName: "Ana"},
		{ID: bia, FullName: "Bia"},
	}}
	svc := NewService(repo, logger.NewNop())
	anaSession := &domain.Session{UserID: ana, Role: domain.RoleProfessional}

	resp, err := svc.SetWorking(context.Background(), anaSession, ana, &models.SetWorkingRequest{IsWorking: ptr.Ptr(true)})
	require.NoError(t, err)
	assert.True(t, resp.IsWorking)

	_, err = svc.SetWorking(context.Background(), anaSession, bia, &models.SetWorkingRequest{IsWorking: ptr.Ptr(true)})
	assert.ErrorIs(t, err, ErrAccessDenied)

	admin := &domain.Session{UserID: uuid.New(), Role: domain.RoleAdmin}
	_, err = svc.SetWorking(context.Background(), admin, bia, &models.SetWorkingRequest{IsWorking: ptr.Ptr(false)})
	require.NoError(t, err)

	_, err = svc.SetWorking(context.Background(), admin, uuid.New(), &models.SetWorkingRequest{IsWorking: ptr.Ptr(true)})
	assert.ErrorIs(t, err, ErrProfessionalNotFound)

	_, err = svc.SetWorking(context.Background(), admin, bia, &models.SetWorkingRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_CreateService(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, logger.NewNop())
	admin := &domain.Session{UserID: uuid.New(), Role: domain.RoleAdmin}
	req := &models.CreateServiceRequest{Name: "  Hidratação ", Price: 120, DurationMinutes: 90}

	resp, err := svc.CreateService(context.Background(), admin, req)

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "Hidratação", resp.Name)
	assert.Equal(t, 90, resp.DurationMinutes)
	assert.True(t, resp.Active)

	_, err = svc.CreateService(context.Background(), &domain.Session{Role: domain.RoleProfessional}, req)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.CreateService(context.Background(), nil, req)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.CreateService(context.Background(), admin, &models.CreateServiceRequest{Name: "Corte", DurationMinutes: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_UpdateService_KeepsUnsetFields(t *testing.T) {
	repo := &fakeRepo{services: []*domain.Service{{ID: 1, Name: "Corte", Price: 80, AverageDurationMinutes: 60, Active: true}}}
	svc := NewService(repo, logger.NewNop())
	admin := &domain.Session{Role: domain.RoleAdmin}

	resp, err := svc.UpdateService(context.Background(), admin, 1, &models.UpdateServiceRequest{Price: ptr.Ptr(95.0)})

	require.NoError(t, err)
	assert.InDelta(t, 95.0, resp.Price, 0.001)
	assert.Equal(t, "Corte", resp.Name)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.True(t, resp.Active)

	_, err = svc.UpdateService(context.Background(), admin, 9, &models.UpdateServiceRequest{Price: ptr.Ptr(1.0)})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = svc.UpdateService(context.Background(), admin, 1, &models.UpdateServiceRequest{Name: ptr.Ptr("  ")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_SetServiceActive(t *testing.T) {
	repo := &fakeRepo{services: []*domain.Service{{ID: 1, Name: "Corte", Price: 80, AverageDurationMinutes: 60, Active: true}}}
	svc := NewService(repo, logger.NewNop())
	admin := &domain.Session{Role: domain.RoleAdmin}

	resp, err := svc.SetServiceActive(context.Background(), admin, 1, &models.SetServiceActiveRequest{Active: ptr.Ptr(false)})

	require.NoError(t, err)
	assert.False(t, resp.Active)
	require.Len(t, repo.updated, 1)
	assert.False(t, repo.updated[0].Active)
	assert.Equal(t, 60, repo.updated[0].AverageDurationMinutes)

	_, err = svc.SetServiceActive(context.Background(), &domain.Session{Role: domain.RoleClient}, 1, &models.SetServiceActiveRequest{Active: ptr.Ptr(true)})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.SetServiceActive(context.Background(), admin, 1, &models.SetServiceActiveRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_UpdateProfessional(t *testing.T) {
	ana := uuid.New()
	repo := &fakeRepo{professionals: []*domain.Professional{{ID: ana, FullName: "Ana", IsWorking: true}}}
	svc := NewService(repo, logger.NewNop())
	admin := &domain.Session{Role: domain.RoleAdmin}

	resp, err := svc.UpdateProfessional(context.Background(), admin, ana, &models.UpdateProfessionalRequest{
		FullName:             ptr.Ptr("Ana Souza"),
		CommissionPercentage: ptr.Ptr(45.0),
	})

	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", resp.FullName)
	assert.True(t, resp.IsWorking)
	assert.InDelta(t, 45.0, *resp.CommissionPercentage, 0.001)

	_, err = svc.UpdateProfessional(context.Background(), &domain.Session{UserID: ana, Role: domain.RoleProfessional}, ana,
		&models.UpdateProfessionalRequest{CommissionPercentage: ptr.Ptr(90.0)})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.UpdateProfessional(context.Background(), admin, uuid.New(), &models.UpdateProfessionalRequest{})
	assert.ErrorIs(t, err, ErrProfessionalNotFound)

	_, err = svc.UpdateProfessional(context.Background(), admin, ana, &models.UpdateProfessionalRequest{CommissionPercentage: ptr.Ptr(120.0)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
